package travel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SourceLLM tags activities synthesized by the generative backend.
const SourceLLM = "llm"

// Alias tables for the loose records returned by providers and the
// generative backend. Probed in order; first non-empty value wins. The
// French aliases come from real provider payloads.
var (
	nameAliases        = []string{"name", "activity_name", "activity", "title", "nom", "libelle"}
	descriptionAliases = []string{"description", "desc", "details", "texte"}
	durationAliases    = []string{"duration_hours", "duration", "duree"}
	costAliases        = []string{"cost", "price", "prix"}
	locationAliases    = []string{"location", "lieu"}
	categoryAliases    = []string{"category", "type"}
)

var decimalPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// NormalizeActivity coerces one loose record into a canonical Activity.
// Records without a resolvable name are dropped: the second return value is
// false and no error is reported. Malformed duration or cost values fall
// back to their defaults silently.
func NormalizeActivity(raw map[string]any, city string) (Activity, bool) {
	name := probeString(raw, nameAliases)
	if name == "" {
		return Activity{}, false
	}

	activity := Activity{
		Name:          name,
		Description:   name,
		DurationHours: 1.0,
		Cost:          0.0,
		Location:      city,
		Category:      "general",
		Source:        SourceLLM,
	}

	if desc := probeString(raw, descriptionAliases); desc != "" {
		activity.Description = desc
	}
	if loc := probeString(raw, locationAliases); loc != "" {
		activity.Location = loc
	}
	if cat := probeString(raw, categoryAliases); cat != "" {
		activity.Category = cat
	}
	if duration, ok := probe(raw, durationAliases); ok {
		activity.DurationHours = inferDuration(duration, activity.DurationHours)
	}
	if cost, ok := probe(raw, costAliases); ok {
		if parsed, err := toFloat(cost); err == nil {
			activity.Cost = parsed
		}
	}
	if url, ok := raw["booking_url"].(string); ok {
		activity.BookingURL = url
	}
	if source, ok := raw["source"].(string); ok && source != "" {
		activity.Source = source
	}

	return activity, true
}

// NormalizeActivities converts a batch of loose records, dropping the
// invalid ones.
func NormalizeActivities(raws []map[string]any, city string) []Activity {
	activities := make([]Activity, 0, len(raws))
	for _, raw := range raws {
		if activity, ok := NormalizeActivity(raw, city); ok {
			activities = append(activities, activity)
		}
	}
	return activities
}

// FreeExplorationActivity is the fallback used so that no day is ever empty.
func FreeExplorationActivity(city string) Activity {
	return Activity{
		Name:          "Free exploration",
		Description:   fmt.Sprintf("Free day to explore %s.", city),
		DurationHours: 4.0,
		Cost:          0.0,
		Location:      city,
		Category:      "general",
		Source:        SourceLLM,
	}
}

// inferDuration applies unit inference to a duration value. Text with an
// hour token yields the first embedded decimal (comma accepted as decimal
// separator) or 8.0 when no number is present; a day token means one
// activity-day, 8 working hours; any other text keeps the fallback of 1.0.
// Unparseable values keep the previous default.
func inferDuration(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		lower := strings.ToLower(v)
		switch {
		case strings.Contains(lower, "hour") || strings.Contains(lower, "heure"):
			if match := decimalPattern.FindString(lower); match != "" {
				if parsed, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64); err == nil {
					return parsed
				}
				return fallback
			}
			return 8.0
		case strings.Contains(lower, "day") || strings.Contains(lower, "journée"):
			return 8.0
		default:
			return 1.0
		}
	default:
		return fallback
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}

// probe returns the first alias whose value is present and non-zero.
// Empty strings, zero numbers and nils are treated as absent so that later
// aliases still get a chance.
func probe(raw map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
		case float64:
			if v == 0 {
				continue
			}
		case int:
			if v == 0 {
				continue
			}
		}
		return value, true
	}
	return nil, false
}

func probeString(raw map[string]any, aliases []string) string {
	value, ok := probe(raw, aliases)
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}
