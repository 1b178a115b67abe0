package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"backend/llm"
)

// EnhanceActivities asks the generative backend to propose three activities
// per day for a destination, constrained by interests and budget, and
// normalizes the result. A day can never come back empty: when every record
// is rejected the free-exploration fallback takes its place.
func (g *Generator) EnhanceActivities(ctx context.Context, plan DestinationPlan, interests []string, budget float64) ([]Activity, error) {
	prompt := fmt.Sprintf(`For the destination %s, propose 3 activities per day in JSON, matching these interests: %s and the budget %.2f.
Each activity must contain exactly these fields:
- name (str)
- description (str)
- duration_hours (float)
- cost (float)
- location (str)
- category (str)
Use only the keys: name, description, duration_hours, cost, location, category. No other keys.
Expected format: { "activities": [ { "name": ..., "description": ..., "duration_hours": ..., "cost": ..., "location": ..., "category": ... } ] }
Answer with the JSON only.`, plan.City, strings.Join(interests, ", "), budget)

	doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
	if err != nil {
		return nil, err
	}

	activities := NormalizeActivities(recordList(doc["activities"]), plan.City)
	if len(activities) == 0 {
		activities = append(activities, FreeExplorationActivity(plan.City))
	}
	return activities, nil
}

// FindAccommodations asks the generative backend for one lodging proposal
// covering the whole stay.
func (g *Generator) FindAccommodations(ctx context.Context, plan DestinationPlan, budget float64, style string) ([]Accommodation, error) {
	if len(plan.Days) == 0 {
		return []Accommodation{}, nil
	}
	prompt := fmt.Sprintf(`Propose 1 accommodation for %s from %s to %s, style: %s, total budget: %.2f.
Expected format: { "accommodations": [ { "name": ..., "type": ..., "location": ..., "check_in": ..., "check_out": ..., "price_per_night": ..., "booking_url": ... } ] }`,
		plan.City, plan.Days[0].Date, plan.Days[len(plan.Days)-1].Date, style, budget)

	doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
	if err != nil {
		return nil, err
	}

	var accommodations []Accommodation
	if err := decodeRecords(doc["accommodations"], &accommodations); err != nil {
		return nil, err
	}
	if accommodations == nil {
		accommodations = []Accommodation{}
	}
	return accommodations, nil
}

// StructuredDayPlan generates a plain-text day-by-day program for one
// destination.
func (g *Generator) StructuredDayPlan(ctx context.Context, plan DestinationPlan, interests []string, budget float64) (string, error) {
	prompt := fmt.Sprintf(`For the destination %s, generate a structured day-by-day travel program over %d days.
For each day, propose:
- A morning activity
- A lunch restaurant
- One or two afternoon activities
- A dinner restaurant
- An evening activity

Present each day as:

Day X (%s)
Morning: ...
Lunch: ...
Afternoon: ...
Evening: ...
Night: ...

Be concise, use a new line for each section, and output only the program with no surrounding text.
Interests: %s
Total budget: %s`,
		plan.City, len(plan.Days), plan.City,
		strings.Join(interests, ", "), FormatCurrency(budget, DefaultCurrency))

	return g.llm.Generate(ctx, prompt, "")
}

// collectDayActivities fans out to every configured provider concurrently
// and concatenates their records in provider-priority order. Provider
// failures are logged and count as empty result sets. When every provider
// comes back empty, the generative backend synthesizes the day's
// candidates instead; a failure of that synthesis call propagates, unlike
// provider failures.
func (g *Generator) collectDayActivities(ctx context.Context, destination string, day Date, dailyBudget float64, mood string) ([]map[string]any, error) {
	results := make([][]map[string]any, len(g.providers))

	var wg sync.WaitGroup
	for i, provider := range g.providers {
		wg.Add(1)
		go func(i int, provider Provider) {
			defer wg.Done()
			records, err := provider.FetchActivities(ctx, destination, day, dailyBudget, mood)
			if err != nil {
				g.logger.Warn("activity provider failed",
					"provider", provider.Name(),
					"destination", destination,
					"date", day.String(),
					"error", err)
				return
			}
			results[i] = records
		}(i, provider)
	}
	wg.Wait()

	var merged []map[string]any
	for _, records := range results {
		merged = append(merged, records...)
	}
	if len(merged) > 0 {
		return merged, nil
	}

	prompt := fmt.Sprintf(`Generate 3 activities for %s on %s
Style: %s
Budget: %.2f`, destination, day, mood, dailyBudget)

	doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
	if err != nil {
		return nil, err
	}
	return recordList(doc["activities"]), nil
}

// selectActivities runs the final selection/enrichment call: the backend
// picks and enriches exactly three activities from the merged candidates
// under the day's budget. Its output supersedes the candidate set.
func (g *Generator) selectActivities(ctx context.Context, destination string, candidates []map[string]any, mood string, dailyBudget float64, day Date) ([]Activity, error) {
	encoded, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Select and enrich 3 activities from the following list for %s:
%s

Criteria:
- Style: %s
- Budget per day: %.2f
- Date: %s

Expected format: { "activities": [ { "name": ..., "description": ..., "duration_hours": ..., "cost": ..., "location": ..., "category": ..., "booking_url": ..., "source": ... } ] }`,
		destination, encoded, mood, dailyBudget, day)

	doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
	if err != nil {
		return nil, err
	}

	activities := NormalizeActivities(recordList(doc["activities"]), destination)
	if len(activities) == 0 {
		activities = append(activities, FreeExplorationActivity(destination))
	}
	return activities, nil
}

// recordList coerces a decoded JSON value into a list of loose records.
func recordList(value any) []map[string]any {
	items, _ := value.([]any)
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}

// decodeRecords re-marshals a loosely decoded JSON fragment into a typed
// slice.
func decodeRecords(value any, out any) error {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
