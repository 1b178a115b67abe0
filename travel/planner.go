package travel

import (
	"context"
	"fmt"
	"strings"

	"backend/llm"
)

const unspecifiedActivityName = "Unspecified activity"

// BuildItinerary produces the initial skeleton: one DestinationPlan per
// requested destination, one structured generation call each, dates
// assigned sequentially from the request start date. Accommodations and
// transportation are left for later stages.
func (g *Generator) BuildItinerary(ctx context.Context, req TravelRequest) ([]DestinationPlan, error) {
	plans := make([]DestinationPlan, 0, len(req.Destinations))
	for _, destination := range req.Destinations {
		prompt := fmt.Sprintf(`Generate a structured travel program in JSON for %s, %s over %d days.
Dates: %s to %s
Mood: %s
Budget: %.2f
Group: %d

For each activity, always provide:
- name (str): activity name
- description (str): short description
- duration_hours (float): duration in hours
- cost (float): cost in euros
- location (str): precise place
- category (str): activity type

Expected format: { "days": [ { "date": ..., "activities": [ { "name": ..., "description": ..., "duration_hours": ..., "cost": ..., "location": ..., "category": ... } ] } ] }`,
			destination.City, destination.Country, destination.DurationDays,
			req.StartDate, req.EndDate, req.Mood, req.Budget, req.GroupSize)

		doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
		if err != nil {
			return nil, err
		}

		rawDays, _ := doc["days"].([]any)
		plan := DestinationPlan{
			City:           destination.City,
			Country:        destination.Country,
			Days:           make([]DayPlan, 0, len(rawDays)),
			Accommodations: []Accommodation{},
			Transportation: []Transportation{},
			Latitude:       destination.Latitude,
			Longitude:      destination.Longitude,
		}

		// One calendar date per returned day, regardless of the declared
		// duration_days. When the model returns a different day count the
		// dates drift; that is surfaced in the log only.
		if len(rawDays) != destination.DurationDays {
			g.logger.Debug("itinerary day count differs from requested duration",
				"destination", destination.City,
				"requested", destination.DurationDays,
				"returned", len(rawDays))
		}

		date := req.StartDate
		for _, rawDay := range rawDays {
			day, _ := rawDay.(map[string]any)
			plan.Days = append(plan.Days, buildDayPlan(day, date, destination.City))
			date = date.AddDays(1)
		}

		plans = append(plans, plan)
	}
	return plans, nil
}

func buildDayPlan(day map[string]any, date Date, city string) DayPlan {
	plan := DayPlan{
		Date:       date,
		Activities: []Activity{},
		Meals:      []string{},
	}
	if day == nil {
		return plan
	}

	rawActivities, _ := day["activities"].([]any)
	for _, rawActivity := range rawActivities {
		record, ok := rawActivity.(map[string]any)
		if !ok {
			continue
		}
		plan.Activities = append(plan.Activities, buildSkeletonActivity(record, city))
	}

	if rawMeals, ok := day["meals"].([]any); ok {
		for _, rawMeal := range rawMeals {
			if meal, ok := rawMeal.(string); ok {
				plan.Meals = append(plan.Meals, meal)
			}
		}
	}
	if notes, ok := day["notes"].(string); ok {
		plan.Notes = notes
	}
	return plan
}

// buildSkeletonActivity applies placeholder defaulting to one raw skeleton
// record. Unlike the normalizer it never drops a record: a nameless
// activity becomes an explicit placeholder.
func buildSkeletonActivity(record map[string]any, city string) Activity {
	name := unspecifiedActivityName
	if s, ok := record["name"].(string); ok && strings.TrimSpace(s) != "" {
		name = s
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
	if desc, ok := record["description"].(string); ok && desc != "" {
		activity.Description = desc
	}
	if duration, err := toFloat(record["duration_hours"]); err == nil && duration > 0 {
		activity.DurationHours = duration
	}
	if cost, err := toFloat(record["cost"]); err == nil && cost >= 0 {
		activity.Cost = cost
	}
	if location, ok := record["location"].(string); ok && location != "" {
		activity.Location = location
	}
	if category, ok := record["category"].(string); ok && category != "" {
		activity.Category = category
	}
	return activity
}
