package travel

import "github.com/samber/lo"

// PerDayBudget splits the total trip budget evenly across the declared
// duration of every destination. The result is a ceiling embedded in
// enrichment prompts; nothing downstream enforces it.
func PerDayBudget(budget float64, destinations []Destination) float64 {
	totalDays := lo.SumBy(destinations, func(d Destination) int {
		return d.DurationDays
	})
	if totalDays == 0 {
		return 0
	}
	return budget / float64(totalDays)
}
