package travel

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"backend/llm"
)

// Selection criteria for OptimizeTransportation.
const (
	CriterionCost     = "cost"
	CriterionDuration = "duration"
)

// FindTransportation generates candidate transport legs between two
// consecutive destinations, constrained by budget and an optional preferred
// mode.
func (g *Generator) FindTransportation(ctx context.Context, from, to DestinationPlan, budget float64, preferredType string) ([]Transportation, error) {
	prompt := fmt.Sprintf(`Propose 1 transport option from %s to %s for a budget of %.2f.
Expected format: { "transportation": [ { "type": ..., "from_location": ..., "to_location": ..., "departure_time": ..., "arrival_time": ..., "cost": ..., "booking_url": ... } ] }`,
		from.City, to.City, budget)
	if preferredType != "" {
		prompt += fmt.Sprintf("\nPreferred mode: %s", preferredType)
	}

	doc, err := llm.GenerateDocument(ctx, g.llm, prompt, "")
	if err != nil {
		return nil, err
	}

	var options []Transportation
	if err := decodeRecords(doc["transportation"], &options); err != nil {
		return nil, err
	}
	return options, nil
}

// OptimizeTransportation selects one candidate by the given criterion.
// "cost" picks the cheapest, ties broken by first-seen order. "duration"
// compares whole hours only (arrival hour minus departure hour) and does
// not handle legs crossing midnight; that coarseness is a documented
// limitation of the candidate data, not something to repair here. Any other
// criterion returns the first candidate. An empty candidate list yields no
// leg and no error.
func OptimizeTransportation(options []Transportation, criterion string) (Transportation, bool) {
	if len(options) == 0 {
		return Transportation{}, false
	}
	switch criterion {
	case CriterionCost:
		return lo.MinBy(options, func(a, b Transportation) bool {
			return a.Cost < b.Cost
		}), true
	case CriterionDuration:
		return lo.MinBy(options, func(a, b Transportation) bool {
			return coarseDuration(a) < coarseDuration(b)
		}), true
	default:
		return options[0], true
	}
}

func coarseDuration(t Transportation) int {
	return t.ArrivalTime.Hour() - t.DepartureTime.Hour()
}
