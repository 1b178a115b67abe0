package travel

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"backend/llm"
)

// NoDestinationMessage is returned by GenerateStructuredText when the
// request carries no destinations.
const NoDestinationMessage = "No destination found."

// Generator orchestrates the full pipeline. Each request owns its own plan
// tree, so a single Generator is safe for concurrent use.
type Generator struct {
	llm       llm.Client
	providers []Provider
	lodging   LodgingService
	transport TransportService
	logger    *slog.Logger
}

// NewGenerator wires the pipeline. Nil providers are skipped so
// unconfigured sources simply drop out of the fan-out.
func NewGenerator(client llm.Client, logger *slog.Logger, providers ...Provider) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	configured := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			configured = append(configured, p)
		}
	}
	return &Generator{
		llm:       client,
		providers: configured,
		logger:    logger,
	}
}

// GenerateProgram runs the primary path: skeleton, per-destination activity
// enrichment, accommodation lookup, cost-optimized transport between
// consecutive destinations, and final assembly. Generative failures
// propagate; nothing is retried.
func (g *Generator) GenerateProgram(ctx context.Context, req TravelRequest) (*TravelProgram, error) {
	plans, err := g.BuildItinerary(ctx, req)
	if err != nil {
		return nil, err
	}

	interests := req.Interests
	if len(interests) == 0 {
		interests = []string{req.Mood}
	}
	style := req.Mood
	if style == "" {
		style = req.TravelStyle
	}

	for i := range plans {
		activities, err := g.EnhanceActivities(ctx, plans[i], interests, req.Budget)
		if err != nil {
			return nil, err
		}
		for d := range plans[i].Days {
			plans[i].Days[d].Activities = activities
		}

		accommodations, err := g.FindAccommodations(ctx, plans[i], req.Budget, style)
		if err != nil {
			return nil, err
		}
		plans[i].Accommodations = accommodations

		if i < len(plans)-1 {
			options, err := g.FindTransportation(ctx, plans[i], plans[i+1], req.Budget, req.PreferredTransportation)
			if err != nil {
				return nil, err
			}
			if best, ok := OptimizeTransportation(options, CriterionCost); ok {
				plans[i].Transportation = append(plans[i].Transportation, best)
			}
		}
	}

	program := &TravelProgram{
		Destinations: plans,
		TotalCost:    TotalCost(plans),
		Currency:     DefaultCurrency,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Version:      programVersion,
	}
	return program, nil
}

// TotalCost sums accommodation price-per-night, transport cost and activity
// cost over every destination. Accommodation is counted once per entry, not
// per night; the v2 path aggregates lodging differently and the two are
// intentionally left divergent.
func TotalCost(plans []DestinationPlan) float64 {
	return lo.SumBy(plans, func(plan DestinationPlan) float64 {
		accommodation := lo.SumBy(plan.Accommodations, func(a Accommodation) float64 {
			return a.PricePerNight
		})
		transport := lo.SumBy(plan.Transportation, func(t Transportation) float64 {
			return t.Cost
		})
		activities := lo.SumBy(plan.Days, func(day DayPlan) float64 {
			return lo.SumBy(day.Activities, func(a Activity) float64 {
				return a.Cost
			})
		})
		return accommodation + transport + activities
	})
}

// GenerateProgramV2 runs the provider-orchestrated path: per-day provider
// fan-out with generative fallback and selection, simulated lodging, and
// arrival/departure transport legs for multi-destination trips.
func (g *Generator) GenerateProgramV2(ctx context.Context, req ProgramRequest) (*ProgramResponse, error) {
	plans, err := g.BuildItinerary(ctx, TravelRequest{
		Destinations: req.Destinations,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Budget:       req.Budget,
		Mood:         req.Mood,
		GroupSize:    req.GroupSize,
	})
	if err != nil {
		return nil, err
	}

	dailyBudget := PerDayBudget(req.Budget, req.Destinations)

	for i := range plans {
		plan := &plans[i]
		for d := range plan.Days {
			day := &plan.Days[d]
			candidates, err := g.collectDayActivities(ctx, plan.City, day.Date, dailyBudget, req.Mood)
			if err != nil {
				return nil, err
			}
			if len(candidates) == 0 {
				day.Activities = []Activity{FreeExplorationActivity(plan.City)}
				continue
			}
			selected, err := g.selectActivities(ctx, plan.City, candidates, req.Mood, dailyBudget, day.Date)
			if err != nil {
				return nil, err
			}
			day.Activities = selected
		}

		if len(plan.Days) > 0 {
			stayStart := plan.Days[0].Date
			stayEnd := plan.Days[len(plan.Days)-1].Date
			lodging := g.lodging.Find(plan.City, stayStart, stayEnd, dailyBudget*float64(len(plan.Days)))
			plan.Accommodations = []Accommodation{lodging}

			if req.Type == "multi" {
				origin := "ORIGIN"
				if i > 0 {
					origin = plans[i-1].City
				}
				next := "DESTINATION"
				if i < len(plans)-1 {
					next = plans[i+1].City
				}
				plan.Transportation = append(plan.Transportation,
					g.transport.Find(origin, plan.City, stayStart),
					g.transport.Find(plan.City, next, stayEnd),
				)
			}
		}
	}

	// The v2 aggregate multiplies lodging by night count, unlike TotalCost.
	activityTotal := lo.SumBy(plans, func(plan DestinationPlan) float64 {
		return lo.SumBy(plan.Days, func(day DayPlan) float64 {
			return lo.SumBy(day.Activities, func(a Activity) float64 { return a.Cost })
		})
	})
	lodgingTotal := lo.SumBy(plans, func(plan DestinationPlan) float64 {
		nights := float64(len(plan.Days))
		return nights * lo.SumBy(plan.Accommodations, func(a Accommodation) float64 {
			return a.PricePerNight
		})
	})

	activityCount := lo.SumBy(plans, func(plan DestinationPlan) int {
		return lo.SumBy(plan.Days, func(day DayPlan) int { return len(day.Activities) })
	})

	response := &ProgramResponse{
		Destinations: plans,
		TotalCost:    activityTotal + lodgingTotal,
		Currency:     DefaultCurrency,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Version:      programVersionV2,
		Metadata: map[string]any{
			"sources_used":     providerNames(g.providers),
			"activities_count": activityCount,
		},
	}
	return response, nil
}

// GenerateStructuredText produces a plain-text day-by-day program for the
// first destination of the request.
func (g *Generator) GenerateStructuredText(ctx context.Context, req TravelRequest) (string, error) {
	plans, err := g.BuildItinerary(ctx, req)
	if err != nil {
		return "", err
	}
	if len(plans) == 0 {
		return NoDestinationMessage, nil
	}

	interests := req.Interests
	if len(interests) == 0 {
		interests = []string{req.Mood}
	}
	return g.StructuredDayPlan(ctx, plans[0], interests, req.Budget)
}
