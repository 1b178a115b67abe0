package travel

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildItineraryAssignsSequentialDates(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 2 days": skeletonDays(2),
		"for Rome, Italy over 3 days":   skeletonDays(3),
	}}
	g := NewGenerator(client, slog.Default())

	plans, err := g.BuildItinerary(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, "2025-07-01", plans[0].Days[0].Date.String())
	assert.Equal(t, "2025-07-02", plans[0].Days[1].Date.String())

	// Each destination restarts at the request's start date; the dates are
	// driven by the returned day count, not duration_days.
	assert.Equal(t, "2025-07-01", plans[1].Days[0].Date.String())
	assert.Equal(t, "2025-07-02", plans[1].Days[1].Date.String())
	assert.Equal(t, "2025-07-03", plans[1].Days[2].Date.String())
}

func TestBuildItineraryKeepsReturnedDayCount(t *testing.T) {
	// The model returned 4 days for a 2-day destination; the skeleton keeps
	// all 4 and the drift is only logged.
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 2 days": skeletonDays(4),
	}}
	g := NewGenerator(client, slog.Default())

	plans, err := g.BuildItinerary(context.Background(), TravelRequest{
		Destinations: []Destination{{City: "Paris", Country: "France", DurationDays: 2}},
		StartDate:    NewDate(2025, time.July, 1),
		EndDate:      NewDate(2025, time.July, 3),
		Budget:       500,
		Mood:         "culture",
		GroupSize:    1,
	})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Len(t, plans[0].Days, 4)
}

func TestBuildItineraryPlaceholderDefaults(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 1 days": `{ "days": [ { "activities": [ {}, { "name": "Named", "duration_hours": "not a number" } ], "notes": "take a hat" } ] }`,
	}}
	g := NewGenerator(client, slog.Default())

	plans, err := g.BuildItinerary(context.Background(), TravelRequest{
		Destinations: []Destination{{City: "Paris", Country: "France", DurationDays: 1}},
		StartDate:    NewDate(2025, time.July, 1),
		EndDate:      NewDate(2025, time.July, 2),
		Budget:       500,
		Mood:         "culture",
		GroupSize:    1,
	})
	require.NoError(t, err)

	day := plans[0].Days[0]
	require.Len(t, day.Activities, 2)

	placeholder := day.Activities[0]
	assert.Equal(t, "Unspecified activity", placeholder.Name)
	assert.Equal(t, "Unspecified activity", placeholder.Description)
	assert.Equal(t, 1.0, placeholder.DurationHours)
	assert.Equal(t, "Paris", placeholder.Location)

	named := day.Activities[1]
	assert.Equal(t, "Named", named.Name)
	assert.Equal(t, 1.0, named.DurationHours) // malformed duration keeps the default

	assert.Equal(t, "take a hat", day.Notes)
	assert.Empty(t, plans[0].Accommodations)
	assert.Empty(t, plans[0].Transportation)
}
