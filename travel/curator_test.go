package travel

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/llm"
)

type fakeProvider struct {
	name    string
	records []map[string]any
	err     error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchActivities(context.Context, string, Date, float64, string) ([]map[string]any, error) {
	return p.records, p.err
}

func TestCollectDayActivitiesMergesInProviderOrder(t *testing.T) {
	g := NewGenerator(&scriptedClient{}, slog.Default(),
		&fakeProvider{name: "supabase", records: []map[string]any{{"name": "From supabase"}}},
		&fakeProvider{name: "viator", records: []map[string]any{{"name": "From viator"}}},
	)

	records, err := g.collectDayActivities(context.Background(), "Paris", NewDate(2025, time.July, 1), 200, "culture")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "From supabase", records[0]["name"])
	assert.Equal(t, "From viator", records[1]["name"])
}

func TestCollectDayActivitiesIsolatesProviderFailure(t *testing.T) {
	g := NewGenerator(&scriptedClient{}, slog.Default(),
		&fakeProvider{name: "supabase", err: errors.New("connection refused")},
		&fakeProvider{name: "viator", records: []map[string]any{{"name": "Survivor"}}},
	)

	records, err := g.collectDayActivities(context.Background(), "Paris", NewDate(2025, time.July, 1), 200, "culture")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Survivor", records[0]["name"])
}

func TestCollectDayActivitiesFallsBackToSynthesis(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"Generate 3 activities for Paris": `{ "activities": [ { "name": "Synthesized" } ] }`,
	}}
	g := NewGenerator(client, slog.Default(),
		&fakeProvider{name: "supabase"},
		&fakeProvider{name: "viator", err: errors.New("timeout")},
	)

	records, err := g.collectDayActivities(context.Background(), "Paris", NewDate(2025, time.July, 1), 200, "culture")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Synthesized", records[0]["name"])
}

func TestCollectDayActivitiesPropagatesSynthesisFailure(t *testing.T) {
	// Providers returning nothing is recoverable; a fallback synthesis
	// reply without parseable JSON is not.
	client := &scriptedClient{replies: map[string]string{
		"Generate 3 activities for Paris": "I could not come up with anything.",
	}}
	g := NewGenerator(client, slog.Default(),
		&fakeProvider{name: "supabase"},
	)

	_, err := g.collectDayActivities(context.Background(), "Paris", NewDate(2025, time.July, 1), 200, "culture")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNoJSON)
}

func TestGenerateProgramV2PropagatesSynthesisFailure(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 1 days":   skeletonDays(1),
		"Generate 3 activities for Paris": "no JSON here, sorry",
	}}
	g := NewGenerator(client, slog.Default()) // no providers: every day needs synthesis

	_, err := g.GenerateProgramV2(context.Background(), ProgramRequest{
		Type:      "mono",
		StartDate: NewDate(2025, time.July, 1),
		EndDate:   NewDate(2025, time.July, 2),
		Destinations: []Destination{
			{City: "Paris", Country: "France", DurationDays: 1},
		},
		Mood:      "culture",
		Budget:    100,
		GroupSize: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNoJSON)
}

func TestSelectActivitiesSupersedesCandidates(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"Select and enrich 3 activities": `{ "activities": [ { "name": "Chosen", "cost": 25.0, "source": "viator" } ] }`,
	}}
	g := NewGenerator(client, slog.Default())

	candidates := []map[string]any{{"name": "Candidate A"}, {"name": "Candidate B"}}
	selected, err := g.selectActivities(context.Background(), "Paris", candidates, "culture", 200, NewDate(2025, time.July, 1))
	require.NoError(t, err)

	require.Len(t, selected, 1)
	assert.Equal(t, "Chosen", selected[0].Name)
	assert.Equal(t, 25.0, selected[0].Cost)
	assert.Equal(t, "viator", selected[0].Source)
}

func TestEnhanceActivitiesFallsBackWhenAllRecordsInvalid(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"propose 3 activities per day": `{ "activities": [ { "description": "nameless" } ] }`,
	}}
	g := NewGenerator(client, slog.Default())

	activities, err := g.EnhanceActivities(context.Background(), DestinationPlan{City: "Paris"}, []string{"culture"}, 500)
	require.NoError(t, err)

	require.Len(t, activities, 1)
	assert.Equal(t, "Free exploration", activities[0].Name)
	assert.Equal(t, 0.0, activities[0].Cost)
}

func TestGenerateProgramV2EndToEnd(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 2 days":  skeletonDays(2),
		"for Rome, Italy over 3 days":    skeletonDays(3),
		"Generate 3 activities":          `{ "activities": [ { "name": "Synthesized walk" } ] }`,
		"Select and enrich 3 activities": `{ "activities": [ { "name": "Chosen", "cost": 10.0 } ] }`,
	}}
	g := NewGenerator(client, slog.Default()) // no providers: every day goes through fallback synthesis

	response, err := g.GenerateProgramV2(context.Background(), ProgramRequest{
		Type:      "multi",
		StartDate: NewDate(2025, time.July, 1),
		EndDate:   NewDate(2025, time.July, 5),
		Destinations: []Destination{
			{City: "Paris", Country: "France", DurationDays: 2},
			{City: "Rome", Country: "Italy", DurationDays: 3},
		},
		Mood:      "culture",
		Budget:    1000,
		GroupSize: 2,
	})
	require.NoError(t, err)

	require.Len(t, response.Destinations, 2)
	assert.Len(t, response.Destinations[0].Days, 2)
	assert.Len(t, response.Destinations[1].Days, 3)

	// Simulated lodging: price per night is half the stay budget
	// (daily budget 200).
	require.Len(t, response.Destinations[0].Accommodations, 1)
	assert.InDelta(t, 200.0, response.Destinations[0].Accommodations[0].PricePerNight, 1e-9)
	require.Len(t, response.Destinations[1].Accommodations, 1)
	assert.InDelta(t, 300.0, response.Destinations[1].Accommodations[0].PricePerNight, 1e-9)

	// Multi trips get arrival and departure legs per destination.
	assert.Len(t, response.Destinations[0].Transportation, 2)
	assert.Len(t, response.Destinations[1].Transportation, 2)

	// 5 days x 10 activity cost + lodging multiplied by night count
	// (200x2 + 300x3).
	assert.InDelta(t, 50+400+900, response.TotalCost, 1e-9)
	assert.Equal(t, "2.0", response.Version)
	assert.Equal(t, 5, response.Metadata["activities_count"])
	assert.Equal(t, []string{SourceLLM}, response.Metadata["sources_used"])
}

func TestGenerateProgramV2EmptyDayGetsFallbackActivity(t *testing.T) {
	client := &scriptedClient{replies: map[string]string{
		"for Paris, France over 1 days":  skeletonDays(1),
		"Generate 3 activities":          `{ "activities": [] }`,
		"Select and enrich 3 activities": `{ "activities": [ { "name": "unused" } ] }`,
	}}
	g := NewGenerator(client, slog.Default())

	response, err := g.GenerateProgramV2(context.Background(), ProgramRequest{
		Type:      "mono",
		StartDate: NewDate(2025, time.July, 1),
		EndDate:   NewDate(2025, time.July, 2),
		Destinations: []Destination{
			{City: "Paris", Country: "France", DurationDays: 1},
		},
		Mood:      "culture",
		Budget:    100,
		GroupSize: 1,
	})
	require.NoError(t, err)

	require.Len(t, response.Destinations, 1)
	require.Len(t, response.Destinations[0].Days, 1)

	day := response.Destinations[0].Days[0]
	require.Len(t, day.Activities, 1)
	assert.Equal(t, "Free exploration", day.Activities[0].Name)
	assert.Equal(t, 0.0, day.Activities[0].Cost)
	assert.Empty(t, response.Destinations[0].Transportation)
}
