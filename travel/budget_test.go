package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerDayBudget(t *testing.T) {
	destinations := []Destination{
		{City: "Paris", Country: "France", DurationDays: 2},
		{City: "Rome", Country: "Italy", DurationDays: 3},
	}

	assert.InDelta(t, 200.0, PerDayBudget(1000, destinations), 1e-9)
}

func TestPerDayBudgetChangesWithAnyDuration(t *testing.T) {
	destinations := []Destination{
		{City: "Paris", DurationDays: 2},
		{City: "Rome", DurationDays: 3},
	}
	before := PerDayBudget(1000, destinations)

	destinations[1].DurationDays = 8
	after := PerDayBudget(1000, destinations)

	assert.InDelta(t, 200.0, before, 1e-9)
	assert.InDelta(t, 100.0, after, 1e-9)
}

func TestPerDayBudgetNoDeclaredDays(t *testing.T) {
	assert.Equal(t, 0.0, PerDayBudget(1000, nil))
}
