package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leg(t *testing.T, cost float64, departure, arrival string) Transportation {
	t.Helper()
	dep, err := ParseClockTime(departure)
	require.NoError(t, err)
	arr, err := ParseClockTime(arrival)
	require.NoError(t, err)
	return Transportation{
		Type:          "train",
		FromLocation:  "A",
		ToLocation:    "B",
		DepartureTime: dep,
		ArrivalTime:   arr,
		Cost:          cost,
	}
}

func TestOptimizeTransportationByCost(t *testing.T) {
	options := []Transportation{
		leg(t, 120, "08:00", "10:00"),
		leg(t, 80, "09:00", "14:00"),
		leg(t, 200, "10:00", "11:00"),
	}

	best, ok := OptimizeTransportation(options, CriterionCost)
	require.True(t, ok)
	assert.Equal(t, 80.0, best.Cost)
}

func TestOptimizeTransportationCostTieKeepsFirst(t *testing.T) {
	options := []Transportation{
		leg(t, 80, "08:00", "10:00"),
		leg(t, 80, "09:00", "09:30"),
	}

	best, ok := OptimizeTransportation(options, CriterionCost)
	require.True(t, ok)
	assert.Equal(t, "08:00", best.DepartureTime.String())
}

func TestOptimizeTransportationByDuration(t *testing.T) {
	options := []Transportation{
		leg(t, 120, "08:00", "12:00"), // 4h
		leg(t, 80, "09:00", "10:00"),  // 1h
		leg(t, 200, "10:00", "13:00"), // 3h
	}

	best, ok := OptimizeTransportation(options, CriterionDuration)
	require.True(t, ok)
	assert.Equal(t, "09:00", best.DepartureTime.String())
}

func TestOptimizeTransportationDurationIgnoresMinutes(t *testing.T) {
	// Whole-hour arithmetic: 08:00→09:59 counts as 1, 09:30→10:35 as 1.
	// First-seen order breaks the tie.
	options := []Transportation{
		leg(t, 100, "08:00", "09:59"),
		leg(t, 100, "09:30", "10:35"),
	}

	best, ok := OptimizeTransportation(options, CriterionDuration)
	require.True(t, ok)
	assert.Equal(t, "08:00", best.DepartureTime.String())
}

func TestOptimizeTransportationUnknownCriterionTakesFirst(t *testing.T) {
	options := []Transportation{
		leg(t, 120, "08:00", "10:00"),
		leg(t, 80, "09:00", "10:00"),
	}

	best, ok := OptimizeTransportation(options, "comfort")
	require.True(t, ok)
	assert.Equal(t, 120.0, best.Cost)
}

func TestOptimizeTransportationEmpty(t *testing.T) {
	_, ok := OptimizeTransportation(nil, CriterionCost)
	assert.False(t, ok)
}
