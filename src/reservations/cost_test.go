package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalCostBasicScenario(t *testing.T) {
	// 5 units over 4 days at $10/unit/day.
	got := TotalCost(10, 5, date(2026, 3, 1), date(2026, 3, 5))
	assert.Equal(t, 200.0, got)
}

func TestTotalCostFractionalDayBillsFullDay(t *testing.T) {
	start := date(2026, 3, 1)
	end := start.Add(4*24*time.Hour + 12*time.Hour)
	got := TotalCost(10, 1, start, end)
	assert.Equal(t, 50.0, got)
}

func TestTotalCostRoundsToCents(t *testing.T) {
	got := TotalCost(0.333, 1, date(2026, 3, 1), date(2026, 3, 2))
	assert.Equal(t, 0.33, got)
}

func TestTotalCostMonotonicInSpace(t *testing.T) {
	start, end := date(2026, 3, 1), date(2026, 3, 5)
	prev := 0.0
	for space := 1.0; space <= 10; space++ {
		cost := TotalCost(7.5, space, start, end)
		assert.GreaterOrEqual(t, cost, prev)
		prev = cost
	}
}

func TestTotalCostMonotonicInDays(t *testing.T) {
	start := date(2026, 3, 1)
	prev := 0.0
	for days := 1; days <= 14; days++ {
		cost := TotalCost(7.5, 2, start, start.AddDate(0, 0, days))
		assert.GreaterOrEqual(t, cost, prev)
		prev = cost
	}
}
