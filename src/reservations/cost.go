package reservations

import (
	"math"
	"time"
)

// TotalCost computes the price of renting space over [start, end).
// Billing rounds a fractional-day span UP to whole days, so a 4.5-day span
// bills as 5 days even though overlap checks treat the interval as
// half-open. Every price shown to a user must come through here so that
// estimates and the persisted reservation cost can never diverge.
func TotalCost(pricePerUnit, space float64, start, end time.Time) float64 {
	days := math.Ceil(end.Sub(start).Hours() / 24)
	return round2(pricePerUnit * space * days)
}
