package reservations

import (
	"math"
	"stowage/src/models"
	"time"
)

const day = 24 * time.Hour

// overlaps reports whether the booking interval [b.StartDate, b.EndDate)
// intersects [start, end). End boundaries are exclusive on both sides, so a
// booking ending on the day another starts does not collide with it.
func overlaps(b *models.Booking, start, end time.Time) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}

// AvailableSpace returns the listing capacity left over [start, end) after
// subtracting every overlapping booking. The result is deliberately not
// floored at zero: callers checking room for a request compare the signed
// value, and a negative number already proves insufficient availability.
func AvailableSpace(bookings []models.Booking, start, end time.Time, totalSpace float64) float64 {
	var reserved float64
	for i := range bookings {
		if overlaps(&bookings[i], start, end) {
			reserved += bookings[i].ReservedSpace
		}
	}
	return totalSpace - reserved
}

type DaySpace struct {
	Date      time.Time `json:"date"`
	Available float64   `json:"available"`
}

// DailyAvailability breaks availability down per calendar day from start
// through end inclusive. Each day is tested as its own [day, day+24h)
// window; values are floored at 0 and rounded to 2 decimals for display.
func DailyAvailability(bookings []models.Booking, start, end time.Time, totalSpace float64) []DaySpace {
	days := []DaySpace{}
	for d := start; !d.After(end); d = d.Add(day) {
		available := AvailableSpace(bookings, d, d.Add(day), totalSpace)
		days = append(days, DaySpace{
			Date:      d,
			Available: round2(math.Max(0, available)),
		})
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
