package reservations

import (
	"stowage/src/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func booking(start, end time.Time, space float64) models.Booking {
	return models.Booking{StartDate: start, EndDate: end, ReservedSpace: space}
}

func TestAvailableSpaceNoBookings(t *testing.T) {
	got := AvailableSpace(nil, date(2026, 3, 1), date(2026, 3, 5), 10)
	assert.Equal(t, 10.0, got)
}

func TestAvailableSpaceIgnoresNonOverlapping(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 2, 1), date(2026, 2, 10), 4),
		booking(date(2026, 3, 10), date(2026, 3, 20), 5),
	}
	got := AvailableSpace(bookings, date(2026, 3, 1), date(2026, 3, 5), 10)
	assert.Equal(t, 10.0, got)
}

func TestAvailableSpaceHalfOpenBoundary(t *testing.T) {
	// A booking ending exactly on the query start shares no days with it.
	bookings := []models.Booking{
		booking(date(2026, 3, 1), date(2026, 3, 5), 6),
		booking(date(2026, 3, 10), date(2026, 3, 12), 6),
	}
	got := AvailableSpace(bookings, date(2026, 3, 5), date(2026, 3, 10), 10)
	assert.Equal(t, 10.0, got)
}

func TestAvailableSpaceSubtractsContained(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 3, 2), date(2026, 3, 4), 3),
		booking(date(2026, 3, 3), date(2026, 3, 5), 2.5),
	}
	got := AvailableSpace(bookings, date(2026, 3, 1), date(2026, 3, 10), 10)
	assert.Equal(t, 4.5, got)
}

func TestAvailableSpaceGoesNegative(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 3, 1), date(2026, 3, 10), 8),
		booking(date(2026, 3, 1), date(2026, 3, 10), 5),
	}
	got := AvailableSpace(bookings, date(2026, 3, 2), date(2026, 3, 4), 10)
	assert.Equal(t, -3.0, got)
}

func TestDailyAvailabilityIncludesBothEndpoints(t *testing.T) {
	days := DailyAvailability(nil, date(2026, 3, 1), date(2026, 3, 4), 10)
	assert.Len(t, days, 4)
	assert.Equal(t, date(2026, 3, 1), days[0].Date)
	assert.Equal(t, date(2026, 3, 4), days[3].Date)
}

func TestDailyAvailabilityPerDayBreakdown(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 3, 2), date(2026, 3, 4), 4),
	}
	days := DailyAvailability(bookings, date(2026, 3, 1), date(2026, 3, 4), 10)
	assert.Equal(t, 10.0, days[0].Available)
	assert.Equal(t, 6.0, days[1].Available)
	assert.Equal(t, 6.0, days[2].Available)
	// End date of the booking is exclusive, so March 4 is free again.
	assert.Equal(t, 10.0, days[3].Available)
}

func TestDailyAvailabilityNeverNegative(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 3, 1), date(2026, 3, 10), 8),
		booking(date(2026, 3, 1), date(2026, 3, 10), 7),
	}
	days := DailyAvailability(bookings, date(2026, 3, 1), date(2026, 3, 5), 10)
	for _, d := range days {
		assert.GreaterOrEqual(t, d.Available, 0.0)
	}
}

func TestDailyAvailabilityRoundsToCents(t *testing.T) {
	bookings := []models.Booking{
		booking(date(2026, 3, 1), date(2026, 3, 10), 3.333),
	}
	days := DailyAvailability(bookings, date(2026, 3, 1), date(2026, 3, 2), 10)
	assert.Equal(t, 6.67, days[0].Available)
}
