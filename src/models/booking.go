package models

import (
	"stowage/src/types"
	"time"
)

// Booking is a committed space allocation against a listing. Rows exist
// only while the owning reservation is approved; the interval is half-open,
// EndDate is excluded from overlap checks.
type Booking struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ListingID     uint      `json:"listing_id,omitempty"`
	ReservationID uint      `json:"reservation_id,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	ReservedSpace float64   `json:"reserved_space"`

	Listing *Listing `gorm:"foreignKey:listing_id" json:"listing,omitempty"`

	types.Timestamps
}
