package models

import (
	"stowage/src/types"
	"time"
)

type Reservation struct {
	ID               uint                    `gorm:"primarykey" json:"id"`
	ListingID        uint                    `json:"listing_id,omitempty"`
	HostID           uint                    `json:"host_id,omitempty"`
	ClientID         uint                    `json:"client_id,omitempty"`
	SpaceRequested   float64                 `json:"space_requested"`
	StartDate        time.Time               `json:"start_date"`
	EndDate          time.Time               `json:"end_date"`
	TotalCost        float64                 `json:"total_cost"`
	Status           types.ReservationStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Message          *string                 `json:"message,omitempty"`
	Items            *string                 `json:"items,omitempty"`
	Rated            bool                    `json:"rated"`
	PaymentCompleted bool                    `json:"payment_completed"`
	ClearedByHost    bool                    `json:"cleared_by_host"`
	ClearedByClient  bool                    `json:"cleared_by_client"`

	Listing *Listing `gorm:"foreignKey:listing_id" json:"listing,omitempty"`
	Host    *User    `gorm:"foreignKey:host_id" json:"host,omitempty"`
	Client  *User    `gorm:"foreignKey:client_id" json:"client,omitempty"`

	types.Timestamps
}
