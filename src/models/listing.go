package models

import (
	"stowage/src/types"
	"time"
)

type Listing struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	HostID         uint       `json:"host_id,omitempty"`
	Title          string     `json:"title,omitempty"`
	Slug           string     `json:"slug,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Location       string     `json:"location,omitempty"`
	Price          float64    `json:"price"`
	SpaceAvailable float64    `json:"space_available"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableTo    *time.Time `json:"available_to,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	Likes          uint       `json:"likes"`

	Host     *User     `gorm:"foreignKey:host_id" json:"host,omitempty"`
	Bookings []Booking `gorm:"foreignKey:listing_id" json:"bookings,omitempty"`

	types.Timestamps
}
