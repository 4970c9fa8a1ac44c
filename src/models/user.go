package models

import (
	"stowage/src/types"
)

type User struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `gorm:"uniqueIndex" json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`

	Listings     []Listing     `gorm:"foreignKey:host_id" json:"listings,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:client_id" json:"reservations,omitempty"`

	types.Timestamps
}
