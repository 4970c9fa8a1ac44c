package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "pending"
	RESERVATION_APPROVED  ReservationStatus = "approved"
	RESERVATION_DECLINED  ReservationStatus = "declined"
	RESERVATION_CANCELLED ReservationStatus = "cancelled"
	RESERVATION_COMPLETED ReservationStatus = "completed"
)

type NotificationStatus string

const (
	NOTIFICATION_UNREAD NotificationStatus = "unread"
	NOTIFICATION_READ   NotificationStatus = "read"
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type CreateListingRequestBody struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description,omitempty"`
	Location       string  `json:"location" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	SpaceAvailable float64 `json:"space_available" binding:"required,gt=0"`
	AvailableFrom  *string `json:"available_from,omitempty" binding:"omitempty,rentaldate"`
	AvailableTo    *string `json:"available_to,omitempty" binding:"omitempty,rentaldate,gtdate=AvailableFrom"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type UpdateListingRequestBody struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Price          *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	SpaceAvailable *float64 `json:"space_available,omitempty" binding:"omitempty,gt=0"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

type ListingQueryFilters struct {
	Location string   `form:"location"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,gt=0"`
	Owned    bool     `form:"owned"`
}

type AvailabilityQuery struct {
	StartDate string `form:"start_date" binding:"required,rentaldate"`
	EndDate   string `form:"end_date" binding:"required,rentaldate,gtdate=StartDate"`
}

type CreateReservationRequestBody struct {
	ListingID      uint    `json:"listing_id" binding:"required"`
	SpaceRequested float64 `json:"space_requested" binding:"required,gt=0"`
	StartDate      string  `json:"start_date" binding:"required,rentaldate"`
	EndDate        string  `json:"end_date" binding:"required,rentaldate,gtdate=StartDate"`
	Message        *string `json:"message,omitempty"`
	Items          *string `json:"items,omitempty"`
}

type UpdateReservationRequestBody struct {
	Status *ReservationStatus `json:"status,omitempty"`
	Rated  *bool              `json:"rated,omitempty"`
}

type RateListingRequestBody struct {
	ReservationID uint `json:"reservation_id" binding:"required"`
	Liked         bool `json:"liked"`
}

type ClearReservationRequestBody struct {
	Cleared bool `json:"cleared"`
}
