package models

import (
	"stowage/src/types"

	"github.com/google/uuid"
)

type Notification struct {
	ID             uuid.UUID                `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID         uint                     `json:"user_id,omitempty"`
	ReferenceType  string                   `json:"ref_type"`
	ReferenceValue string                   `json:"ref_value"`
	Title          string                   `json:"title"`
	Description    *string                  `json:"description"`
	ReferenceBody  *types.JSONB             `gorm:"type:jsonb" json:"ref_body"`
	Status         types.NotificationStatus `gorm:"default:'unread'" json:"status"`

	User *User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
