package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries owner display metadata. Rows are managed by the identity
// provider; this service only reads them when joining template owners.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
