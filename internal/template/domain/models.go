package domain

import (
	"time"

	"github.com/google/uuid"
)

// Template is the shareable content record. The storage path points at the
// template body in object storage; it is derived from (owner, id) at creation
// and never changes afterwards.
type Template struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `gorm:"not null;index" json:"is_public"`
	StoragePath string    `gorm:"not null" json:"storage_path"`
	UseCount    int64     `gorm:"not null;default:0" json:"use_count"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	// Joined from profiles on reads; not columns of the templates table.
	OwnerDisplayName string `gorm:"->;-:migration" json:"owner_display_name,omitempty"`
	OwnerAvatarURL   string `gorm:"->;-:migration" json:"owner_avatar_url,omitempty"`
}

func (Template) TableName() string {
	return "templates"
}
