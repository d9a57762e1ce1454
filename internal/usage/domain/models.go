package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// UsageEvent records that a user invoked a template at a point in time.
// Rows are immutable once written; each insert is paired with a use_count
// increment on the referenced template inside the same transaction.
type UsageEvent struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	TemplateID uuid.UUID    `gorm:"type:uuid;not null;index" json:"template_id"`
	UserID     uuid.UUID    `gorm:"type:uuid;not null" json:"user_id"`
	UsedAt     time.Time    `gorm:"not null;index" json:"used_at"`
}

func (UsageEvent) TableName() string {
	return "usage_events"
}
