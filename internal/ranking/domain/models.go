package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Entry is one row of the weekly leaderboard. Entries are derived from
// usage events on the fly and never persisted.
type Entry struct {
	Rank             int       `gorm:"-" json:"rank"`
	TemplateID       uuid.UUID `json:"template_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	OwnerID          uuid.UUID `json:"owner_id"`
	OwnerDisplayName string    `json:"owner_display_name,omitempty"`
	OwnerAvatarURL   string    `json:"owner_avatar_url,omitempty"`
	UseCountWeekly   int64     `json:"use_count_weekly"`
}

const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100

	// WindowDays is the trailing aggregation window, anchored at query time.
	WindowDays = 7
)

type Service interface {
	Weekly(ctx context.Context, limit int) ([]Entry, error)
}

var ErrInvalidLimit = errors.New("limit must be between 1 and 100")
