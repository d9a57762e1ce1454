package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// FindWeekly aggregates usage events recorded since the given instant,
	// most used first. Ties break on ascending template id so the order is
	// deterministic.
	FindWeekly(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]Entry, error)
}
