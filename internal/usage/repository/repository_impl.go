package repository

import (
	"context"

	"github.com/prompthub/api/internal/usage/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, event *domain.UsageEvent) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO usage_events (id, template_id, user_id, used_at)
		 VALUES (?, ?, ?, ?)`,
		event.ID,
		event.TemplateID,
		event.UserID,
		event.UsedAt,
	).Error
}
