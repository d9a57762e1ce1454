package repository

import (
	"context"
	"time"

	"github.com/prompthub/api/internal/ranking/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindWeekly(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT t.id AS template_id,
		        t.title,
		        t.description,
		        t.owner_id,
		        p.display_name AS owner_display_name,
		        p.avatar_url AS owner_avatar_url,
		        COUNT(e.id) AS use_count_weekly
		 FROM usage_events e
		 JOIN templates t ON t.id = e.template_id
		 LEFT JOIN profiles p ON p.id = t.owner_id
		 WHERE e.used_at >= ?
		 GROUP BY t.id, t.title, t.description, t.owner_id, p.display_name, p.avatar_url
		 ORDER BY use_count_weekly DESC, t.id ASC
		 LIMIT ?`,
		since,
		limit,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
