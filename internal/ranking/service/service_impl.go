package service

import (
	"context"

	"github.com/prompthub/api/internal/clock"
	"github.com/prompthub/api/internal/ranking/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ranking.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Weekly recomputes the trailing seven-day leaderboard on every call.
func (s *Service) Weekly(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit < domain.MinLimit || limit > domain.MaxLimit {
		return nil, domain.ErrInvalidLimit
	}

	since := s.clock.Now().AddDate(0, 0, -domain.WindowDays)
	entries, err := s.repo.FindWeekly(ctx, s.db, since, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}
