package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/prompthub/api/internal/authtoken"
	"github.com/prompthub/api/internal/authz"
	"github.com/prompthub/api/internal/clock"
	templatedomain "github.com/prompthub/api/internal/template/domain"
	"github.com/prompthub/api/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	TemplateRepo templatedomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	templateRepo templatedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("usage.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		templateRepo: p.TemplateRepo,
	}
}

// Record writes a usage event and bumps the template's use_count. The two
// writes share one transaction: either both land or neither does, so the
// counter and the event log never diverge.
func (s *Service) Record(ctx context.Context, principal authtoken.Principal, req domain.RecordRequest) (domain.UsageEvent, error) {
	templateID, err := uuid.Parse(strings.TrimSpace(req.TemplateID))
	if err != nil {
		return domain.UsageEvent{}, domain.ErrInvalidTemplateID
	}

	template, err := s.templateRepo.FindByID(ctx, s.db, templateID)
	if err != nil {
		return domain.UsageEvent{}, err
	}
	if template == nil {
		return domain.UsageEvent{}, templatedomain.ErrNotFound
	}

	guard := authz.Resource{OwnerID: template.OwnerID, IsPublic: template.IsPublic}
	if err := authz.CanRecordUsage(guard, principal); err != nil {
		return domain.UsageEvent{}, err
	}

	event := domain.UsageEvent{
		ID:         s.genID.Generate(),
		TemplateID: templateID,
		UserID:     principal.UserID,
		UsedAt:     s.clock.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &event); err != nil {
			return err
		}

		// The increment is a single conditional UPDATE, so concurrent
		// recordings serialize on the row instead of losing updates.
		affected, err := s.templateRepo.IncrementUseCount(ctx, tx, templateID)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Template vanished between the load and the increment; roll the
			// event back rather than leave the books unbalanced.
			return templatedomain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.UsageEvent{}, err
	}

	s.log.Info("usage recorded",
		zap.String("template_id", templateID.String()),
		zap.String("user_id", principal.UserID.String()),
	)

	return event, nil
}
