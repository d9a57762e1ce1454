package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prompthub/api/internal/authtoken"
	"github.com/prompthub/api/internal/authz"
	"github.com/prompthub/api/internal/clock"
	"github.com/prompthub/api/internal/template/domain"
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
		log:   p.Log.Named("template.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, principal authtoken.Principal, filter string) ([]domain.Template, error) {
	parsed, err := domain.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	templates, err := s.repo.List(ctx, s.db, principal.UserID, parsed)
	if err != nil {
		return nil, err
	}
	if templates == nil {
		templates = []domain.Template{}
	}
	return templates, nil
}

func (s *Service) GetByID(ctx context.Context, principal authtoken.Principal, id string) (domain.Template, error) {
	template, err := s.findByID(ctx, id)
	if err != nil {
		return domain.Template{}, err
	}
	if err := authz.CanRead(guardView(template), principal); err != nil {
		return domain.Template{}, err
	}
	return *template, nil
}

func (s *Service) Create(ctx context.Context, principal authtoken.Principal, req domain.CreateRequest) (domain.Template, error) {
	title, description, err := validateFields(req.Title, req.Description)
	if err != nil {
		return domain.Template{}, err
	}

	now := s.clock.Now()
	template := domain.Template{
		ID:          uuid.New(),
		OwnerID:     principal.UserID,
		Title:       title,
		Description: description,
		IsPublic:    req.IsPublic,
		UseCount:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// The storage path is always derived on the server; a client-supplied
	// value never reaches this point.
	template.StoragePath = fmt.Sprintf("%s/%s.md", template.OwnerID, template.ID)

	if err := s.repo.Insert(ctx, s.db, &template); err != nil {
		return domain.Template{}, err
	}

	s.log.Info("template created",
		zap.String("template_id", template.ID.String()),
		zap.String("owner_id", template.OwnerID.String()),
	)

	// Re-read so the response includes the owner profile join.
	return s.reload(ctx, template.ID)
}

func (s *Service) Update(ctx context.Context, principal authtoken.Principal, id string, req domain.UpdateRequest) (domain.Template, error) {
	template, err := s.findByID(ctx, id)
	if err != nil {
		return domain.Template{}, err
	}
	if err := authz.CanWrite(guardView(template), principal); err != nil {
		return domain.Template{}, err
	}

	title, description, err := validateFields(req.Title, req.Description)
	if err != nil {
		return domain.Template{}, err
	}

	template.Title = title
	template.Description = description
	template.IsPublic = req.IsPublic
	template.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, template); err != nil {
		return domain.Template{}, err
	}

	return s.reload(ctx, template.ID)
}

func (s *Service) Delete(ctx context.Context, principal authtoken.Principal, id string) error {
	template, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanWrite(guardView(template), principal); err != nil {
		return err
	}

	// Delete conditioned on owner as well: if ownership changed between the
	// check above and this statement, zero rows match and the template is
	// reported as gone rather than forbidden.
	affected, err := s.repo.DeleteByIDAndOwner(ctx, s.db, template.ID, principal.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("template deleted", zap.String("template_id", template.ID.String()))
	return nil
}

func (s *Service) Clone(ctx context.Context, principal authtoken.Principal, id string) (domain.Template, error) {
	original, err := s.findByID(ctx, id)
	if err != nil {
		return domain.Template{}, err
	}
	if err := authz.CanClone(guardView(original), principal); err != nil {
		return domain.Template{}, err
	}

	now := s.clock.Now()
	cloned := domain.Template{
		ID:          uuid.New(),
		OwnerID:     principal.UserID,
		Title:       original.Title + " (clone)",
		Description: original.Description,
		IsPublic:    false,
		StoragePath: fmt.Sprintf("%s/clone_%s.md", principal.UserID, original.ID),
		UseCount:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &cloned); err != nil {
		return domain.Template{}, err
	}

	s.log.Info("template cloned",
		zap.String("source_id", original.ID.String()),
		zap.String("template_id", cloned.ID.String()),
	)

	return s.reload(ctx, cloned.ID)
}

func (s *Service) findByID(ctx context.Context, raw string) (*domain.Template, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	template, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return template, nil
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (domain.Template, error) {
	template, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Template{}, err
	}
	if template == nil {
		return domain.Template{}, domain.ErrNotFound
	}
	return *template, nil
}

func validateFields(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", domain.ErrTitleRequired
	}
	if len([]rune(title)) > domain.MaxTitleLen {
		return "", "", domain.ErrTitleTooLong
	}
	if len([]rune(description)) > domain.MaxDescriptionLen {
		return "", "", domain.ErrDescriptionTooLong
	}
	return title, description, nil
}

func guardView(t *domain.Template) authz.Resource {
	return authz.Resource{OwnerID: t.OwnerID, IsPublic: t.IsPublic}
}
