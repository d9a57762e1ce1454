package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prompthub/api/internal/authtoken"
	"github.com/prompthub/api/internal/authz"
	"github.com/prompthub/api/internal/clock"
	profiledomain "github.com/prompthub/api/internal/profile/domain"
	"github.com/prompthub/api/internal/template/domain"
	"github.com/prompthub/api/internal/template/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTemplateService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&profiledomain.Profile{}, &domain.Template{}))

	fc := clock.NewFakeClock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: fc,
		Repo:  repository.Provide(),
	})
	return svc, db, fc
}

func seedProfile(t *testing.T, db *gorm.DB, id uuid.UUID, name string) {
	t.Helper()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Exec(
		`INSERT INTO profiles (id, display_name, avatar_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, "https://cdn.example.com/"+name+".png", now, now,
	).Error)
}

func principal(id uuid.UUID) authtoken.Principal {
	return authtoken.Principal{UserID: id, Email: "user@example.com"}
}

func TestCreateDerivesServerFields(t *testing.T) {
	svc, db, fc := setupTemplateService(t)
	owner := uuid.New()
	seedProfile(t, db, owner, "alice")

	created, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{
		Title:       "  Summarize meeting notes  ",
		Description: "Condense a transcript into bullet points.",
		IsPublic:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Summarize meeting notes", created.Title)
	assert.Equal(t, owner, created.OwnerID)
	assert.True(t, created.IsPublic)
	assert.EqualValues(t, 0, created.UseCount)
	assert.Equal(t, fmt.Sprintf("%s/%s.md", owner, created.ID), created.StoragePath)
	assert.Equal(t, fc.Now(), created.CreatedAt.UTC())
	assert.Equal(t, fc.Now(), created.UpdatedAt.UTC())
	assert.Equal(t, "alice", created.OwnerDisplayName)
	assert.NotEmpty(t, created.OwnerAvatarURL)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	owner := uuid.New()

	tests := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{"empty title", domain.CreateRequest{Title: ""}, domain.ErrTitleRequired},
		{"whitespace title", domain.CreateRequest{Title: "   "}, domain.ErrTitleRequired},
		{"title too long", domain.CreateRequest{Title: strings.Repeat("a", 201)}, domain.ErrTitleTooLong},
		{"description too long", domain.CreateRequest{Title: "t", Description: strings.Repeat("b", 1001)}, domain.ErrDescriptionTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), principal(owner), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Boundary lengths are accepted.
	_, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{
		Title:       strings.Repeat("a", 200),
		Description: strings.Repeat("b", 1000),
	})
	assert.NoError(t, err)
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	owner := uuid.New()
	stranger := uuid.New()

	private, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{Title: "private"})
	require.NoError(t, err)
	public, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{Title: "public", IsPublic: true})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), principal(owner), private.ID.String())
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), principal(stranger), private.ID.String())
	assert.ErrorIs(t, err, authz.ErrPrivate)

	_, err = svc.GetByID(context.Background(), principal(stranger), public.ID.String())
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), principal(owner), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), principal(owner), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReplacesFieldsAndKeepsPath(t *testing.T) {
	svc, _, fc := setupTemplateService(t)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{
		Title:       "draft",
		Description: "first pass",
	})
	require.NoError(t, err)

	fc.Advance(time.Hour)
	updated, err := svc.Update(context.Background(), principal(owner), created.ID.String(), domain.UpdateRequest{
		Title:    "final",
		IsPublic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Title)
	assert.Empty(t, updated.Description)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, created.StoragePath, updated.StoragePath)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, fc.Now(), updated.UpdatedAt.UTC())
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	owner := uuid.New()
	stranger := uuid.New()

	// Public templates are readable by anyone but writable only by the owner.
	created, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{Title: "shared", IsPublic: true})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), principal(stranger), created.ID.String(), domain.UpdateRequest{Title: "hijacked"})
	assert.ErrorIs(t, err, authz.ErrNotOwner)
}

func TestDelete(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{Title: "doomed", IsPublic: true})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), principal(stranger), created.ID.String())
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), principal(owner), created.ID.String()))

	_, err = svc.GetByID(context.Background(), principal(owner), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), principal(owner), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClone(t *testing.T) {
	svc, db, _ := setupTemplateService(t)
	owner := uuid.New()
	cloner := uuid.New()
	seedProfile(t, db, cloner, "bob")

	source, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{
		Title:       "Review my PR",
		Description: "Checklist prompt",
		IsPublic:    true,
	})
	require.NoError(t, err)

	cloned, err := svc.Clone(context.Background(), principal(cloner), source.ID.String())
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, cloned.ID)
	assert.Equal(t, cloner, cloned.OwnerID)
	assert.Equal(t, "Review my PR (clone)", cloned.Title)
	assert.Equal(t, source.Description, cloned.Description)
	assert.False(t, cloned.IsPublic)
	assert.EqualValues(t, 0, cloned.UseCount)
	assert.Equal(t, fmt.Sprintf("%s/clone_%s.md", cloner, source.ID), cloned.StoragePath)
	assert.Equal(t, "bob", cloned.OwnerDisplayName)
}

func TestClonePrivateTemplate(t *testing.T) {
	svc, _, _ := setupTemplateService(t)
	owner := uuid.New()
	stranger := uuid.New()

	source, err := svc.Create(context.Background(), principal(owner), domain.CreateRequest{Title: "secret"})
	require.NoError(t, err)

	_, err = svc.Clone(context.Background(), principal(stranger), source.ID.String())
	assert.ErrorIs(t, err, authz.ErrPrivateClone)

	// Owners may duplicate their own private templates.
	cloned, err := svc.Clone(context.Background(), principal(owner), source.ID.String())
	require.NoError(t, err)
	assert.Equal(t, owner, cloned.OwnerID)
}

func TestListFilters(t *testing.T) {
	svc, _, fc := setupTemplateService(t)
	alice := uuid.New()
	bob := uuid.New()

	mk := func(p authtoken.Principal, title string, public bool) domain.Template {
		t.Helper()
		fc.Advance(time.Minute)
		created, err := svc.Create(context.Background(), p, domain.CreateRequest{Title: title, IsPublic: public})
		require.NoError(t, err)
		return created
	}

	mk(principal(alice), "alice private", false)
	mk(principal(alice), "alice public", true)
	mk(principal(bob), "bob private", false)
	mk(principal(bob), "bob public", true)

	titles := func(templates []domain.Template) []string {
		out := make([]string, 0, len(templates))
		for _, tmpl := range templates {
			out = append(out, tmpl.Title)
		}
		return out
	}

	mine, err := svc.List(context.Background(), principal(alice), "mine")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice private", "alice public"}, titles(mine))

	public, err := svc.List(context.Background(), principal(alice), "public")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice public", "bob public"}, titles(public))

	all, err := svc.List(context.Background(), principal(alice), "all")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice private", "alice public", "bob public"}, titles(all))

	// Empty filter defaults to all, newest first.
	defaulted, err := svc.List(context.Background(), principal(bob), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "bob private", "alice public"}, titles(defaulted))

	_, err = svc.List(context.Background(), principal(alice), "everything")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
