package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prompthub/api/internal/authtoken"
	"github.com/prompthub/api/internal/authz"
	"github.com/prompthub/api/internal/clock"
	profiledomain "github.com/prompthub/api/internal/profile/domain"
	templatedomain "github.com/prompthub/api/internal/template/domain"
	templaterepository "github.com/prompthub/api/internal/template/repository"
	"github.com/prompthub/api/internal/usage/domain"
	"github.com/prompthub/api/internal/usage/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	_ = db.Exec("PRAGMA busy_timeout = 5000").Error

	require.NoError(t, db.AutoMigrate(
		&profiledomain.Profile{},
		&templatedomain.Template{},
		&domain.UsageEvent{},
	))
	return db
}

func setupUsageService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db := openTestDB(t, dsn)

	fc := clock.NewFakeClock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        mustNode(t),
		Clock:        fc,
		Repo:         repository.Provide(),
		TemplateRepo: templaterepository.Provide(),
	})
	return svc, db, fc
}

func seedTemplate(t *testing.T, db *gorm.DB, owner uuid.UUID, public bool) templatedomain.Template {
	t.Helper()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tmpl := templatedomain.Template{
		ID:          uuid.New(),
		OwnerID:     owner,
		Title:       "seed",
		IsPublic:    public,
		StoragePath: fmt.Sprintf("%s/seed.md", owner),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, templaterepository.Provide().Insert(context.Background(), db, &tmpl))
	return tmpl
}

func useCount(t *testing.T, db *gorm.DB, id uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Raw(`SELECT use_count FROM templates WHERE id = ?`, id).Scan(&count).Error)
	return count
}

func eventCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM usage_events`).Scan(&count).Error)
	return count
}

func TestRecordIncrementsUseCount(t *testing.T) {
	svc, db, fc := setupUsageService(t)
	owner := uuid.New()
	tmpl := seedTemplate(t, db, owner, false)

	p := authtoken.Principal{UserID: owner}
	event, err := svc.Record(context.Background(), p, domain.RecordRequest{TemplateID: tmpl.ID.String()})
	require.NoError(t, err)

	assert.NotZero(t, event.ID)
	assert.Equal(t, tmpl.ID, event.TemplateID)
	assert.Equal(t, owner, event.UserID)
	assert.Equal(t, fc.Now(), event.UsedAt)

	_, err = svc.Record(context.Background(), p, domain.RecordRequest{TemplateID: tmpl.ID.String()})
	require.NoError(t, err)

	assert.EqualValues(t, 2, useCount(t, db, tmpl.ID))
	assert.EqualValues(t, 2, eventCount(t, db))
}

func TestRecordPublicTemplateByAnyUser(t *testing.T) {
	svc, db, _ := setupUsageService(t)
	owner := uuid.New()
	stranger := uuid.New()
	tmpl := seedTemplate(t, db, owner, true)

	_, err := svc.Record(context.Background(), authtoken.Principal{UserID: stranger}, domain.RecordRequest{TemplateID: tmpl.ID.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, useCount(t, db, tmpl.ID))
}

func TestRecordPrivateTemplateForbidden(t *testing.T) {
	svc, db, _ := setupUsageService(t)
	owner := uuid.New()
	stranger := uuid.New()
	tmpl := seedTemplate(t, db, owner, false)

	_, err := svc.Record(context.Background(), authtoken.Principal{UserID: stranger}, domain.RecordRequest{TemplateID: tmpl.ID.String()})
	assert.ErrorIs(t, err, authz.ErrPrivateUsage)
	assert.EqualValues(t, 0, useCount(t, db, tmpl.ID))
	assert.EqualValues(t, 0, eventCount(t, db))
}

func TestRecordValidation(t *testing.T) {
	svc, _, _ := setupUsageService(t)
	p := authtoken.Principal{UserID: uuid.New()}

	_, err := svc.Record(context.Background(), p, domain.RecordRequest{TemplateID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplateID)

	_, err = svc.Record(context.Background(), p, domain.RecordRequest{TemplateID: "not-a-uuid"})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplateID)

	_, err = svc.Record(context.Background(), p, domain.RecordRequest{TemplateID: uuid.NewString()})
	assert.ErrorIs(t, err, templatedomain.ErrNotFound)
}

// vanishingTemplateRepo reports the template as present on the read but
// affects zero rows on the increment, as if the row were deleted between
// the visibility check and the counter update.
type vanishingTemplateRepo struct {
	templatedomain.Repository
	tmpl templatedomain.Template
}

func (r *vanishingTemplateRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*templatedomain.Template, error) {
	tmpl := r.tmpl
	return &tmpl, nil
}

func (r *vanishingTemplateRepo) IncrementUseCount(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

func TestRecordRollsBackWhenTemplateVanishes(t *testing.T) {
	_, db, fc := setupUsageService(t)
	owner := uuid.New()

	tmpl := templatedomain.Template{ID: uuid.New(), OwnerID: owner, IsPublic: true}
	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        mustNode(t),
		Clock:        fc,
		Repo:         repository.Provide(),
		TemplateRepo: &vanishingTemplateRepo{tmpl: tmpl},
	})

	_, err := svc.Record(context.Background(), authtoken.Principal{UserID: owner}, domain.RecordRequest{TemplateID: tmpl.ID.String()})
	assert.ErrorIs(t, err, templatedomain.ErrNotFound)

	// The event insert must not survive the failed increment.
	assert.EqualValues(t, 0, eventCount(t, db))
}

func TestRecordConcurrent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)", filepath.Join(t.TempDir(), "usage.db"))
	db := openTestDB(t, dsn)

	fc := clock.NewFakeClock(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        mustNode(t),
		Clock:        fc,
		Repo:         repository.Provide(),
		TemplateRepo: templaterepository.Provide(),
	})

	owner := uuid.New()
	tmpl := seedTemplate(t, db, owner, true)

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user := uuid.New()
			_, err := svc.Record(context.Background(), authtoken.Principal{UserID: user}, domain.RecordRequest{TemplateID: tmpl.ID.String()})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Greater(t, successes, 0)
	assert.EqualValues(t, successes, useCount(t, db, tmpl.ID))
	assert.EqualValues(t, successes, eventCount(t, db))
}
