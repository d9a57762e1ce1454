package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/prompthub/api/internal/template/domain"
	"gorm.io/gorm"
)

const selectColumns = `t.id, t.owner_id, t.title, t.description, t.is_public,
	t.storage_path, t.use_count, t.created_at, t.updated_at,
	p.display_name AS owner_display_name, p.avatar_url AS owner_avatar_url`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, template *domain.Template) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO templates (id, owner_id, title, description, is_public, storage_path, use_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		template.ID,
		template.OwnerID,
		template.Title,
		template.Description,
		template.IsPublic,
		template.StoragePath,
		template.UseCount,
		template.CreatedAt,
		template.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Template, error) {
	var template domain.Template
	err := db.WithContext(ctx).Raw(
		`SELECT `+selectColumns+`
		 FROM templates t
		 LEFT JOIN profiles p ON p.id = t.owner_id
		 WHERE t.id = ?`,
		id,
	).Scan(&template).Error
	if err != nil {
		return nil, err
	}
	if template.ID == uuid.Nil {
		return nil, nil
	}
	return &template, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, filter domain.ListFilter) ([]domain.Template, error) {
	query := `SELECT ` + selectColumns + `
		 FROM templates t
		 LEFT JOIN profiles p ON p.id = t.owner_id
		 WHERE `

	var args []interface{}
	switch filter {
	case domain.FilterMine:
		query += `t.owner_id = ?`
		args = append(args, ownerID)
	case domain.FilterPublic:
		query += `t.is_public = ?`
		args = append(args, true)
	default:
		query += `(t.owner_id = ? OR t.is_public = ?)`
		args = append(args, ownerID, true)
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	var templates []domain.Template
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, template *domain.Template) error {
	// id and storage_path are deliberately not part of the SET list.
	return db.WithContext(ctx).Exec(
		`UPDATE templates SET title = ?, description = ?, is_public = ?, updated_at = ? WHERE id = ?`,
		template.Title,
		template.Description,
		template.IsPublic,
		template.UpdatedAt,
		template.ID,
	).Error
}

func (r *repo) DeleteByIDAndOwner(ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM templates WHERE id = ? AND owner_id = ?`,
		id,
		ownerID,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) IncrementUseCount(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE templates SET use_count = use_count + 1 WHERE id = ?`,
		id,
	)
	return result.RowsAffected, result.Error
}
