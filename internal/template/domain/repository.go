package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository methods take the database handle explicitly so services can run
// them inside a transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, template *Template) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Template, error)
	List(ctx context.Context, db *gorm.DB, ownerID uuid.UUID, filter ListFilter) ([]Template, error)
	Update(ctx context.Context, db *gorm.DB, template *Template) error
	// DeleteByIDAndOwner deletes only when both id and owner match, and
	// reports how many rows went away.
	DeleteByIDAndOwner(ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) (int64, error)
	// IncrementUseCount bumps the counter by one as a single conditional
	// statement; callers pair it with a usage-event insert in one transaction.
	IncrementUseCount(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
