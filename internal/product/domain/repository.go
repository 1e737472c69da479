package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Product, error)
	Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
