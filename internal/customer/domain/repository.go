package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Customer, error)
	Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]Customer, error)
	Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
