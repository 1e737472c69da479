package repository

import (
	"context"

	"github.com/smallbiznis/facturo/internal/product/domain"
	"github.com/smallbiznis/facturo/pkg/db/option"
	"github.com/smallbiznis/facturo/pkg/query"
	"gorm.io/gorm"
)

// Products sort by reference, case-insensitively, in every listing.
var searchSpec = query.Spec{
	TextColumns: []string{"reference", "name"},
	Order:       "lower(reference) ASC, id ASC",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (id, reference, name, price, stock, sold, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Reference,
		product.Name,
		product.Price,
		product.Stock,
		product.Sold,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, reference, name, price, stock, sold, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, reference, name, price, stock, sold, created_at, updated_at
		 FROM products WHERE reference = ?`,
		reference,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.Product, error) {
	return query.Search[domain.Product](ctx, db, searchSpec, q, option.WithLimit(limit))
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(changes).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Product{}).Error
}
