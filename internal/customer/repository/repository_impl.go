package repository

import (
	"context"

	"github.com/smallbiznis/facturo/internal/customer/domain"
	"github.com/smallbiznis/facturo/pkg/db/option"
	"github.com/smallbiznis/facturo/pkg/query"
	"gorm.io/gorm"
)

// searchSpec drives both list-all and substring/id search. Customers are
// always ordered by name, case-insensitively.
var searchSpec = query.Spec{
	TextColumns: []string{"name", "email", "address"},
	Order:       "lower(name) ASC, id ASC",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, name, address, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Address,
		nullable(customer.Email),
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, address, email, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.Customer, error) {
	return query.Search[domain.Customer](ctx, db, searchSpec, q, option.WithLimit(limit))
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(changes).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Customer{}).Error
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
