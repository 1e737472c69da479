package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/facturo/internal/invoice/domain"
	"github.com/smallbiznis/facturo/pkg/db/option"
	"github.com/smallbiznis/facturo/pkg/query"
	"gorm.io/gorm"
)

// Invoices list newest first everywhere; reference and the customer-name
// snapshot are the searchable text fields.
var searchSpec = query.Spec{
	TextColumns: []string{"reference", "customer_name"},
	Order:       "date DESC, id DESC",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			`INSERT INTO invoices (id, reference, date, due_date, customer_id, customer_name,
			                       customer_address, subtotal, tax, total, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			invoice.ID,
			invoice.Reference,
			invoice.Date,
			invoice.DueDate,
			invoice.CustomerID,
			invoice.CustomerName,
			invoice.CustomerAddress,
			invoice.Subtotal,
			invoice.Tax,
			invoice.Total,
			invoice.CreatedAt,
			invoice.UpdatedAt,
		).Error
		if err != nil {
			return err
		}
		return insertItems(tx, invoice.Items)
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, q string, limit int) ([]domain.Invoice, error) {
	return query.Search[domain.Invoice](ctx, db, searchSpec, q,
		option.WithPreload("Items"),
		option.WithLimit(limit),
	)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any, items []domain.InvoiceItem, replaceItems bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			err := tx.Model(&domain.Invoice{}).
				Where("id = ?", id).
				Updates(changes).Error
			if err != nil {
				return err
			}
		}
		if replaceItems {
			err := tx.Where("invoice_id = ?", id).
				Delete(&domain.InvoiceItem{}).Error
			if err != nil {
				return err
			}
			if err := insertItems(tx, items); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("invoice_id = ?", id).
			Delete(&domain.InvoiceItem{}).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).
			Delete(&domain.Invoice{}).Error
	})
}

func (r *repo) FindForCustomer(ctx context.Context, db *gorm.DB, customerID int64) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("date DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func insertItems(tx *gorm.DB, items []domain.InvoiceItem) error {
	for i := range items {
		err := tx.Exec(
			`INSERT INTO invoice_items (id, invoice_id, product_id, product_name, quantity, unit_price, total_price)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			items[i].ID,
			items[i].InvoiceID,
			items[i].ProductID,
			items[i].ProductName,
			items[i].Quantity,
			items[i].UnitPrice,
			items[i].TotalPrice,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
