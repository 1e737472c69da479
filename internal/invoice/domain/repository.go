package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Insert persists the invoice and its preassembled items as one unit
	// of work.
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Invoice, error)
	Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]Invoice, error)
	// Update applies field changes and, when replaceItems is set, swaps
	// the invoice's item set for items inside a single transaction.
	Update(ctx context.Context, db *gorm.DB, id int64, changes map[string]any, items []InvoiceItem, replaceItems bool) error
	// Delete removes the invoice row and every owned item.
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindForCustomer(ctx context.Context, db *gorm.DB, customerID int64) ([]Invoice, error)
}
