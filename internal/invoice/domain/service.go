package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

var (
	ErrInvalidReference    = errors.New("invalid_reference")
	ErrInvalidDate         = errors.New("invalid_date")
	ErrInvalidCustomerName = errors.New("invalid_customer_name")
)

// ItemInput describes one line to persist. Quantity defaults to 1 when
// zero. TotalPrice is taken verbatim; the service performs no arithmetic
// validation against quantity and unit price.
type ItemInput struct {
	ProductID   *int64
	ProductName string
	Quantity    int64
	UnitPrice   float64
	TotalPrice  float64
}

type CreateInvoiceRequest struct {
	Reference       string
	Date            datatypes.Date
	DueDate         *datatypes.Date
	CustomerID      *int64
	CustomerName    string
	CustomerAddress string
	Subtotal        float64
	Tax             float64
	Total           float64
	Items           []ItemInput
}

// Patch is an explicit partial update for invoice fields. Nil fields are
// left untouched; non-nil values overwrite, including zero values.
type Patch struct {
	Reference       *string
	Date            *datatypes.Date
	DueDate         *datatypes.Date
	CustomerID      *int64
	CustomerName    *string
	CustomerAddress *string
	Subtotal        *float64
	Tax             *float64
	Total           *float64
}

func (p Patch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Reference != nil {
		changes["reference"] = *p.Reference
	}
	if p.Date != nil {
		changes["date"] = *p.Date
	}
	if p.DueDate != nil {
		changes["due_date"] = *p.DueDate
	}
	if p.CustomerID != nil {
		changes["customer_id"] = *p.CustomerID
	}
	if p.CustomerName != nil {
		changes["customer_name"] = *p.CustomerName
	}
	if p.CustomerAddress != nil {
		changes["customer_address"] = *p.CustomerAddress
	}
	if p.Subtotal != nil {
		changes["subtotal"] = *p.Subtotal
	}
	if p.Tax != nil {
		changes["tax"] = *p.Tax
	}
	if p.Total != nil {
		changes["total"] = *p.Total
	}
	return changes
}

// Service composes invoices together with their line items. An invoice
// owns its items exclusively: updates that carry a new item set replace
// the previous one wholesale, and deleting an invoice removes every item.
type Service interface {
	// Create persists the invoice and all its items in one transaction.
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	// GetByID returns the invoice with items eagerly loaded, or nil.
	GetByID(ctx context.Context, id int64) (*Invoice, error)
	GetAll(ctx context.Context) ([]Invoice, error)
	Search(ctx context.Context, query string, limit int) ([]Invoice, error)
	// Update patches invoice fields and, when items is non-nil, replaces
	// the whole item set, atomically. A nil items slice leaves the
	// existing items untouched; an empty non-nil slice clears them.
	Update(ctx context.Context, id int64, patch Patch, items []ItemInput) (*Invoice, error)
	// Delete removes the invoice and all its owned items.
	Delete(ctx context.Context, id int64) (*Invoice, error)
	// GetForCustomer lists a customer's invoices, newest date first.
	// Unknown or non-positive ids yield an empty list, never an error.
	GetForCustomer(ctx context.Context, customerID int64) ([]Invoice, error)
}
