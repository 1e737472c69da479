// Package domain contains persistence models and contracts for invoices.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice stores a snapshot of the customer's name and address taken at
// creation time. The snapshot is the historical record; later edits to the
// customer do not touch it. Monetary figures are caller-supplied and never
// recomputed here.
type Invoice struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"not null" json:"reference"`
	Date            datatypes.Date  `gorm:"not null" json:"date"`
	DueDate         *datatypes.Date `json:"due_date,omitempty"`
	CustomerID      *int64          `gorm:"index" json:"customer_id,omitempty"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	Subtotal        float64         `gorm:"not null;default:0" json:"subtotal"`
	Tax             float64         `gorm:"not null;default:0" json:"tax"`
	Total           float64         `gorm:"not null;default:0" json:"total"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line on an invoice. ProductID is nil for ad hoc lines
// not tied to the catalog; ProductName is always a snapshot independent of
// the live product. TotalPrice is caller-supplied, not derived.
type InvoiceItem struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	InvoiceID   int64   `gorm:"not null;index" json:"invoice_id"`
	ProductID   *int64  `json:"product_id,omitempty"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int64   `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null;default:0" json:"unit_price"`
	TotalPrice  float64 `gorm:"not null;default:0" json:"total_price"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
