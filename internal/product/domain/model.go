package domain

import "time"

// Product is a catalog entry. The surrogate id is the stable identifier;
// the user-editable reference carries a unique index. Price, stock, and
// sold are optional and unconstrained.
type Product struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Reference string    `gorm:"not null" json:"reference"`
	Name      *string   `json:"name,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	Stock     *int64    `json:"stock,omitempty"`
	Sold      *int64    `json:"sold,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
