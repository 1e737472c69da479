package domain

import (
	"context"
	"errors"
)

var ErrInvalidReference = errors.New("invalid_reference")

type CreateProductRequest struct {
	Reference string
	Name      *string
	Price     *float64
	Stock     *int64
	Sold      *int64
}

// Patch is an explicit partial update. Nil fields are left untouched;
// non-nil values overwrite, including zero values.
type Patch struct {
	Name  *string
	Price *float64
	Stock *int64
	Sold  *int64
}

func (p Patch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.Stock != nil {
		changes["stock"] = *p.Stock
	}
	if p.Sold != nil {
		changes["sold"] = *p.Sold
	}
	return changes
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByReference(ctx context.Context, reference string) (*Product, error)
	GetAll(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string, limit int) ([]Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) (*Product, error)
}
