package domain

import "context"

type CreateCustomerRequest struct {
	Name    string
	Address string
	Email   string
}

// Patch is an explicit partial update. A nil field is left untouched.
// Name and Address additionally ignore blank values, so a patch can never
// blank out a required field.
type Patch struct {
	Name    *string
	Address *string
	Email   *string
}

// Changes returns the column assignments this patch carries.
func (p Patch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Name != nil && *p.Name != "" {
		changes["name"] = *p.Name
	}
	if p.Address != nil && *p.Address != "" {
		changes["address"] = *p.Address
	}
	if p.Email != nil && *p.Email != "" {
		changes["email"] = *p.Email
	}
	return changes
}

// Service is the customer CRUD/search contract. Point lookups, updates and
// deletes report an absent row as a nil entity, never an error.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetAll(ctx context.Context) ([]Customer, error)
	Search(ctx context.Context, query string, limit int) ([]Customer, error)
	Update(ctx context.Context, id int64, patch Patch) (*Customer, error)
	Delete(ctx context.Context, id int64) (*Customer, error)
}
