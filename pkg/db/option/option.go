// Package option carries composable query modifiers applied to a gorm
// statement by repositories.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type limitOption struct {
	limit int
}

func (o limitOption) Apply(stmt *gorm.DB) *gorm.DB {
	if o.limit <= 0 {
		return stmt
	}
	return stmt.Limit(o.limit)
}

// WithLimit caps the result count. Zero or negative means no cap.
func WithLimit(limit int) QueryOption {
	return limitOption{limit: limit}
}

type orderOption struct {
	order string
}

func (o orderOption) Apply(stmt *gorm.DB) *gorm.DB {
	if o.order == "" {
		return stmt
	}
	return stmt.Order(o.order)
}

func WithOrder(order string) QueryOption {
	return orderOption{order: order}
}

type preloadOption struct {
	association string
}

func (o preloadOption) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Preload(o.association)
}

func WithPreload(association string) QueryOption {
	return preloadOption{association: association}
}

func Apply(stmt *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}
	return stmt
}
