// Package query implements list/search over an entity table driven by
// declarative per-entity metadata instead of per-entity query code.
package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallbiznis/facturo/pkg/db/option"
	"gorm.io/gorm"
)

// Spec describes how one entity is searched and ordered.
type Spec struct {
	// TextColumns are matched by case-insensitive substring.
	TextColumns []string
	// IDColumn is matched exactly when the query parses as an integer.
	// Defaults to "id".
	IDColumn string
	// Order applies to both list-all and search results.
	Order string
}

// Search returns rows matching q under spec. A blank query returns
// every row in spec order, so Search("") is the list-all path.
func Search[T any](ctx context.Context, db *gorm.DB, spec Spec, q string, opts ...option.QueryOption) ([]T, error) {
	var out []T

	stmt := db.WithContext(ctx).Model(new(T))

	q = strings.TrimSpace(q)
	if q != "" {
		clauses := make([]string, 0, len(spec.TextColumns)+1)
		args := make([]any, 0, len(spec.TextColumns)+1)

		needle := "%" + strings.ToLower(q) + "%"
		for _, col := range spec.TextColumns {
			clauses = append(clauses, "lower("+col+") LIKE ?")
			args = append(args, needle)
		}

		if id, err := strconv.ParseInt(q, 10, 64); err == nil {
			idCol := spec.IDColumn
			if idCol == "" {
				idCol = "id"
			}
			clauses = append(clauses, idCol+" = ?")
			args = append(args, id)
		}

		stmt = stmt.Where(strings.Join(clauses, " OR "), args...)
	}

	if spec.Order != "" {
		stmt = stmt.Order(spec.Order)
	}
	stmt = option.Apply(stmt, opts...)

	if err := stmt.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
