package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: products.reference")))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsDuplicateKeyErr(errors.New("no such table")))
}

func TestIsCheckViolationErr(t *testing.T) {
	assert.False(t, IsCheckViolationErr(nil))
	assert.True(t, IsCheckViolationErr(errors.New("CHECK constraint failed: ck_customers_name_minlen")))
	assert.False(t, IsCheckViolationErr(errors.New("UNIQUE constraint failed: products.reference")))
}

func TestIsConstraintErr(t *testing.T) {
	assert.False(t, IsConstraintErr(nil))
	assert.True(t, IsConstraintErr(errors.New("UNIQUE constraint failed: invoices.reference")))
	assert.True(t, IsConstraintErr(errors.New("CHECK constraint failed: ck_customers_address_minlen")))
	assert.True(t, IsConstraintErr(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsConstraintErr(errors.New("database is locked")))
}
