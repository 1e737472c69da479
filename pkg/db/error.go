package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// SQLite (error code 2067)
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsCheckViolationErr(err error) bool {
	if err == nil {
		return false
	}
	// SQLite reports the violated constraint by name
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// IsConstraintErr reports whether err is any integrity constraint
// violation raised at commit time.
func IsConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	return IsDuplicateKeyErr(err) ||
		IsCheckViolationErr(err) ||
		strings.Contains(err.Error(), "constraint failed")
}
