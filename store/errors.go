package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row. Soft-deleted
	// rows count as not found.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint
	// (duplicate username, email, or follow pair).
	ErrDuplicate = errors.New("store: duplicate record")
)

// translate maps GORM/driver errors onto the store's typed errors so that
// callers never inspect driver error codes themselves.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	// SQLSTATE 23505, for drivers the ORM does not translate.
	if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}
