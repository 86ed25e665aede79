// Package controller holds errors shared by the database controllers.
package controller

import (
	"errors"
	"fmt"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrStoreUnavailable marks a failed database round trip.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Unavailable wraps a database error with ErrStoreUnavailable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
