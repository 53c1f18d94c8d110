package store

import "errors"

var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert violates a unique constraint.
	ErrConflict = errors.New("already exists")
)
