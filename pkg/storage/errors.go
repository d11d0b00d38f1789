package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint is violated,
	// e.g. registering an email address that is already taken.
	ErrConflict = errors.New("record already exists")
)
