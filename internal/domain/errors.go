package domain

import "errors"

var (
	// ErrNotFound is returned by lookups, updates and deletes that match no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a unique constraint violation, e.g. a taken username.
	ErrConflict = errors.New("already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
)
