package db

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist. Updates and
	// deletes that race a concurrent delete also report ErrNotFound.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken indicates a registration hit the unique email index.
	ErrEmailTaken = errors.New("email already registered")
)
