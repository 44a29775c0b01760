package repository

import "errors"

var (
	// ErrNotFound the requested row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrConflict a conditional write matched no row in the expected state
	ErrConflict = errors.New("record changed concurrently")
	// ErrDuplicate a unique key already exists
	ErrDuplicate = errors.New("duplicate record")
)
