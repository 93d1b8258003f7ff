package shared

import "errors"

var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("validation failed")
)
