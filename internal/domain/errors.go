package domain

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound         = errors.New("client not found")
	ErrUnsupportedSearchField = errors.New("unsupported search field")
	ErrIDAssigned             = errors.New("client already has an id")
)

// ValidationError reports the one field that failed validation
type ValidationError struct {
	Field  string // Field name, e.g. "firstName"
	Value  string // The rejected raw value
	Reason string // Human-readable message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure at the persistence boundary
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsValidationError reports whether err carries a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
