package utils

import "errors"

// ErrNotFound marks operations that require an existing row. Reads that
// treat absence as a valid outcome return (nil, nil) instead.
var ErrNotFound = errors.New("not found")

// ValidationError carries the offending field back to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
