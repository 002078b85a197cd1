package posts

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a post is not found by id
var ErrNotFound = errors.New("post not found")

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// ConflictError is returned when a store operation could not be applied
// atomically, e.g. a cascade delete that only partially completed.
// Surfaced to the caller rather than silently retried.
type ConflictError struct {
	Op string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting update during %s, please retry", e.Op)
}

// IsConflict checks if error is a store-level conflict
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// IsNotFound checks if error refers to a missing post
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
