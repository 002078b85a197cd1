package comments

import (
	"errors"
	"fmt"
)

// Sentinel errors for common comment operations
var (
	// ErrPostNotFound is returned when the referenced post does not exist
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when the comment id does not exist
	// within the referenced post
	ErrCommentNotFound = errors.New("comment not found")
)

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

// ConflictError is returned when the store could not apply an update
// atomically, e.g. the post vanished between the existence check and the
// comment insert. The caller decides whether to resubmit.
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

// IsNotFound checks if error refers to a missing post or comment
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrCommentNotFound)
}
