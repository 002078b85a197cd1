package likes

import "errors"

// ErrPostNotFound is returned when toggling a like on a missing post
var ErrPostNotFound = errors.New("post not found")

// IsNotFound checks if error refers to a missing post
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
