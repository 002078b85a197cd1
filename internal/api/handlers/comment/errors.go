package comment

import (
	"errors"
	"log"
	"net/http"

	"blogshare/internal/api/handlers"
	"blogshare/internal/core/authz"
	"blogshare/internal/core/comments"
)

// handleServiceError maps comment service errors to HTTP responses.
// Follows the error handling pattern of the post handlers.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case comments.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case authz.IsForbidden(err):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", err.Error())

	case errors.Is(err, authz.ErrNotAuthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", err.Error())

	case comments.IsConflict(err):
		handlers.WriteError(w, http.StatusConflict, "Conflict", err.Error())

	default:
		log.Printf("Unexpected error in comment handler: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
