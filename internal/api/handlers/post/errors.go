package post

import (
	"errors"
	"log"
	"net/http"

	"blogshare/internal/api/handlers"
	"blogshare/internal/core/authz"
	"blogshare/internal/core/likes"
	"blogshare/internal/core/posts"
)

// handleServiceError maps service-layer errors to HTTP responses.
// Each error kind gets a distinct, stable status so clients can tell
// "fix your input" from "not allowed" from "try again".
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsNotFound(err) || likes.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case authz.IsForbidden(err):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", err.Error())

	case errors.Is(err, authz.ErrNotAuthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", err.Error())

	case posts.IsConflict(err):
		handlers.WriteError(w, http.StatusConflict, "Conflict", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
