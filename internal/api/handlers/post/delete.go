package post

import (
	"net/http"
	"strconv"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// DeletePostHandler handles post deletion requests
type DeletePostHandler struct {
	service posts.Service
}

// NewDeletePostHandler creates a new handler for deleting posts
func NewDeletePostHandler(service posts.Service) *DeletePostHandler {
	return &DeletePostHandler{service: service}
}

// HandleDelete removes a post and its comments. Author only.
// DELETE /api/posts/{postID}
func (h *DeletePostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, middleware.GetUserID(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "post deleted successfully",
	})
}
