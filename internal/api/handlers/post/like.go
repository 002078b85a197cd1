package post

import (
	"net/http"
	"strconv"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/likes"

	"github.com/go-chi/chi/v5"
)

// LikePostHandler handles like toggling
type LikePostHandler struct {
	service likes.Service
}

// NewLikePostHandler creates a new handler for toggling likes
func NewLikePostHandler(service likes.Service) *LikePostHandler {
	return &LikePostHandler{service: service}
}

// HandleToggle flips the caller's like on a post and returns the new count.
// The response deliberately carries no liked/unliked direction.
// PUT /api/posts/{postID}/like
func (h *LikePostHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	result, err := h.service.ToggleLike(r.Context(), postID, middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
