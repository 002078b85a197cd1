package comment

import (
	"net/http"
	"strconv"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/comments"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteCommentHandler handles comment deletion requests
type DeleteCommentHandler struct {
	service comments.Service
}

// NewDeleteCommentHandler creates a new handler for deleting comments
func NewDeleteCommentHandler(service comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDelete removes one comment. Moderation authority belongs to the
// post's author, not the comment's writer.
// DELETE /api/posts/{postID}/comments/{commentID}
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid comment id")
		return
	}

	if err := h.service.DeleteComment(r.Context(), postID, commentID, middleware.GetUserID(r)); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "comment deleted successfully",
	})
}
