package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// createCommentInput is the request body for comment creation
type createCommentInput struct {
	Text string `json:"text"`
}

// HandleCreate attaches a comment to a post. Runs behind OptionalAuth:
// without a session the comment is anonymous, which is an identity matter
// only — the text is classified either way.
// POST /api/posts/{postID}/comments
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	// 16KB is plenty for a 1000-char comment
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var input createCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.CreateComment(r.Context(), comments.CreateCommentRequest{
		PostID:   postID,
		AuthorID: middleware.OptionalUserID(r),
		Text:     input.Text,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
