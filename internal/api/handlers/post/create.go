package post

import (
	"encoding/json"
	"net/http"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/posts"
)

// CreatePostHandler handles post creation requests
type CreatePostHandler struct {
	service posts.Service
}

// NewCreatePostHandler creates a new handler for publishing posts
func NewCreatePostHandler(service posts.Service) *CreatePostHandler {
	return &CreatePostHandler{service: service}
}

// createPostInput is the request body for POST /api/posts
type createPostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HandleCreate publishes a new post for the authenticated user.
// POST /api/posts
func (h *CreatePostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// Bound the body well above the 5000-char post limit
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var input createPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	authorID := middleware.GetUserID(r)

	created, err := h.service.CreatePost(r.Context(), posts.CreatePostRequest{
		AuthorID: authorID,
		Title:    input.Title,
		Body:     input.Body,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
