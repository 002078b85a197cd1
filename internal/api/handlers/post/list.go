package post

import (
	"net/http"
	"strconv"

	"blogshare/internal/api/handlers"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// ListPostsHandler serves the post read surface: full listing, search,
// the caller's own posts, and the caller's flagged content.
type ListPostsHandler struct {
	service posts.Service
}

// NewListPostsHandler creates a new handler for post queries
func NewListPostsHandler(service posts.Service) *ListPostsHandler {
	return &ListPostsHandler{service: service}
}

// HandleList returns all posts, newest first.
// GET /api/posts
func (h *ListPostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListPosts(r.Context(), middleware.OptionalUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleGet returns a single post with its comment sequence.
// GET /api/posts/{postID}
func (h *ListPostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	view, err := h.service.GetPost(r.Context(), postID, middleware.OptionalUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleSearch filters posts by title or author name substring.
// GET /api/posts/search?q=term
func (h *ListPostsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.SearchPosts(r.Context(), r.URL.Query().Get("q"), middleware.OptionalUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleMine returns the authenticated user's posts.
// GET /api/posts/mine
func (h *ListPostsHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListByAuthor(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleFlagged returns the authenticated user's posts that the classifier
// flagged, directly or via a comment.
// GET /api/posts/flagged
func (h *ListPostsHandler) HandleFlagged(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListFlaggedByAuthor(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}
