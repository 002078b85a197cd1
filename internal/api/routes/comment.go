package routes

import (
	"blogshare/internal/api/handlers/comment"
	"blogshare/internal/api/middleware"
	commentsCore "blogshare/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers the comment endpoints on the router.
// Creation uses optional auth (anonymous comments are allowed); deletion
// requires auth since moderation authority belongs to the post author.
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, auth *middleware.AuthMiddleware) {
	createHandler := comment.NewCreateCommentHandler(service)
	deleteHandler := comment.NewDeleteCommentHandler(service)

	r.With(auth.OptionalAuth).Post(
		"/api/posts/{postID}/comments",
		createHandler.HandleCreate)

	r.With(auth.RequireAuth).Delete(
		"/api/posts/{postID}/comments/{commentID}",
		deleteHandler.HandleDelete)
}
