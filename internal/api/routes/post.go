package routes

import (
	"blogshare/internal/api/handlers/post"
	"blogshare/internal/api/middleware"
	"blogshare/internal/core/likes"
	postsCore "blogshare/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers the post endpoints on the router.
// Reads run with optional auth (viewer like state); writes require auth.
func RegisterPostRoutes(r chi.Router, postService postsCore.Service, likeService likes.Service, auth *middleware.AuthMiddleware) {
	listHandler := post.NewListPostsHandler(postService)
	createHandler := post.NewCreatePostHandler(postService)
	deleteHandler := post.NewDeletePostHandler(postService)
	likeHandler := post.NewLikePostHandler(likeService)

	r.With(auth.OptionalAuth).Get("/api/posts", listHandler.HandleList)
	r.With(auth.OptionalAuth).Get("/api/posts/search", listHandler.HandleSearch)
	r.With(auth.RequireAuth).Get("/api/posts/mine", listHandler.HandleMine)
	r.With(auth.RequireAuth).Get("/api/posts/flagged", listHandler.HandleFlagged)
	r.With(auth.OptionalAuth).Get("/api/posts/{postID}", listHandler.HandleGet)

	r.With(auth.RequireAuth).Post("/api/posts", createHandler.HandleCreate)
	r.With(auth.RequireAuth).Delete("/api/posts/{postID}", deleteHandler.HandleDelete)
	r.With(auth.RequireAuth).Put("/api/posts/{postID}/like", likeHandler.HandleToggle)
}
