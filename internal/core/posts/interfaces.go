package posts

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for posts.
// Creation runs the moderation workflow (validate, classify, persist);
// deletion runs through the authorization guard and cascades to comments.
type Service interface {
	// CreatePost validates title/body bounds, classifies the body, and
	// persists the post with its permanent verdict.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost returns the full view of one post. viewerID may be nil.
	GetPost(ctx context.Context, id int64, viewerID *uuid.UUID) (*PostView, error)

	// ListPosts returns all posts, newest first, with author display names
	// and comment sequences populated.
	ListPosts(ctx context.Context, viewerID *uuid.UUID) ([]*PostView, error)

	// SearchPosts filters posts by a case-insensitive substring match on
	// title or author display name.
	SearchPosts(ctx context.Context, term string, viewerID *uuid.UUID) ([]*PostView, error)

	// ListByAuthor returns the author's own posts, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*PostView, error)

	// ListFlaggedByAuthor returns the author's posts that are flagged or
	// carry flagged comments, for the owner's moderation view.
	ListFlaggedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*PostView, error)

	// DeletePost removes the post and all its comments as one unit.
	// Only the post's author may delete.
	DeletePost(ctx context.Context, id int64, actorID uuid.UUID) error
}

// Repository defines the data access interface for posts.
type Repository interface {
	// Create inserts a new post and fills in the store-assigned ID and
	// CreatedAt.
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post with its like count and comment sequence.
	// Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List retrieves all posts, newest first, with like counts and comment
	// sequences populated.
	List(ctx context.Context) ([]*Post, error)

	// ListByAuthor retrieves one author's posts, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Post, error)

	// Search retrieves posts whose title or author display name contains
	// the term, case-insensitively.
	Search(ctx context.Context, term string) ([]*Post, error)

	// Delete removes the post, its comments, and its likes as a single
	// atomic unit. Comments are confirmed removed before the post row.
	// Returns ErrNotFound if the post is absent and a ConflictError if the
	// cascade could not complete atomically.
	Delete(ctx context.Context, id int64) error
}

// ViewerLikes reports which posts a viewer has liked, for view assembly.
// Implemented by the likes service.
type ViewerLikes interface {
	LikedPostIDs(ctx context.Context, userID uuid.UUID) (map[int64]bool, error)
}
