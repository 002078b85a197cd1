package comments

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for the comment lifecycle.
// Creation runs the moderation workflow (classify, then persist); deletion
// runs through the authorization guard.
type Service interface {
	// CreateComment validates input, classifies the text, and appends the
	// comment to the post's sequence. AuthorID nil means anonymous.
	// Returns ErrPostNotFound if the post is absent, a ValidationError for
	// malformed input, and a ConflictError if the append could not be
	// applied atomically.
	CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error)

	// DeleteComment removes exactly one comment from the post, leaving the
	// order of the rest unchanged. Only the post's author may delete;
	// repeating the call returns ErrCommentNotFound.
	DeleteComment(ctx context.Context, postID int64, commentID uuid.UUID, actorID uuid.UUID) error
}

// Repository defines the data access interface for comments.
// The comment append must be a single atomic insert, never a full-post
// read-modify-write, so concurrent appends to the same post cannot lose
// updates.
type Repository interface {
	// Create appends the comment to its post's sequence and fills in the
	// store-assigned Seq and CreatedAt. Returns ErrPostNotFound if the
	// post's row vanished before the insert was applied.
	Create(ctx context.Context, comment *Comment) error

	// GetByID retrieves a comment by id within a specific post.
	GetByID(ctx context.Context, postID int64, commentID uuid.UUID) (*Comment, error)

	// ListByPost returns the post's comment sequence in insertion order.
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)

	// Delete removes exactly one comment. Returns ErrCommentNotFound when
	// nothing was deleted.
	Delete(ctx context.Context, postID int64, commentID uuid.UUID) error

	// GetPostOwner resolves the author of the comment's parent post, used
	// for existence checks and moderation authority. Returns
	// ErrPostNotFound if the post is absent.
	GetPostOwner(ctx context.Context, postID int64) (uuid.UUID, error)
}
