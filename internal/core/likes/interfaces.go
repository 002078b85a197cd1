package likes

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the like-toggle contract.
// The toggle is idempotent as a round trip: applied twice in succession it
// returns the likedBy set to its original membership; applied once it changes
// membership by exactly one.
type Service interface {
	// ToggleLike flips the user's membership in the post's likedBy set and
	// returns the new like count. Returns ErrPostNotFound for a missing post.
	ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*ToggleResult, error)

	// LikedPostIDs reports which posts the user currently likes, for view
	// assembly.
	LikedPostIDs(ctx context.Context, userID uuid.UUID) (map[int64]bool, error)
}

// Repository defines the data access interface for likes.
// Toggle must be implemented as a conditional set-membership update guarded
// by the store's unique (post, user) index, never as an unguarded
// read-then-write, so two concurrent toggles from the same user cannot
// double-apply.
type Repository interface {
	// Toggle atomically adds the user to the post's likedBy set if absent,
	// or removes them if present. Returns the resulting membership state
	// and the new like count. Returns ErrPostNotFound for a missing post.
	Toggle(ctx context.Context, postID int64, userID uuid.UUID) (liked bool, count int, err error)

	// ListByUser returns the post ids the user currently likes.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]int64, error)
}
