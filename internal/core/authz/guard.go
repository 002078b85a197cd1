// Package authz centralizes mutation authority decisions for posts and
// comments. Every delete path runs through the same guard instead of
// re-implementing the ownership check per call site.
package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotAuthenticated is returned when an operation that requires an actor
// receives none.
var ErrNotAuthenticated = errors.New("authentication required")

// ForbiddenError is returned when an authenticated actor lacks authority over
// the targeted content.
type ForbiddenError struct {
	Action string // e.g. "delete post", "delete comment"
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("not allowed to %s", e.Action)
}

// IsForbidden checks if error is an authorization failure.
func IsForbidden(err error) bool {
	var forbidden *ForbiddenError
	return errors.As(err, &forbidden)
}

// Guard answers "is this actor allowed to mutate this content".
// The single rule: only the post's author may delete the post, and only the
// post's author may delete any comment under it. Comment moderation authority
// rests with the post owner, not the comment writer.
type Guard struct{}

// NewGuard creates an authorization guard.
func NewGuard() *Guard {
	return &Guard{}
}

// CanDeletePost permits deletion iff the actor authored the post.
func (g *Guard) CanDeletePost(actorID, postAuthorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrNotAuthenticated
	}
	if actorID != postAuthorID {
		return &ForbiddenError{Action: "delete post"}
	}
	return nil
}

// CanDeleteComment permits deletion iff the actor authored the parent post.
// The comment's own author is irrelevant here.
func (g *Guard) CanDeleteComment(actorID, postAuthorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrNotAuthenticated
	}
	if actorID != postAuthorID {
		return &ForbiddenError{Action: "delete comment"}
	}
	return nil
}
