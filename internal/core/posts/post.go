package posts

import (
	"time"

	"blogshare/internal/core/comments"

	"github.com/google/uuid"
)

// Post is a top-level authored content item. AuthorID is immutable after
// creation; Flagged and HateScore are set exactly once from the classifier
// verdict at creation time and never recomputed (there is no edit path, so
// classification cannot be bypassed post hoc).
type Post struct {
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	Title     string              `json:"title" db:"title"`
	Body      string              `json:"body" db:"body"`
	Comments  []*comments.Comment `json:"comments"`
	HateScore float64             `json:"hateScore" db:"hate_score"`
	ID        int64               `json:"id" db:"id"`
	LikeCount int                 `json:"likeCount"`
	AuthorID  uuid.UUID           `json:"authorId" db:"author_id"`
	Flagged   bool                `json:"flagged" db:"flagged"`
}

// CreatePostRequest represents input for publishing a new post.
type CreatePostRequest struct {
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	AuthorID uuid.UUID `json:"-"`
}

// AuthorView carries the display identity attached to posts and comments in
// read views.
type AuthorView struct {
	DisplayName string    `json:"displayName"`
	ID          uuid.UUID `json:"id"`
}

// CommentView is a comment as rendered inside its post's view.
// Author is nil for anonymous comments.
type CommentView struct {
	CreatedAt time.Time   `json:"createdAt"`
	Text      string      `json:"text"`
	Author    *AuthorView `json:"author,omitempty"`
	HateScore float64     `json:"hateScore"`
	ID        uuid.UUID   `json:"id"`
	Flagged   bool        `json:"flagged"`
}

// PostView is the full read model of a post: author display name, like
// count, viewer like state, the comment sequence in insertion order, and the
// aggregated flag status used for flagged-content surfacing.
type PostView struct {
	CreatedAt          time.Time      `json:"createdAt"`
	Title              string         `json:"title"`
	Body               string         `json:"body"`
	Author             AuthorView     `json:"author"`
	Comments           []*CommentView `json:"comments"`
	HateScore          float64        `json:"hateScore"`
	ID                 int64          `json:"id"`
	LikeCount          int            `json:"likeCount"`
	Flagged            bool           `json:"flagged"`
	HasFlaggedComments bool           `json:"hasFlaggedComments"`
	ViewerLiked        bool           `json:"viewerLiked"`
}
