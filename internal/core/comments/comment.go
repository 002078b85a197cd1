package comments

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single entry in a post's comment sequence.
// AuthorID is nil for anonymous comments: anonymity means no identity, not a
// moderation exemption. Flagged and HateScore are set exactly once at
// creation from the classifier verdict and never recomputed.
type Comment struct {
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	Text      string     `json:"text" db:"text"`
	AuthorID  *uuid.UUID `json:"authorId,omitempty" db:"author_id"`
	HateScore float64    `json:"hateScore" db:"hate_score"`
	Seq       int64      `json:"-" db:"seq"`
	PostID    int64      `json:"postId" db:"post_id"`
	ID        uuid.UUID  `json:"id" db:"id"`
	Flagged   bool       `json:"flagged" db:"flagged"`
}

// CreateCommentRequest represents input for attaching a comment to a post.
// AuthorID is resolved by the caller from an optional session; nil means the
// comment is anonymous.
type CreateCommentRequest struct {
	Text     string     `json:"text"`
	AuthorID *uuid.UUID `json:"-"`
	PostID   int64      `json:"-"`
}
