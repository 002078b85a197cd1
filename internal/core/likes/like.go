package likes

import (
	"time"

	"github.com/google/uuid"
)

// Like is one entry in a post's likedBy set. The (PostID, UserID) pair is
// unique: a user appears in the set at most once.
type Like struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
}

// ToggleResult reports the post's like count after a toggle.
// Direction ("liked" vs "unliked") is deliberately not part of the contract;
// callers that care compare membership before and after.
type ToggleResult struct {
	LikeCount int `json:"likes"`
}
