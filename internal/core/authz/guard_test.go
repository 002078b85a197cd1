package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanDeletePost(t *testing.T) {
	guard := NewGuard()
	author := uuid.New()
	stranger := uuid.New()

	t.Run("author may delete own post", func(t *testing.T) {
		assert.NoError(t, guard.CanDeletePost(author, author))
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		err := guard.CanDeletePost(stranger, author)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("anonymous actor is rejected", func(t *testing.T) {
		err := guard.CanDeletePost(uuid.Nil, author)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.False(t, IsForbidden(err))
	})
}

func TestCanDeleteComment(t *testing.T) {
	guard := NewGuard()
	postAuthor := uuid.New()
	commenter := uuid.New()

	t.Run("post author may moderate any comment", func(t *testing.T) {
		assert.NoError(t, guard.CanDeleteComment(postAuthor, postAuthor))
	})

	t.Run("comment author without post ownership is forbidden", func(t *testing.T) {
		// Deletion authority follows the post, not the comment
		err := guard.CanDeleteComment(commenter, postAuthor)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("anonymous actor is rejected", func(t *testing.T) {
		assert.ErrorIs(t, guard.CanDeleteComment(uuid.Nil, postAuthor), ErrNotAuthenticated)
	})
}
