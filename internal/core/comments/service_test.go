package comments

import (
	"context"
	"strings"
	"testing"
	"time"

	"blogshare/internal/core/authz"
	"blogshare/internal/core/classifier"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock implementation of Repository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, postID int64, commentID uuid.UUID) (*Comment, error) {
	args := m.Called(ctx, postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, postID int64, commentID uuid.UUID) error {
	args := m.Called(ctx, postID, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetPostOwner(ctx context.Context, postID int64) (uuid.UUID, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// stubClassifier returns a fixed verdict for every input
type stubClassifier struct {
	verdict classifier.Verdict
}

func (s stubClassifier) Classify(ctx context.Context, text string) classifier.Verdict {
	return s.verdict
}

func newTestService(repo *MockCommentRepository, verdict classifier.Verdict) Service {
	return NewCommentService(repo, stubClassifier{verdict: verdict}, authz.NewGuard(), nil)
}

func TestCreateComment_AttachesVerdict(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{Flagged: true, HateScore: 83})

	owner := uuid.New()
	commenter := uuid.New()

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(owner, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		return c.PostID == 5 && c.Flagged && c.HateScore == 83 &&
			c.AuthorID != nil && *c.AuthorID == commenter
	})).Run(func(args mock.Arguments) {
		c := args.Get(1).(*Comment)
		c.Seq = 1
		c.CreatedAt = time.Now()
	}).Return(nil)

	created, err := service.CreateComment(context.Background(), CreateCommentRequest{
		PostID:   5,
		AuthorID: &commenter,
		Text:     "some comment",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.Flagged)
	assert.Equal(t, 83.0, created.HateScore)
	repo.AssertExpectations(t)
}

func TestCreateComment_Anonymous(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(uuid.New(), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
		// Anonymity is an identity matter only; the text was still classified
		return c.AuthorID == nil
	})).Return(nil)

	created, err := service.CreateComment(context.Background(), CreateCommentRequest{
		PostID: 5,
		Text:   "Nice post!",
	})
	require.NoError(t, err)
	assert.Nil(t, created.AuthorID)
}

func TestCreateComment_Validation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   \t\n"},
		{name: "too long", text: strings.Repeat("x", 1001)},
		{name: "too long multibyte", text: strings.Repeat("世", 1001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCommentRepository)
			service := newTestService(repo, classifier.Verdict{})

			_, err := service.CreateComment(context.Background(), CreateCommentRequest{
				PostID: 5,
				Text:   tt.text,
			})
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateComment_MultibyteCountedAsCharacters(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(uuid.New(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// 1000 characters, 3000 bytes; the bound counts characters
	_, err := service.CreateComment(context.Background(), CreateCommentRequest{
		PostID: 5,
		Text:   strings.Repeat("世", 1000),
	})
	assert.NoError(t, err)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	repo.On("GetPostOwner", mock.Anything, int64(99)).Return(uuid.Nil, ErrPostNotFound)

	_, err := service.CreateComment(context.Background(), CreateCommentRequest{
		PostID: 99,
		Text:   "hello there",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreateComment_RacingPostDeleteIsConflict(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	// Post exists at check time but the insert loses the race
	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(uuid.New(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrPostNotFound)

	_, err := service.CreateComment(context.Background(), CreateCommentRequest{
		PostID: 5,
		Text:   "too late",
	})
	assert.True(t, IsConflict(err))
}

func TestDeleteComment_PostAuthorMayModerate(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	owner := uuid.New()
	commentID := uuid.New()

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(owner, nil)
	repo.On("GetByID", mock.Anything, int64(5), commentID).Return(&Comment{ID: commentID, PostID: 5}, nil)
	repo.On("Delete", mock.Anything, int64(5), commentID).Return(nil)

	err := service.DeleteComment(context.Background(), 5, commentID, owner)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteComment_CommentAuthorIsNotEnough(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	owner := uuid.New()
	commenter := uuid.New()
	commentID := uuid.New()

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(owner, nil)
	repo.On("GetByID", mock.Anything, int64(5), commentID).Return(
		&Comment{ID: commentID, PostID: 5, AuthorID: &commenter}, nil)

	// Even the comment's own writer may not delete it; authority follows the post
	err := service.DeleteComment(context.Background(), 5, commentID, commenter)
	require.Error(t, err)
	assert.True(t, authz.IsForbidden(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteComment_PostNotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	repo.On("GetPostOwner", mock.Anything, int64(99)).Return(uuid.Nil, ErrPostNotFound)

	err := service.DeleteComment(context.Background(), 99, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteComment_SecondDeleteReportsNotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	service := newTestService(repo, classifier.Verdict{})

	owner := uuid.New()
	commentID := uuid.New()

	repo.On("GetPostOwner", mock.Anything, int64(5)).Return(owner, nil)
	repo.On("GetByID", mock.Anything, int64(5), commentID).Return(nil, ErrCommentNotFound)

	err := service.DeleteComment(context.Background(), 5, commentID, owner)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
