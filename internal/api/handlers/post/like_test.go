package post

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogshare/internal/api/middleware"
	"blogshare/internal/core/likes"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLikeService is a mock implementation of likes.Service
type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*likes.ToggleResult, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*likes.ToggleResult), args.Error(1)
}

func (m *MockLikeService) LikedPostIDs(ctx context.Context, userID uuid.UUID) (map[int64]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func newLikeRequest(postID string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest("PUT", "/api/posts/"+postID+"/like", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("postID", postID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestHandleToggle_ReturnsCountOnly(t *testing.T) {
	service := new(MockLikeService)
	handler := NewLikePostHandler(service)
	userID := uuid.New()

	service.On("ToggleLike", mock.Anything, int64(7), userID).
		Return(&likes.ToggleResult{LikeCount: 3}, nil)

	rec := httptest.NewRecorder()
	handler.HandleToggle(rec, newLikeRequest("7", userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"likes":3}`, rec.Body.String())
	service.AssertExpectations(t)
}

func TestHandleToggle_InvalidPostID(t *testing.T) {
	service := new(MockLikeService)
	handler := NewLikePostHandler(service)

	rec := httptest.NewRecorder()
	handler.HandleToggle(rec, newLikeRequest("not-a-number", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleToggle_PostNotFound(t *testing.T) {
	service := new(MockLikeService)
	handler := NewLikePostHandler(service)
	userID := uuid.New()

	service.On("ToggleLike", mock.Anything, int64(99), userID).
		Return(nil, likes.ErrPostNotFound)

	rec := httptest.NewRecorder()
	handler.HandleToggle(rec, newLikeRequest("99", userID))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NotFound")
}

func TestHandleToggle_UnexpectedErrorIsOpaque(t *testing.T) {
	service := new(MockLikeService)
	handler := NewLikePostHandler(service)
	userID := uuid.New()

	service.On("ToggleLike", mock.Anything, int64(7), userID).
		Return(nil, fmt.Errorf("connection reset"))

	rec := httptest.NewRecorder()
	handler.HandleToggle(rec, newLikeRequest("7", userID))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "connection reset"),
		"internal error details must not reach the client")
}
