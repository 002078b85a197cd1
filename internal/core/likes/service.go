package likes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type likeService struct {
	repo   Repository
	cache  *LikeCache
	logger *slog.Logger
}

// NewLikeService creates a new like service.
// cache can be nil; viewer like state then always hits the store.
func NewLikeService(repo Repository, cache *LikeCache, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &likeService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ToggleLike flips set membership at the store and mirrors the outcome into
// the cache. The store performs the conditional update; the service never
// reads membership first.
func (s *likeService) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (*ToggleResult, error) {
	liked, count, err := s.repo.Toggle(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	if s.cache != nil {
		if liked {
			s.cache.SetLiked(userID, postID)
		} else {
			s.cache.RemoveLiked(userID, postID)
		}
	}

	s.logger.Info("like toggled",
		"post", postID,
		"user", userID,
		"liked", liked,
		"count", count)

	return &ToggleResult{LikeCount: count}, nil
}

// LikedPostIDs returns the user's liked set, from cache when fresh, falling
// back to the store and repopulating the cache.
func (s *likeService) LikedPostIDs(ctx context.Context, userID uuid.UUID) (map[int64]bool, error) {
	if s.cache != nil {
		if cached := s.cache.LikedPosts(userID); cached != nil {
			return cached, nil
		}
	}

	ids, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	liked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}

	if s.cache != nil {
		s.cache.SetLikedPosts(userID, liked)
	}

	return liked, nil
}
