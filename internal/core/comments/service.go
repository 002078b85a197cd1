package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"blogshare/internal/core/authz"
	"blogshare/internal/core/classifier"

	"github.com/google/uuid"
)

const maxCommentLength = 1000

type commentService struct {
	repo       Repository
	classifier classifier.Service
	guard      *authz.Guard
	logger     *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(repo Repository, cls classifier.Service, guard *authz.Guard, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:       repo,
		classifier: cls,
		guard:      guard,
		logger:     logger,
	}
}

// CreateComment attaches a classified comment to a post.
// Flow: validate -> verify post exists -> classify -> atomic append.
// Classification failure never blocks creation; the gateway resolves it to
// the default verdict internally.
func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("text", "comment text is required")
	}
	// Bound is in characters, matching the store's char_length constraint
	if utf8.RuneCountInString(req.Text) > maxCommentLength {
		return nil, NewValidationError("text",
			fmt.Sprintf("comment too long (max %d characters)", maxCommentLength))
	}

	// Existence check before classification so a bogus post id fails fast
	// and without a classifier round trip.
	if _, err := s.repo.GetPostOwner(ctx, req.PostID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to verify post: %w", err)
	}

	verdict := s.classifier.Classify(ctx, req.Text)

	comment := &Comment{
		ID:        uuid.New(),
		PostID:    req.PostID,
		AuthorID:  req.AuthorID,
		Text:      req.Text,
		Flagged:   verdict.Flagged,
		HateScore: verdict.HateScore,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		// The post existed a moment ago; losing the FK race means the
		// append could not be applied atomically.
		if errors.Is(err, ErrPostNotFound) {
			return nil, &ConflictError{Op: "comment append"}
		}
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}

	s.logger.Info("comment created",
		"post", comment.PostID,
		"comment", comment.ID,
		"anonymous", comment.AuthorID == nil,
		"flagged", comment.Flagged)

	return comment, nil
}

// DeleteComment removes one comment after an authorization check against the
// post's author. Not idempotent: a second call finds nothing and reports it.
func (s *commentService) DeleteComment(ctx context.Context, postID int64, commentID uuid.UUID, actorID uuid.UUID) error {
	ownerID, err := s.repo.GetPostOwner(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to verify post: %w", err)
	}

	// Confirm the comment exists within this post before the authz check so
	// a stale id reports NotFound rather than Forbidden.
	if _, err := s.repo.GetByID(ctx, postID, commentID); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to load comment: %w", err)
	}

	if err := s.guard.CanDeleteComment(actorID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, postID, commentID); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			// Deleted concurrently between the check and the delete.
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("comment deleted",
		"post", postID,
		"comment", commentID,
		"actor", actorID)

	return nil
}
