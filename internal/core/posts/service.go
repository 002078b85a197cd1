package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"blogshare/internal/core/authz"
	"blogshare/internal/core/classifier"
	"blogshare/internal/core/users"

	"github.com/google/uuid"
)

// Title and body bounds for post creation
const (
	minTitleLength = 5
	maxTitleLength = 100
	minBodyLength  = 20
	maxBodyLength  = 5000
)

type postService struct {
	repo        Repository
	userRepo    users.Repository
	classifier  classifier.Service
	guard       *authz.Guard
	viewerLikes ViewerLikes
	logger      *slog.Logger
}

// NewPostService creates a new post service.
// viewerLikes can be nil if viewer like state is not needed (e.g., in tests).
func NewPostService(
	repo Repository,
	userRepo users.Repository,
	cls classifier.Service,
	guard *authz.Guard,
	viewerLikes ViewerLikes,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:        repo,
		userRepo:    userRepo,
		classifier:  cls,
		guard:       guard,
		viewerLikes: viewerLikes,
		logger:      logger,
	}
}

// CreatePost publishes a new post.
// Flow: validate -> classify body -> persist with permanent verdict.
// The verdict is stored once and never recomputed; posts have no edit path.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	verdict := s.classifier.Classify(ctx, req.Body)

	post := &Post{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Body:      req.Body,
		Flagged:   verdict.Flagged,
		HateScore: verdict.HateScore,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to persist post: %w", err)
	}

	s.logger.Info("post created",
		"post", post.ID,
		"author", post.AuthorID,
		"flagged", post.Flagged)

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64, viewerID *uuid.UUID) (*PostView, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	views, err := s.assembleViews(ctx, []*Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *postService) ListPosts(ctx context.Context, viewerID *uuid.UUID) ([]*PostView, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return s.assembleViews(ctx, list, viewerID)
}

func (s *postService) SearchPosts(ctx context.Context, term string, viewerID *uuid.UUID) ([]*PostView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListPosts(ctx, viewerID)
	}

	list, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return s.assembleViews(ctx, list, viewerID)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*PostView, error) {
	list, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	return s.assembleViews(ctx, list, &authorID)
}

// ListFlaggedByAuthor surfaces the author's content the classifier flagged,
// either the post body itself or any comment in its sequence.
func (s *postService) ListFlaggedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*PostView, error) {
	views, err := s.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	flagged := make([]*PostView, 0, len(views))
	for _, v := range views {
		if v.Flagged || v.HasFlaggedComments {
			flagged = append(flagged, v)
		}
	}
	return flagged, nil
}

// DeletePost removes the post and its comment sequence as one unit.
// Authorization is checked before any mutation; a forbidden actor leaves
// state untouched.
func (s *postService) DeletePost(ctx context.Context, id int64, actorID uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load post: %w", err)
	}

	if err := s.guard.CanDeletePost(actorID, post.AuthorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return err
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted",
		"post", id,
		"author", actorID,
		"comments", len(post.Comments))

	return nil
}

func validateCreateRequest(req CreatePostRequest) error {
	if req.AuthorID == uuid.Nil {
		return NewValidationError("authorId", "authorId must be set from the authenticated user")
	}
	// Bounds are in characters, matching the store's char_length constraints
	if n := utf8.RuneCountInString(req.Title); n < minTitleLength || n > maxTitleLength {
		return NewValidationError("title",
			fmt.Sprintf("title must be between %d and %d characters", minTitleLength, maxTitleLength))
	}
	if n := utf8.RuneCountInString(req.Body); n < minBodyLength || n > maxBodyLength {
		return NewValidationError("body",
			fmt.Sprintf("body must be between %d and %d characters", minBodyLength, maxBodyLength))
	}
	return nil
}

// assembleViews builds read models: bulk-resolves display names for post and
// comment authors, fills like counts and viewer like state, and aggregates
// per-post flag status.
func (s *postService) assembleViews(ctx context.Context, list []*Post, viewerID *uuid.UUID) ([]*PostView, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, p := range list {
		idSet[p.AuthorID] = struct{}{}
		for _, c := range p.Comments {
			if c.AuthorID != nil {
				idSet[*c.AuthorID] = struct{}{}
			}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author names: %w", err)
	}

	var liked map[int64]bool
	if viewerID != nil && s.viewerLikes != nil {
		liked, err = s.viewerLikes.LikedPostIDs(ctx, *viewerID)
		if err != nil {
			// Viewer state is decoration; views remain correct without it.
			s.logger.Warn("failed to load viewer like state", "viewer", *viewerID, "error", err)
			liked = nil
		}
	}

	views := make([]*PostView, 0, len(list))
	for _, p := range list {
		view := &PostView{
			ID:          p.ID,
			Author:      authorView(p.AuthorID, names),
			Title:       p.Title,
			Body:        p.Body,
			Flagged:     p.Flagged,
			HateScore:   p.HateScore,
			LikeCount:   p.LikeCount,
			ViewerLiked: liked[p.ID],
			CreatedAt:   p.CreatedAt,
			Comments:    make([]*CommentView, 0, len(p.Comments)),
		}
		for _, c := range p.Comments {
			cv := &CommentView{
				ID:        c.ID,
				Text:      c.Text,
				Flagged:   c.Flagged,
				HateScore: c.HateScore,
				CreatedAt: c.CreatedAt,
			}
			if c.AuthorID != nil {
				av := authorView(*c.AuthorID, names)
				cv.Author = &av
			}
			if c.Flagged {
				view.HasFlaggedComments = true
			}
			view.Comments = append(view.Comments, cv)
		}
		views = append(views, view)
	}

	return views, nil
}

func authorView(id uuid.UUID, names map[uuid.UUID]*users.User) AuthorView {
	view := AuthorView{ID: id, DisplayName: "Unknown"}
	if u, ok := names[id]; ok {
		view.DisplayName = u.DisplayName
	}
	return view
}
