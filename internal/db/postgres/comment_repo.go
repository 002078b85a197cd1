package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogshare/internal/core/comments"

	"github.com/google/uuid"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create appends the comment to its post's sequence. A single INSERT is the
// whole append: the seq bigserial orders the sequence and the post_id foreign
// key guards against the post vanishing mid-append, so concurrent appends to
// the same post cannot lose updates.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, text, flagged, hate_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING seq, created_at
	`

	var authorID uuid.NullUUID
	if comment.AuthorID != nil {
		authorID = uuid.NullUUID{UUID: *comment.AuthorID, Valid: true}
	}

	err := r.db.QueryRowContext(
		ctx, query,
		comment.ID, comment.PostID, authorID, comment.Text,
		comment.Flagged, comment.HateScore,
	).Scan(&comment.Seq, &comment.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return comments.ErrPostNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepo) GetByID(ctx context.Context, postID int64, commentID uuid.UUID) (*comments.Comment, error) {
	query := `
		SELECT id, post_id, author_id, text, flagged, hate_score, seq, created_at
		FROM comments
		WHERE id = $1 AND post_id = $2
	`

	var comment comments.Comment
	var authorID uuid.NullUUID

	err := r.db.QueryRowContext(ctx, query, commentID, postID).Scan(
		&comment.ID, &comment.PostID, &authorID, &comment.Text,
		&comment.Flagged, &comment.HateScore, &comment.Seq, &comment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	if authorID.Valid {
		id := authorID.UUID
		comment.AuthorID = &id
	}

	return &comment, nil
}

func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID int64) ([]*comments.Comment, error) {
	query := `
		SELECT id, post_id, author_id, text, flagged, hate_score, seq, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*comments.Comment
	for rows.Next() {
		var comment comments.Comment
		var authorID uuid.NullUUID
		err := rows.Scan(
			&comment.ID, &comment.PostID, &authorID, &comment.Text,
			&comment.Flagged, &comment.HateScore, &comment.Seq, &comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if authorID.Valid {
			id := authorID.UUID
			comment.AuthorID = &id
		}
		result = append(result, &comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}

// Delete removes exactly one comment; remaining seq values are untouched so
// the order of the rest never changes.
func (r *postgresCommentRepo) Delete(ctx context.Context, postID int64, commentID uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1 AND post_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return comments.ErrCommentNotFound
	}

	return nil
}

func (r *postgresCommentRepo) GetPostOwner(ctx context.Context, postID int64) (uuid.UUID, error) {
	query := `SELECT author_id FROM posts WHERE id = $1`

	var ownerID uuid.UUID
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&ownerID)

	if err == sql.ErrNoRows {
		return uuid.Nil, comments.ErrPostNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get post owner: %w", err)
	}

	return ownerID, nil
}
