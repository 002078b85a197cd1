package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogshare/internal/core/likes"

	"github.com/google/uuid"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Toggle flips the user's membership in the post's likedBy set.
//
// The membership flip is a conditional DELETE-then-INSERT inside one
// transaction, serialized by the unique (post_id, user_id) index — never a
// read of membership followed by a write. Two concurrent toggles from the
// same user cannot double-apply: the second INSERT lands on the index entry
// of the first and becomes a no-op.
func (r *postgresLikeRepo) Toggle(ctx context.Context, postID int64, userID uuid.UUID) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("failed to remove like: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check remove result: %w", err)
	}

	liked := false
	if removed == 0 {
		// Not a member: add. The FK rejects likes on missing posts.
		// When two toggles of the same pair race from the unliked state,
		// both miss the DELETE and the loser's INSERT is absorbed by the
		// ON CONFLICT clause as a no-op: membership ends up liked, exactly
		// one row exists, and the count below reflects the committed state.
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id, created_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (post_id, user_id) DO NOTHING`,
			postID, userID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return false, 0, likes.ErrPostNotFound
			}
			return false, 0, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	} else {
		// Membership removed; still verify the post itself exists so an
		// unlike on a deleted post reports NotFound, not success.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID,
		).Scan(&exists); err != nil {
			return false, 0, fmt.Errorf("failed to check post existence: %w", err)
		}
		if !exists {
			return false, 0, likes.ErrPostNotFound
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID,
	).Scan(&count); err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return liked, count, nil
}

func (r *postgresLikeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	query := `SELECT post_id FROM post_likes WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes by user: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []int64
	for rows.Next() {
		var postID int64
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		result = append(result, postID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}

	return result, nil
}
