package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"blogshare/internal/core/comments"
	"blogshare/internal/core/posts"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post. The verdict columns are written once here and
// never updated; there is no update statement for posts anywhere.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (author_id, title, body, flagged, hate_score, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx, query,
		post.AuthorID, post.Title, post.Body, post.Flagged, post.HateScore,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

const postColumns = `
	p.id, p.author_id, p.title, p.body, p.flagged, p.hate_score, p.created_at,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count
`

func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`

	var post posts.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Body,
		&post.Flagged, &post.HateScore, &post.CreatedAt, &post.LikeCount,
	)

	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := r.attachComments(ctx, []*posts.Post{&post}); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p ORDER BY p.created_at DESC, p.id DESC`
	return r.queryPosts(ctx, query)
}

func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	return r.queryPosts(ctx, query, authorID)
}

// Search matches the term case-insensitively against the post title or the
// author's display name. LIKE wildcards in the term are treated literally.
func (r *postgresPostRepo) Search(ctx context.Context, term string) ([]*posts.Post, error) {
	pattern := "%" + escapeLikePattern(term) + "%"

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.title ILIKE $1 OR u.display_name ILIKE $1
		ORDER BY p.created_at DESC, p.id DESC
	`
	return r.queryPosts(ctx, query, pattern)
}

// Delete removes the post and its dependents as one transaction: likes and
// comments first, the post row last. A partially applied cascade can never
// commit; concurrency failures surface as a ConflictError.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, id); err != nil {
		if isRetryableConflict(err) {
			return &posts.ConflictError{Op: "post delete cascade"}
		}
		return fmt.Errorf("failed to delete likes for post: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		if isRetryableConflict(err) {
			return &posts.ConflictError{Op: "post delete cascade"}
		}
		return fmt.Errorf("failed to delete comments for post: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if isRetryableConflict(err) {
			return &posts.ConflictError{Op: "post delete cascade"}
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		if isRetryableConflict(err) {
			return &posts.ConflictError{Op: "post delete cascade"}
		}
		return fmt.Errorf("failed to commit post delete: %w", err)
	}

	return nil
}

func (r *postgresPostRepo) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*posts.Post
	for rows.Next() {
		var post posts.Post
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Title, &post.Body,
			&post.Flagged, &post.HateScore, &post.CreatedAt, &post.LikeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, &post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	if err := r.attachComments(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// attachComments loads the comment sequences for a batch of posts in one
// query, preserving insertion order via the seq column.
func (r *postgresPostRepo) attachComments(ctx context.Context, list []*posts.Post) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]int64, len(list))
	byID := make(map[int64]*posts.Post, len(list))
	for i, p := range list {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Comments = []*comments.Comment{}
	}

	query := `
		SELECT id, post_id, author_id, text, flagged, hate_score, seq, created_at
		FROM comments
		WHERE post_id = ANY($1)
		ORDER BY post_id, seq
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var comment comments.Comment
		var authorID uuid.NullUUID
		err := rows.Scan(
			&comment.ID, &comment.PostID, &authorID, &comment.Text,
			&comment.Flagged, &comment.HateScore, &comment.Seq, &comment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		if authorID.Valid {
			id := authorID.UUID
			comment.AuthorID = &id
		}
		if post, ok := byID[comment.PostID]; ok {
			post.Comments = append(post.Comments, &comment)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating comments: %w", err)
	}

	return nil
}

// escapeLikePattern backslash-escapes LIKE metacharacters so user input
// matches literally.
func escapeLikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
