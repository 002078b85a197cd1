package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogshare/internal/core/users"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// GetByIDs bulk-loads users for view population. Ids with no matching row are
// simply absent from the result.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*users.User, error) {
	result := make(map[uuid.UUID]*users.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	// pq.Array wants a flat string slice for uuid[] parameters
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `
		SELECT id, display_name, created_at
		FROM users
		WHERE id = ANY($1::uuid[])
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var user users.User
		if err := rows.Scan(&user.ID, &user.DisplayName, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result[user.ID] = &user
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return result, nil
}
