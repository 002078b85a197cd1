package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"blogshare/internal/core/users"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// setupTestDB connects to the integration database and runs migrations.
// Skips the test when TEST_DATABASE_URL is not set so the suite stays
// runnable without a Postgres instance.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "../../internal/db/migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// createTestUser inserts a user directly; the pipeline only reads users.
func createTestUser(t *testing.T, db *sql.DB, displayName string) *users.User {
	t.Helper()

	user := &users.User{ID: uuid.New(), DisplayName: displayName}
	query := `
		INSERT INTO users (id, display_name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING created_at
	`
	err := db.QueryRowContext(context.Background(), query, user.ID, user.DisplayName).
		Scan(&user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	t.Cleanup(func() { cleanupUser(db, user.ID) })
	return user
}

// cleanupUser removes a test user and everything hanging off it
func cleanupUser(db *sql.DB, userID uuid.UUID) {
	ctx := context.Background()
	_, _ = db.ExecContext(ctx, `DELETE FROM post_likes WHERE user_id = $1`, userID)
	_, _ = db.ExecContext(ctx, `DELETE FROM comments WHERE author_id = $1`, userID)
	_, _ = db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)`, userID)
	_, _ = db.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)`, userID)
	_, _ = db.ExecContext(ctx, `DELETE FROM posts WHERE author_id = $1`, userID)
	_, _ = db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
}
