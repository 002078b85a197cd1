package users

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the users table.
// Writes belong to the auth collaborator; the content pipeline only resolves
// display names when assembling views.
type Repository interface {
	// GetByIDs retrieves users in bulk for view population.
	// Missing ids are simply absent from the result map, not an error.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
}
