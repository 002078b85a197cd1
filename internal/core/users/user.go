package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity handed to the content pipeline by the auth
// collaborator. The pipeline reads display names for view assembly and never
// mutates identity.
type User struct {
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	DisplayName string    `json:"displayName" db:"display_name"`
	ID          uuid.UUID `json:"id" db:"id"`
}
