package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the resolved, authenticated user reference derived from a
// verified credential. It is stored in the request context after
// authentication and never persisted.
type Identity struct {
	UserID string
}
