package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio represents a row in the portfolios table. Slug is nil until
// the owner claims a custom URL; a non-nil slug implies the portfolio is
// public.
type Portfolio struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Data      []byte // jsonb document holding the template-driven profile content
	Slug      *string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter holds the owner scope and pagination for listing portfolios.
type ListFilter struct {
	OwnerID uuid.UUID
	Page    int // default 1
	Limit   int // default 20
}

// ListResult holds the result of a paginated list query.
type ListResult struct {
	Portfolios []Portfolio
	Total      int
	Page       int
	Limit      int
}

// UpdateFields holds owner-updatable fields on a portfolio record.
// Nil fields are not updated.
type UpdateFields struct {
	Title    *string
	Data     []byte
	IsPublic *bool
}
