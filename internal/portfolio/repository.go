package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a portfolio record is not found.
var ErrNotFound = errors.New("portfolio not found")

// ErrSlugTaken is returned when another portfolio already holds the
// requested slug. The unique index on the slug column raises this on
// write even when the advisory pre-check passed.
var ErrSlugTaken = errors.New("slug already taken")

// Repository provides CRUD operations on the portfolios table.
type Repository interface {
	Create(ctx context.Context, p *Portfolio) error
	GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error)
	GetBySlug(ctx context.Context, slug string) (*Portfolio, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Portfolio, error)
	SetSlug(ctx context.Context, id uuid.UUID, slug string) (*Portfolio, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
