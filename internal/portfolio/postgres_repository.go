package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new portfolio record. New portfolios start private and
// without a slug.
func (r *PostgresRepository) Create(ctx context.Context, p *Portfolio) error {
	if p.Data == nil {
		p.Data = []byte("{}")
	}

	query := `
		INSERT INTO portfolios (owner_id, title, data)
		VALUES ($1, $2, $3)
		RETURNING id, slug, is_public, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.OwnerID, p.Title, p.Data).
		Scan(&p.ID, &p.Slug, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting portfolio: %w", err)
	}

	return nil
}

// GetByID retrieves a single portfolio by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Portfolio, error) {
	query := `
		SELECT id, owner_id, title, data, slug, is_public, created_at, updated_at
		FROM portfolios
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetBySlug retrieves a single portfolio by its slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Portfolio, error) {
	query := `
		SELECT id, owner_id, title, data, slug, is_public, created_at, updated_at
		FROM portfolios
		WHERE slug = $1`

	return r.scanOne(ctx, query, slug)
}

// List retrieves a paginated list of the owner's portfolios.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	countQuery := `SELECT COUNT(*) FROM portfolios WHERE owner_id = $1`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, filter.OwnerID).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting portfolios: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	dataQuery := `
		SELECT id, owner_id, title, data, slug, is_public, created_at, updated_at
		FROM portfolios
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, dataQuery, filter.OwnerID, filter.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []Portfolio
	for rows.Next() {
		var p Portfolio
		err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Data, &p.Slug, &p.IsPublic,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning portfolio row: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolio rows: %w", err)
	}

	if portfolios == nil {
		portfolios = []Portfolio{}
	}

	return &ListResult{
		Portfolios: portfolios,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update modifies owner-updatable fields (title, data, is_public) on a portfolio.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Portfolio, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	if fields.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIdx))
		args = append(args, *fields.Title)
		argIdx++
	}
	if fields.Data != nil {
		setClauses = append(setClauses, fmt.Sprintf("data = $%d", argIdx))
		args = append(args, fields.Data)
		argIdx++
	}
	if fields.IsPublic != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_public = $%d", argIdx))
		args = append(args, *fields.IsPublic)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE portfolios
		SET %s
		WHERE id = $%d
		RETURNING id, owner_id, title, data, slug, is_public, created_at, updated_at`,
		strings.Join(setClauses, ", "), argIdx)

	return r.scanOne(ctx, query, args...)
}

// SetSlug attaches a slug to a portfolio and marks it public in a single
// atomic update. A unique-index violation on the slug column is returned
// as ErrSlugTaken; it is the authoritative uniqueness guard under
// concurrent claims.
func (r *PostgresRepository) SetSlug(ctx context.Context, id uuid.UUID, slug string) (*Portfolio, error) {
	query := `
		UPDATE portfolios
		SET slug = $1, is_public = TRUE, updated_at = NOW()
		WHERE id = $2
		RETURNING id, owner_id, title, data, slug, is_public, created_at, updated_at`

	p, err := r.scanOne(ctx, query, slug, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return p, nil
}

// Delete removes a portfolio record.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scanOne scans a single Portfolio row from a query. Returns ErrNotFound if no rows.
func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Portfolio, error) {
	var p Portfolio
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Data, &p.Slug, &p.IsPublic,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning portfolio row: %w", err)
	}
	return &p, nil
}
