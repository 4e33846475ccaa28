// Package citation implements the Citation repository using PostgreSQL.
// The CountByCitizen query feeds the penalty calculator; it is always an
// all-time count, never windowed by date.
package citation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Repo provides citation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new citation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const citationColumns = `id, citizen_id, description, fine_amount_cents, issued_at, created_by, created_at, updated_at`

const createSQL = `
INSERT INTO citations (id, citizen_id, description, fine_amount_cents, issued_at, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $5, $5)
RETURNING ` + citationColumns

const getByIDSQL = `
SELECT ` + citationColumns + `
FROM citations
WHERE id = $1`

const countByCitizenSQL = `
SELECT count(*) FROM citations WHERE citizen_id = $1`

const listByCitizenSQL = `
SELECT ` + citationColumns + `
FROM citations
WHERE citizen_id = $1
ORDER BY issued_at DESC
LIMIT $2 OFFSET $3`

const listSQL = `
SELECT ` + citationColumns + `
FROM citations
ORDER BY issued_at DESC
LIMIT $1 OFFSET $2`

const countSQL = `
SELECT count(*) FROM citations`

const updateDescriptionSQL = `
UPDATE citations
SET description = $2, updated_at = now()
WHERE id = $1
RETURNING ` + citationColumns

const deleteSQL = `
DELETE FROM citations WHERE id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a citation row and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c *domain.Citation) (*domain.Citation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		c.ID, c.CitizenID, c.Description, int64(c.FineAmount), c.IssuedAt, c.CreatedBy)

	created, err := scanCitation(row)
	if err != nil {
		return nil, postgres.MapError(err, "citation", c.ID.String())
	}
	return created, nil
}

// GetByID returns a citation by primary key.
// Returns domain.ErrNotFound if the citation does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCitation(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "citation", id.String())
	}
	return c, nil
}

// CountByCitizen returns the all-time citation count for a citizen.
// Call inside the filing transaction, after Lock, so the count includes every
// previously committed citation and no concurrently filed one.
func (r *Repo) CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, countByCitizenSQL, citizenID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count citations for citizen %s: %w", citizenID, err)
	}
	return count, nil
}

// ListByCitizen returns a citizen's citations with pagination (newest first)
// plus the total count.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.Citation, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countByCitizenSQL, citizenID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count citations by citizen: %w", err)
	}

	rows, err := q.Query(ctx, listByCitizenSQL, citizenID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list citations by citizen: %w", err)
	}

	citations, err := scanCitations(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan citations: %w", err)
	}
	return citations, total, nil
}

// List returns all citations with pagination (newest first) plus the total count.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.Citation, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countSQL).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count citations: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list citations: %w", err)
	}

	citations, err := scanCitations(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan citations: %w", err)
	}
	return citations, total, nil
}

// UpdateDescription is the administrative override on a citation. The fine is
// intentionally immutable here: it is derived by the penalty calculator at
// filing time, and overrides never re-run escalation.
func (r *Repo) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*domain.Citation, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCitation(q.QueryRow(ctx, updateDescriptionSQL, id, description))
	if err != nil {
		return nil, postgres.MapError(err, "citation", id.String())
	}
	return c, nil
}

// Delete removes a citation (administrative override; no escalation rerun).
// Returns domain.ErrNotFound if the citation does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "citation", id.String())
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("citation", id.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCitation(row pgx.Row) (*domain.Citation, error) {
	var (
		c         domain.Citation
		fineCents int64
	)
	err := row.Scan(&c.ID, &c.CitizenID, &c.Description, &fineCents,
		&c.IssuedAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.FineAmount = domain.Credits(fineCents)
	return &c, nil
}

func scanCitations(rows pgx.Rows) ([]*domain.Citation, error) {
	defer rows.Close()

	var out []*domain.Citation
	for rows.Next() {
		c, err := scanCitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Citation{}
	}
	return out, nil
}
