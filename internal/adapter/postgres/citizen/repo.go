// Package citizen implements the Citizen registry repository using PostgreSQL.
package citizen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Repo provides citizen persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new citizen repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const citizenColumns = `id, name, status, origin_planet_id, residence_planet_id, avatar_url, created_at, updated_at`

const createSQL = `
INSERT INTO citizens (id, name, status, origin_planet_id, residence_planet_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + citizenColumns

const getByIDSQL = `
SELECT ` + citizenColumns + `
FROM citizens
WHERE id = $1`

const existsSQL = `
SELECT EXISTS(SELECT 1 FROM citizens WHERE id = $1)`

const lockSQL = `
SELECT id FROM citizens WHERE id = $1 FOR UPDATE`

const updateSQL = `
UPDATE citizens
SET name = $2, status = $3, origin_planet_id = $4, residence_planet_id = $5, updated_at = now()
WHERE id = $1
RETURNING ` + citizenColumns

const setAvatarSQL = `
UPDATE citizens
SET avatar_url = $2, updated_at = now()
WHERE id = $1
RETURNING ` + citizenColumns

const deleteSQL = `
DELETE FROM citizens WHERE id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new citizen and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		c.ID, c.Name, c.Status.String(), c.OriginPlanetID, c.ResidencePlanetID, c.CreatedAt)

	created, err := scanCitizen(row)
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.ID.String())
	}
	return created, nil
}

// GetByID returns a citizen by primary key.
// Returns domain.ErrNotFound if the citizen does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	c, err := scanCitizen(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", id.String())
	}
	return c, nil
}

// Exists reports whether a citizen with the given id is registered.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, existsSQL, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("citizen exists %s: %w", id, err)
	}
	return exists, nil
}

// Lock takes a row-level lock on the citizen for the duration of the current
// transaction. Concurrent citation filings for the same citizen serialize on
// this lock, so each filing counts every previously committed citation.
// Returns domain.ErrNotFound if the citizen does not exist.
// Must be called inside RunInTx; outside a transaction the lock is released
// immediately and provides no ordering guarantee.
func (r *Repo) Lock(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var locked uuid.UUID
	if err := q.QueryRow(ctx, lockSQL, id).Scan(&locked); err != nil {
		return postgres.MapError(err, "citizen", id.String())
	}
	return nil
}

// Update modifies the mutable registry fields of a citizen.
// Returns domain.ErrNotFound if the citizen does not exist.
func (r *Repo) Update(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, updateSQL,
		c.ID, c.Name, c.Status.String(), c.OriginPlanetID, c.ResidencePlanetID)

	updated, err := scanCitizen(row)
	if err != nil {
		return nil, postgres.MapError(err, "citizen", c.ID.String())
	}
	return updated, nil
}

// SetAvatarURL stores the uploaded avatar location on the citizen.
func (r *Repo) SetAvatarURL(ctx context.Context, id uuid.UUID, url string) (*domain.Citizen, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	updated, err := scanCitizen(q.QueryRow(ctx, setAvatarSQL, id, url))
	if err != nil {
		return nil, postgres.MapError(err, "citizen", id.String())
	}
	return updated, nil
}

// Delete removes a citizen. Citations and criminal records referencing the
// citizen are removed by the ON DELETE CASCADE constraint.
// Returns domain.ErrNotFound if the citizen does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "citizen", id.String())
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("citizen", id.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCitizen(row pgx.Row) (*domain.Citizen, error) {
	var (
		c       domain.Citizen
		status  string
		created time.Time
		updated time.Time
	)
	err := row.Scan(&c.ID, &c.Name, &status, &c.OriginPlanetID, &c.ResidencePlanetID,
		&c.AvatarURL, &created, &updated)
	if err != nil {
		return nil, err
	}
	c.Status = domain.CitizenStatus(status)
	c.CreatedAt = created
	c.UpdatedAt = updated
	return &c, nil
}

func scanCitizens(rows pgx.Rows) ([]*domain.Citizen, error) {
	defer rows.Close()

	var out []*domain.Citizen
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Citizen{}
	}
	return out, nil
}
