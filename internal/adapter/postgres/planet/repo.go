// Package planet implements the Planet reference-data repository.
package planet

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const planetColumns = `id, name, code, created_at`

const createSQL = `
INSERT INTO planets (id, name, code, created_at)
VALUES ($1, $2, $3, now())
RETURNING ` + planetColumns

const getByIDSQL = `
SELECT ` + planetColumns + `
FROM planets
WHERE id = $1`

const listSQL = `
SELECT ` + planetColumns + `
FROM planets
ORDER BY name`

// Create inserts a planet. Codes are unique; duplicates map to
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p *domain.Planet) (*domain.Planet, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	created, err := scanPlanet(q.QueryRow(ctx, createSQL, p.ID, p.Name, p.Code))
	if err != nil {
		return nil, postgres.MapError(err, "planet", p.ID.String())
	}
	return created, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Planet, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	p, err := scanPlanet(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "planet", id.String())
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]*domain.Planet, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	defer rows.Close()

	var out []*domain.Planet
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Planet{}
	}
	return out, nil
}

func scanPlanet(row pgx.Row) (*domain.Planet, error) {
	var p domain.Planet
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
