// Package criminalrecord implements the CriminalRecord repository using PostgreSQL.
package criminalrecord

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Repo provides criminal record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new criminal record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const recordColumns = `id, citizen_id, description, crime_type, location, occurred_at, auto_generated, created_by, created_at, updated_at`

const createSQL = `
INSERT INTO criminal_records (id, citizen_id, description, crime_type, location, occurred_at, auto_generated, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING ` + recordColumns

const getByIDSQL = `
SELECT ` + recordColumns + `
FROM criminal_records
WHERE id = $1`

const listByCitizenSQL = `
SELECT ` + recordColumns + `
FROM criminal_records
WHERE citizen_id = $1
ORDER BY occurred_at DESC
LIMIT $2 OFFSET $3`

const countByCitizenSQL = `
SELECT count(*) FROM criminal_records WHERE citizen_id = $1`

const listSQL = `
SELECT ` + recordColumns + `
FROM criminal_records
ORDER BY occurred_at DESC
LIMIT $1 OFFSET $2`

const countSQL = `
SELECT count(*) FROM criminal_records`

const updateSQL = `
UPDATE criminal_records
SET description = $2, crime_type = $3, location = $4, occurred_at = $5, updated_at = now()
WHERE id = $1
RETURNING ` + recordColumns

const deleteSQL = `
DELETE FROM criminal_records WHERE id = $1`

// Create inserts a criminal record and returns the persisted row. Used both
// by the filing transaction (auto-generated records) and the admin CRUD path.
func (r *Repo) Create(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		rec.ID, rec.CitizenID, rec.Description, rec.CrimeType.String(), rec.Location,
		rec.OccurredAt, rec.AutoGenerated, rec.CreatedBy, rec.CreatedAt)

	created, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "criminal record", rec.ID.String())
	}
	return created, nil
}

// GetByID returns a criminal record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CriminalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "criminal record", id.String())
	}
	return rec, nil
}

// ListByCitizen returns a citizen's criminal records with pagination
// (most recent occurrence first) plus the total count.
func (r *Repo) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.CriminalRecord, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countByCitizenSQL, citizenID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count criminal records by citizen: %w", err)
	}

	rows, err := q.Query(ctx, listByCitizenSQL, citizenID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list criminal records by citizen: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan criminal records: %w", err)
	}
	return records, total, nil
}

// List returns all criminal records with pagination plus the total count.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.CriminalRecord, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := q.QueryRow(ctx, countSQL).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count criminal records: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list criminal records: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan criminal records: %w", err)
	}
	return records, total, nil
}

// Update modifies the editable fields of a record. The auto_generated flag is
// immutable: it tells an auditor how the record came to exist.
func (r *Repo) Update(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, updateSQL,
		rec.ID, rec.Description, rec.CrimeType.String(), rec.Location, rec.OccurredAt)

	updated, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "criminal record", rec.ID.String())
	}
	return updated, nil
}

// Delete removes a criminal record.
// Returns domain.ErrNotFound if the record does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "criminal record", id.String())
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("criminal record", id.String())
	}
	return nil
}

func scanRecord(row pgx.Row) (*domain.CriminalRecord, error) {
	var (
		rec       domain.CriminalRecord
		crimeType string
	)
	err := row.Scan(&rec.ID, &rec.CitizenID, &rec.Description, &crimeType, &rec.Location,
		&rec.OccurredAt, &rec.AutoGenerated, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.CrimeType = domain.CrimeType(crimeType)
	return &rec, nil
}

func scanRecords(rows pgx.Rows) ([]*domain.CriminalRecord, error) {
	defer rows.Close()

	var out []*domain.CriminalRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.CriminalRecord{}
	}
	return out, nil
}
