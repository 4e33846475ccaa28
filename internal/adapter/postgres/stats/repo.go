// Package stats implements aggregate reporting queries over the citation
// and criminal record tables.
package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Totals is the system-wide snapshot returned by the overview endpoint.
type Totals struct {
	Citizens        int
	Citations       int
	CriminalRecords int
	AutoRecords     int
	FinesTotal      domain.Credits
}

// Offender is one row of the top offenders report.
type Offender struct {
	CitizenID     uuid.UUID
	CitizenName   string
	CitationCount int
	FinesTotal    domain.Credits
}

// PlanetRecords is one row of the records-by-planet report, keyed by the
// citizen's residence planet.
type PlanetRecords struct {
	PlanetID    uuid.UUID
	PlanetName  string
	RecordCount int
}

type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const totalsSQL = `
SELECT
	(SELECT count(*) FROM citizens),
	(SELECT count(*) FROM citations),
	(SELECT count(*) FROM criminal_records),
	(SELECT count(*) FROM criminal_records WHERE auto_generated),
	(SELECT coalesce(sum(fine_amount_cents), 0) FROM citations)`

const topOffendersSQL = `
SELECT c.id, c.name, count(ct.id) AS citation_count, coalesce(sum(ct.fine_amount_cents), 0)
FROM citizens c
JOIN citations ct ON ct.citizen_id = c.id
GROUP BY c.id, c.name
ORDER BY citation_count DESC, c.name
LIMIT $1`

const recordsByPlanetSQL = `
SELECT p.id, p.name, count(cr.id) AS record_count
FROM planets p
JOIN citizens c ON c.residence_planet_id = p.id
JOIN criminal_records cr ON cr.citizen_id = c.id
GROUP BY p.id, p.name
ORDER BY record_count DESC, p.name`

// Totals returns the system-wide counters in a single round trip.
func (r *Repo) Totals(ctx context.Context) (*Totals, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var (
		t         Totals
		fineCents int64
	)
	err := q.QueryRow(ctx, totalsSQL).Scan(
		&t.Citizens, &t.Citations, &t.CriminalRecords, &t.AutoRecords, &fineCents)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	t.FinesTotal = domain.Credits(fineCents)
	return &t, nil
}

// TopOffenders returns the citizens with the most citations, with their
// accumulated fines.
func (r *Repo) TopOffenders(ctx context.Context, limit int) ([]Offender, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, topOffendersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query top offenders: %w", err)
	}
	defer rows.Close()

	out := []Offender{}
	for rows.Next() {
		var (
			o         Offender
			fineCents int64
		)
		if err := rows.Scan(&o.CitizenID, &o.CitizenName, &o.CitationCount, &fineCents); err != nil {
			return nil, fmt.Errorf("scan offender row: %w", err)
		}
		o.FinesTotal = domain.Credits(fineCents)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordsByPlanet returns criminal record counts grouped by residence planet.
func (r *Repo) RecordsByPlanet(ctx context.Context) ([]PlanetRecords, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, recordsByPlanetSQL)
	if err != nil {
		return nil, fmt.Errorf("query records by planet: %w", err)
	}
	defer rows.Close()

	out := []PlanetRecords{}
	for rows.Next() {
		var pr PlanetRecords
		if err := rows.Scan(&pr.PlanetID, &pr.PlanetName, &pr.RecordCount); err != nil {
			return nil, fmt.Errorf("scan planet records row: %w", err)
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
