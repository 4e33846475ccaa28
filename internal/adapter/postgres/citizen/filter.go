package citizen

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Filter defines parameters for searching and paginating the citizen registry.
type Filter struct {
	// Search performs ILIKE '%...%' on name. Empty means no text filter.
	Search string

	// Status restricts results to citizens with the given registry status.
	Status *domain.CitizenStatus

	// PlanetID matches citizens whose origin OR residence is the given planet.
	PlanetID *uuid.UUID

	// SortBy determines the sort column: "name", "created_at". Default: "created_at".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "DESC".
	SortOrder string

	// Limit is the maximum number of rows to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of rows to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	switch f.SortBy {
	case "name", "created_at":
		// valid
	default:
		f.SortBy = "created_at"
	}

	switch f.SortOrder {
	case "ASC", "DESC":
		// valid
	default:
		f.SortOrder = "DESC"
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Search returns citizens matching the filter plus the total match count
// (for pagination), ordered per the filter.
func (r *Repo) Search(ctx context.Context, f Filter) ([]*domain.Citizen, int, error) {
	f.normalize()
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	where := sq.And{}
	if f.Search != "" {
		where = append(where, sq.ILike{"name": "%" + f.Search + "%"})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": f.Status.String()})
	}
	if f.PlanetID != nil {
		where = append(where, sq.Or{
			sq.Eq{"origin_planet_id": *f.PlanetID},
			sq.Eq{"residence_planet_id": *f.PlanetID},
		})
	}

	countSQL, countArgs, err := builder.Select("count(*)").From("citizens").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count citizens: %w", err)
	}

	listSQL, listArgs, err := builder.
		Select("id", "name", "status", "origin_planet_id", "residence_planet_id", "avatar_url", "created_at", "updated_at").
		From("citizens").
		Where(where).
		OrderBy(f.SortBy + " " + f.SortOrder).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list citizens: %w", err)
	}

	citizens, err := scanCitizens(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan citizens: %w", err)
	}
	return citizens, total, nil
}
