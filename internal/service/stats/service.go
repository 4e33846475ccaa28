// Package stats exposes aggregate reporting for dashboards and auditors.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	pgstats "github.com/interpolice/interpolice-backend/internal/adapter/postgres/stats"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

const (
	defaultTopOffenders = 10
	maxTopOffenders     = 100
)

type statsRepo interface {
	Totals(ctx context.Context) (*pgstats.Totals, error)
	TopOffenders(ctx context.Context, limit int) ([]pgstats.Offender, error)
	RecordsByPlanet(ctx context.Context) ([]pgstats.PlanetRecords, error)
}

// Service implements the reporting queries.
type Service struct {
	stats statsRepo
	log   *slog.Logger
}

// NewService creates a new Stats service.
func NewService(log *slog.Logger, stats statsRepo) *Service {
	return &Service{
		stats: stats,
		log:   log.With("service", "stats"),
	}
}

// Overview returns the system-wide totals.
func (s *Service) Overview(ctx context.Context) (*pgstats.Totals, error) {
	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats overview: %w", err)
	}
	return totals, nil
}

// TopOffenders returns the citizens with the most citations.
func (s *Service) TopOffenders(ctx context.Context, limit int) ([]pgstats.Offender, error) {
	if limit < 0 {
		return nil, domain.NewValidationError("limit", "must be non-negative")
	}
	if limit == 0 {
		limit = defaultTopOffenders
	}
	if limit > maxTopOffenders {
		limit = maxTopOffenders
	}

	return s.stats.TopOffenders(ctx, limit)
}

// RecordsByPlanet returns criminal record counts grouped by residence planet.
func (s *Service) RecordsByPlanet(ctx context.Context) ([]pgstats.PlanetRecords, error) {
	return s.stats.RecordsByPlanet(ctx)
}
