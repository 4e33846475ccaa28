// Package citizen implements the citizen registry: CRUD, search and avatar
// management.
package citizen

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pgcitizen "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citizen"
	"github.com/interpolice/interpolice-backend/internal/config"
	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type citizenRepo interface {
	Create(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	Update(ctx context.Context, c *domain.Citizen) (*domain.Citizen, error)
	SetAvatarURL(ctx context.Context, id uuid.UUID, url *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, f pgcitizen.Filter) ([]*domain.Citizen, int, error)
}

type planetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Planet, error)
}

type avatarStore interface {
	Save(ctx context.Context, citizenID uuid.UUID, filename string, data []byte) (string, error)
	Remove(ctx context.Context, url string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the citizen registry business logic.
type Service struct {
	citizens citizenRepo
	planets  planetRepo
	avatars  avatarStore
	metrics  *metrics.Metrics
	cfg      config.UploadsConfig
	log      *slog.Logger
}

// NewService creates a new Citizen service.
func NewService(
	log *slog.Logger,
	citizens citizenRepo,
	planets planetRepo,
	avatars avatarStore,
	m *metrics.Metrics,
	cfg config.UploadsConfig,
) *Service {
	return &Service{
		citizens: citizens,
		planets:  planets,
		avatars:  avatars,
		metrics:  m,
		cfg:      cfg,
		log:      log.With("service", "citizen"),
	}
}
