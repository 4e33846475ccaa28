// Package citation implements the citation filing workflow: penalty
// escalation and the transactional insert of the citation together with any
// automatically generated criminal record.
package citation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/config"
	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type citizenRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Lock(ctx context.Context, id uuid.UUID) error
}

type citationRepo interface {
	Create(ctx context.Context, c *domain.Citation) (*domain.Citation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citation, error)
	CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.Citation, int, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Citation, int, error)
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*domain.Citation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordRepo interface {
	Create(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the citation business logic.
type Service struct {
	citizens  citizenRepo
	citations citationRepo
	records   recordRepo
	tx        txManager
	metrics   *metrics.Metrics
	cfg       config.CitationConfig
	log       *slog.Logger
}

// NewService creates a new Citation service.
func NewService(
	log *slog.Logger,
	citizens citizenRepo,
	citations citationRepo,
	records recordRepo,
	tx txManager,
	m *metrics.Metrics,
	cfg config.CitationConfig,
) *Service {
	return &Service{
		citizens:  citizens,
		citations: citations,
		records:   records,
		tx:        tx,
		metrics:   m,
		cfg:       cfg,
		log:       log.With("service", "citation"),
	}
}
