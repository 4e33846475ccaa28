package citation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// GetCitation returns a single citation by id.
func (s *Service) GetCitation(ctx context.Context, id uuid.UUID) (*domain.Citation, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.citations.GetByID(ctx, id)
}

// ListByCitizen returns a citizen's citations, newest first, with the total count.
func (s *Service) ListByCitizen(ctx context.Context, citizenID uuid.UUID, input ListInput) ([]*domain.Citation, int, error) {
	if citizenID == uuid.Nil {
		return nil, 0, domain.NewValidationError("citizen_id", "required")
	}
	input.normalize()

	exists, err := s.citizens.Exists(ctx, citizenID)
	if err != nil {
		return nil, 0, fmt.Errorf("check citizen exists: %w", err)
	}
	if !exists {
		return nil, 0, domain.NewNotFoundError("citizen", citizenID.String())
	}

	return s.citations.ListByCitizen(ctx, citizenID, input.Limit, input.Offset)
}

// List returns all citations, newest first, with the total count.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Citation, int, error) {
	input.normalize()
	return s.citations.List(ctx, input.Limit, input.Offset)
}
