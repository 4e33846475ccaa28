package citation

import (
	"context"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// UpdateCitation edits a citation's description. The fine and the issued
// timestamp stay as the filing produced them, and no escalation is re-run:
// penalties are a function of the count at filing time only.
func (s *Service) UpdateCitation(ctx context.Context, input UpdateCitationInput) (*domain.Citation, error) {
	if err := input.Validate(s.cfg.MaxDescriptionLen); err != nil {
		return nil, err
	}

	updated, err := s.citations.UpdateDescription(ctx, input.ID, input.Description)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "citation updated", "citation_id", input.ID)
	return updated, nil
}

// DeleteCitation removes a citation. Deleting lowers the citizen's all-time
// count, which affects the ordinal of any future filing; already applied
// penalties and generated records are left untouched.
func (s *Service) DeleteCitation(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.citations.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "citation deleted", "citation_id", id)
	return nil
}
