package citation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// FileCitationInput holds the parameters for filing a citation.
type FileCitationInput struct {
	CitizenID   uuid.UUID
	Description string
}

// Validate checks all fields and collects all errors.
func (i *FileCitationInput) Validate(maxDescriptionLen int) error {
	var errs []domain.FieldError

	if i.CitizenID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "citizen_id", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if len(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateCitationInput holds the parameters for the administrative override of
// a citation's description. Fines are never editable after filing.
type UpdateCitationInput struct {
	ID          uuid.UUID
	Description string
}

// Validate checks all fields and collects all errors.
func (i *UpdateCitationInput) Validate(maxDescriptionLen int) error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if len(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds pagination parameters shared by the list operations.
type ListInput struct {
	Limit  int
	Offset int
}

func (i *ListInput) normalize() {
	if i.Limit <= 0 {
		i.Limit = 50
	}
	if i.Limit > 200 {
		i.Limit = 200
	}
	if i.Offset < 0 {
		i.Offset = 0
	}
}
