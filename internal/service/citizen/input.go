package citizen

import (
	"strings"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

const maxNameLen = 200

// CreateCitizenInput holds the parameters for registering a citizen.
type CreateCitizenInput struct {
	Name              string
	Status            domain.CitizenStatus
	OriginPlanetID    uuid.UUID
	ResidencePlanetID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CreateCitizenInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be ALIVE, DEAD, or FROZEN"})
	}
	if i.OriginPlanetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "origin_planet_id", Message: "required"})
	}
	if i.ResidencePlanetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "residence_planet_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateCitizenInput holds the parameters for editing a citizen. Nil fields
// keep their stored value.
type UpdateCitizenInput struct {
	ID                uuid.UUID
	Name              *string
	Status            *domain.CitizenStatus
	OriginPlanetID    *uuid.UUID
	ResidencePlanetID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *UpdateCitizenInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		if strings.TrimSpace(*i.Name) == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
		}
		if len(*i.Name) > maxNameLen {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be ALIVE, DEAD, or FROZEN"})
	}
	if i.OriginPlanetID != nil && *i.OriginPlanetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "origin_planet_id", Message: "must not be empty"})
	}
	if i.ResidencePlanetID != nil && *i.ResidencePlanetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "residence_planet_id", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SearchInput holds the parameters for finding citizens.
type SearchInput struct {
	Search    string
	Status    *domain.CitizenStatus
	PlanetID  *uuid.UUID
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i *SearchInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be ALIVE, DEAD, or FROZEN"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
