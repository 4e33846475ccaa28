package citizen

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pgcitizen "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citizen"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// CreateCitizen registers a citizen. Both planet references must resolve.
func (s *Service) CreateCitizen(ctx context.Context, input CreateCitizenInput) (*domain.Citizen, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkPlanet(ctx, "origin_planet_id", input.OriginPlanetID); err != nil {
		return nil, err
	}
	if err := s.checkPlanet(ctx, "residence_planet_id", input.ResidencePlanetID); err != nil {
		return nil, err
	}

	created, err := s.citizens.Create(ctx, &domain.Citizen{
		ID:                uuid.New(),
		Name:              input.Name,
		Status:            input.Status,
		OriginPlanetID:    input.OriginPlanetID,
		ResidencePlanetID: input.ResidencePlanetID,
	})
	if err != nil {
		return nil, fmt.Errorf("create citizen: %w", err)
	}

	s.metrics.CitizensRegistered.Inc()
	s.log.InfoContext(ctx, "citizen registered", "citizen_id", created.ID)

	return created, nil
}

// GetCitizen returns a citizen by id.
func (s *Service) GetCitizen(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.citizens.GetByID(ctx, id)
}

// UpdateCitizen applies a partial update to a citizen.
func (s *Service) UpdateCitizen(ctx context.Context, input UpdateCitizenInput) (*domain.Citizen, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.citizens.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if input.OriginPlanetID != nil {
		if err := s.checkPlanet(ctx, "origin_planet_id", *input.OriginPlanetID); err != nil {
			return nil, err
		}
		current.OriginPlanetID = *input.OriginPlanetID
	}
	if input.ResidencePlanetID != nil {
		if err := s.checkPlanet(ctx, "residence_planet_id", *input.ResidencePlanetID); err != nil {
			return nil, err
		}
		current.ResidencePlanetID = *input.ResidencePlanetID
	}

	updated, err := s.citizens.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update citizen: %w", err)
	}

	s.log.InfoContext(ctx, "citizen updated", "citizen_id", updated.ID)
	return updated, nil
}

// DeleteCitizen removes a citizen. Citations and criminal records cascade
// with the row.
func (s *Service) DeleteCitizen(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.citizens.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "citizen deleted", "citizen_id", id)
	return nil
}

// SearchCitizens finds citizens by name fragment, status and planet, with
// pagination and sorting.
func (s *Service) SearchCitizens(ctx context.Context, input SearchInput) ([]*domain.Citizen, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	return s.citizens.Search(ctx, pgcitizen.Filter{
		Search:    input.Search,
		Status:    input.Status,
		PlanetID:  input.PlanetID,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
}

func (s *Service) checkPlanet(ctx context.Context, field string, id uuid.UUID) error {
	if _, err := s.planets.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError(field, "unknown planet")
		}
		return fmt.Errorf("resolve planet: %w", err)
	}
	return nil
}
