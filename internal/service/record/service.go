// Package record implements direct administrative management of criminal
// records. Automatic record creation lives in the citation service; this
// package covers the manual entry path.
package record

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/pkg/ctxutil"
)

type recordRepo interface {
	Create(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CriminalRecord, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.CriminalRecord, int, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CriminalRecord, int, error)
	Update(ctx context.Context, rec *domain.CriminalRecord) (*domain.CriminalRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type citizenRepo interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service implements the criminal record business logic.
type Service struct {
	records  recordRepo
	citizens citizenRepo
	log      *slog.Logger
}

// NewService creates a new CriminalRecord service.
func NewService(log *slog.Logger, records recordRepo, citizens citizenRepo) *Service {
	return &Service{
		records:  records,
		citizens: citizens,
		log:      log.With("service", "record"),
	}
}

// CreateRecordInput holds the parameters for a manual criminal record entry.
type CreateRecordInput struct {
	CitizenID   uuid.UUID
	Description string
	CrimeType   domain.CrimeType
	Location    string
	OccurredAt  time.Time
}

// Validate checks all fields and collects all errors.
func (i *CreateRecordInput) Validate() error {
	var errs []domain.FieldError

	if i.CitizenID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "citizen_id", Message: "required"})
	}
	if strings.TrimSpace(i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if !i.CrimeType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "crime_type", Message: "unknown crime type"})
	}
	if strings.TrimSpace(i.Location) == "" {
		errs = append(errs, domain.FieldError{Field: "location", Message: "required"})
	}
	if i.OccurredAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "occurred_at", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateRecordInput holds the editable fields of a record. Nil fields keep
// their stored value.
type UpdateRecordInput struct {
	ID          uuid.UUID
	Description *string
	CrimeType   *domain.CrimeType
	Location    *string
	OccurredAt  *time.Time
}

// Validate checks all fields and collects all errors.
func (i *UpdateRecordInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Description != nil && strings.TrimSpace(*i.Description) == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "must not be empty"})
	}
	if i.CrimeType != nil && !i.CrimeType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "crime_type", Message: "unknown crime type"})
	}
	if i.Location != nil && strings.TrimSpace(*i.Location) == "" {
		errs = append(errs, domain.FieldError{Field: "location", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateRecord files a manual criminal record against a citizen.
func (s *Service) CreateRecord(ctx context.Context, input CreateRecordInput) (*domain.CriminalRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.citizens.Exists(ctx, input.CitizenID)
	if err != nil {
		return nil, fmt.Errorf("check citizen exists: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("citizen", input.CitizenID.String())
	}

	created, err := s.records.Create(ctx, &domain.CriminalRecord{
		ID:            uuid.New(),
		CitizenID:     input.CitizenID,
		Description:   input.Description,
		CrimeType:     input.CrimeType,
		Location:      input.Location,
		OccurredAt:    input.OccurredAt,
		AutoGenerated: false,
		CreatedBy:     &userID,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create criminal record: %w", err)
	}

	s.log.InfoContext(ctx, "criminal record created", "record_id", created.ID, "citizen_id", created.CitizenID)
	return created, nil
}

// GetRecord returns a criminal record by id.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*domain.CriminalRecord, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.records.GetByID(ctx, id)
}

// ListByCitizen returns a citizen's criminal records with the total count.
func (s *Service) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*domain.CriminalRecord, int, error) {
	if citizenID == uuid.Nil {
		return nil, 0, domain.NewValidationError("citizen_id", "required")
	}
	limit, offset = clampPage(limit, offset)

	exists, err := s.citizens.Exists(ctx, citizenID)
	if err != nil {
		return nil, 0, fmt.Errorf("check citizen exists: %w", err)
	}
	if !exists {
		return nil, 0, domain.NewNotFoundError("citizen", citizenID.String())
	}

	return s.records.ListByCitizen(ctx, citizenID, limit, offset)
}

// List returns all criminal records with the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.CriminalRecord, int, error) {
	limit, offset = clampPage(limit, offset)
	return s.records.List(ctx, limit, offset)
}

// UpdateRecord applies a partial update. The auto-generated flag never changes.
func (s *Service) UpdateRecord(ctx context.Context, input UpdateRecordInput) (*domain.CriminalRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.records.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		current.Description = *input.Description
	}
	if input.CrimeType != nil {
		current.CrimeType = *input.CrimeType
	}
	if input.Location != nil {
		current.Location = *input.Location
	}
	if input.OccurredAt != nil {
		current.OccurredAt = *input.OccurredAt
	}

	updated, err := s.records.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update criminal record: %w", err)
	}

	s.log.InfoContext(ctx, "criminal record updated", "record_id", updated.ID)
	return updated, nil
}

// DeleteRecord removes a criminal record.
func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "criminal record deleted", "record_id", id)
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
