package citation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/internal/service/penalty"
	"github.com/interpolice/interpolice-backend/pkg/ctxutil"
)

// FileCitationResult is what a successful filing returns: the stored citation,
// the penalty outcome that drove it, and the criminal record if one was
// generated.
type FileCitationResult struct {
	Citation       *domain.Citation
	Outcome        penalty.Outcome
	CriminalRecord *domain.CriminalRecord
}

// FileCitation files a citation against a citizen and applies the penalty
// ladder. The citation count, the citation insert and any automatic criminal
// record insert all happen in one transaction: either everything lands or
// nothing does.
//
// The citizen row is locked for the duration of the transaction, so two
// concurrent filings against the same citizen serialize and each one sees an
// accurate prior count.
func (s *Service) FileCitation(ctx context.Context, input FileCitationInput) (*FileCitationResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxDescriptionLen); err != nil {
		return nil, err
	}

	// Cheap existence check outside the transaction: unknown citizens fail
	// fast without taking a lock.
	exists, err := s.citizens.Exists(ctx, input.CitizenID)
	if err != nil {
		return nil, fmt.Errorf("check citizen exists: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("citizen", input.CitizenID.String())
	}

	var result FileCitationResult

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.citizens.Lock(txCtx, input.CitizenID); err != nil {
			return fmt.Errorf("lock citizen: %w", err)
		}

		priorCount, err := s.citations.CountByCitizen(txCtx, input.CitizenID)
		if err != nil {
			return fmt.Errorf("count prior citations: %w", err)
		}

		outcome := penalty.Calculate(priorCount)
		now := time.Now().UTC()

		citation, err := s.citations.Create(txCtx, &domain.Citation{
			ID:          uuid.New(),
			CitizenID:   input.CitizenID,
			Description: input.Description,
			FineAmount:  outcome.FineAmount,
			IssuedAt:    now,
			CreatedBy:   &userID,
		})
		if err != nil {
			return fmt.Errorf("create citation: %w", err)
		}

		result = FileCitationResult{Citation: citation, Outcome: outcome}

		if !outcome.CreatesCriminalRecord {
			return nil
		}

		record, err := s.records.Create(txCtx, &domain.CriminalRecord{
			ID:        uuid.New(),
			CitizenID: input.CitizenID,
			Description: fmt.Sprintf("Automatically generated: citation number %d (%s).",
				outcome.CitationNumber, input.Description),
			CrimeType:     domain.CrimeTypeAccumulatedCitations,
			Location:      s.cfg.RecordLocation,
			OccurredAt:    now,
			AutoGenerated: true,
			CreatedBy:     &userID,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("create criminal record: %w", err)
		}

		result.CriminalRecord = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveCitationFiled(result.Outcome.CreatesCriminalRecord)

	s.log.InfoContext(ctx, "citation filed",
		"citizen_id", input.CitizenID,
		"citation_id", result.Citation.ID,
		"citation_number", result.Outcome.CitationNumber,
		"criminal_record_created", result.Outcome.CreatesCriminalRecord,
	)

	return &result, nil
}
