package citizen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

// UploadAvatar stores an avatar image for a citizen and records its URL.
func (s *Service) UploadAvatar(ctx context.Context, citizenID uuid.UUID, filename string, data []byte) (*domain.Citizen, error) {
	if citizenID == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("avatar", "empty file")
	}
	if int64(len(data)) > s.cfg.MaxSizeBytes {
		return nil, domain.NewValidationError("avatar", "file too large")
	}

	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return nil, err
	}

	url, err := s.avatars.Save(ctx, citizenID, filename, data)
	if err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}

	if err := s.citizens.SetAvatarURL(ctx, citizenID, &url); err != nil {
		return nil, fmt.Errorf("set avatar url: %w", err)
	}

	citizen.AvatarURL = &url
	s.log.InfoContext(ctx, "avatar uploaded", "citizen_id", citizenID)

	return citizen, nil
}

// DeleteAvatar removes a citizen's avatar file and clears the stored URL.
// Deleting when no avatar is set is a no-op.
func (s *Service) DeleteAvatar(ctx context.Context, citizenID uuid.UUID) error {
	if citizenID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	citizen, err := s.citizens.GetByID(ctx, citizenID)
	if err != nil {
		return err
	}
	if citizen.AvatarURL == nil {
		return nil
	}

	if err := s.avatars.Remove(ctx, *citizen.AvatarURL); err != nil {
		return fmt.Errorf("remove avatar: %w", err)
	}
	if err := s.citizens.SetAvatarURL(ctx, citizenID, nil); err != nil {
		return fmt.Errorf("clear avatar url: %w", err)
	}

	s.log.InfoContext(ctx, "avatar deleted", "citizen_id", citizenID)
	return nil
}
