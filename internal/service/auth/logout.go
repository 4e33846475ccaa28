package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/interpolice/interpolice-backend/internal/auth"
	"github.com/interpolice/interpolice-backend/internal/domain"
)

// Logout revokes the presented refresh token. An unknown token is treated as
// already logged out.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.NewValidationError("refresh_token", "required")
	}

	token, err := s.tokens.GetByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("auth.Logout get token: %w", err)
	}

	if err := s.tokens.Revoke(ctx, token.ID); err != nil {
		return fmt.Errorf("auth.Logout revoke token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", "user_id", token.UserID)
	return nil
}

// CleanupExpiredTokens removes refresh tokens past their expiry. Intended to
// run periodically from the app loop.
func (s *Service) CleanupExpiredTokens(ctx context.Context) error {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "expired refresh tokens removed", "count", n)
	}
	return nil
}
