package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/pkg/ctxutil"
)

// Register creates a user account. Only admins may register new personnel;
// there is no self-service signup.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role, ok := ctxutil.RoleFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role.String())

	return user, nil
}
