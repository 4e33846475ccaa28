package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/interpolice/interpolice-backend/internal/auth"
	"github.com/interpolice/interpolice-backend/internal/config"
	"github.com/interpolice/interpolice-backend/internal/domain"
	"github.com/interpolice/interpolice-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type userRepoMock struct {
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type tokenRepoMock struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error)
	GetByHashFunc        func(ctx context.Context, hash string) (*domain.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, id uuid.UUID) error
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc    func(ctx context.Context) (int64, error)

	revokeAllCalls int
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, hash)
}

func (m *tokenRepoMock) Revoke(ctx context.Context, id uuid.UUID) error {
	return m.RevokeFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	m.revokeAllCalls++
	return m.RevokeAllForUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int64, error) {
	return m.DeleteExpiredFunc(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(users userRepo, tokens tokenRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.AuthConfig{
		JWTSecret:       testSecret,
		JWTIssuer:       "interpolice",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
	jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL)
	return NewService(logger, users, tokens, jwt, cfg)
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func adminCtx() context.Context {
	return ctxutil.WithUser(context.Background(), uuid.New(), domain.RoleAdmin)
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			assert.Equal(t, "officer@interpolice.gov", user.Email)
			assert.NotEqual(t, "settled-password", user.PasswordHash, "password must be hashed")
			return user, nil
		},
	}

	svc := newTestService(users, &tokenRepoMock{})
	user, err := svc.Register(adminCtx(), RegisterInput{
		Email:    " Officer@Interpolice.gov ",
		Username: "zed",
		Password: "settled-password",
		Role:     domain.RoleOfficer,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleOfficer, user.Role)
}

func TestService_Register_NonAdminForbidden(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, &tokenRepoMock{})
	ctx := ctxutil.WithUser(context.Background(), uuid.New(), domain.RoleOfficer)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "officer@interpolice.gov",
		Username: "zed",
		Password: "settled-password",
		Role:     domain.RoleOfficer,
	})

	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, &tokenRepoMock{})
	_, err := svc.Register(adminCtx(), RegisterInput{
		Email:    "officer@interpolice.gov",
		Username: "zed",
		Password: "short",
		Role:     domain.RoleOfficer,
	})

	require.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	password := "correct horse battery staple"
	stored := &domain.User{
		ID:           uuid.New(),
		Email:        "officer@interpolice.gov",
		PasswordHash: hashedPassword(t, password),
		Role:         domain.RoleOfficer,
	}

	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "officer@interpolice.gov", email)
			return stored, nil
		},
	}
	tokens := &tokenRepoMock{
		CreateFunc: func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
			assert.Equal(t, stored.ID, token.UserID)
			assert.NotEmpty(t, token.TokenHash)
			return token, nil
		},
	}

	svc := newTestService(users, tokens)
	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "Officer@Interpolice.gov",
		Password: password,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.RefreshToken, result.AccessToken)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	stored := &domain.User{
		ID:           uuid.New(),
		PasswordHash: hashedPassword(t, "right password"),
		Role:         domain.RoleOfficer,
	}
	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return stored, nil
		},
	}

	svc := newTestService(users, &tokenRepoMock{})
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "officer@interpolice.gov",
		Password: "wrong password",
	})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.NewNotFoundError("user", email)
		},
	}

	svc := newTestService(users, &tokenRepoMock{})
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@interpolice.gov",
		Password: "whatever it is",
	})

	require.ErrorIs(t, err, domain.ErrUnauthorized, "unknown email must look identical to a bad password")
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestService_Refresh_RotatesToken(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Role: domain.RoleOfficer}
	raw := "raw-refresh-token"
	stored := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: auth.HashToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	revoked := false
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return user, nil
		},
	}
	tokens := &tokenRepoMock{
		GetByHashFunc: func(ctx context.Context, hash string) (*domain.RefreshToken, error) {
			assert.Equal(t, stored.TokenHash, hash)
			return stored, nil
		},
		RevokeFunc: func(ctx context.Context, id uuid.UUID) error {
			assert.Equal(t, stored.ID, id)
			revoked = true
			return nil
		},
		CreateFunc: func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
			return token, nil
		},
	}

	svc := newTestService(users, tokens)
	result, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: raw})

	require.NoError(t, err)
	assert.True(t, revoked, "the presented token must be revoked")
	assert.NotEqual(t, raw, result.RefreshToken)
}

func TestService_Refresh_ReplayedTokenRevokesAllSessions(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()
	stored := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: &now,
	}

	tokens := &tokenRepoMock{
		GetByHashFunc: func(ctx context.Context, hash string) (*domain.RefreshToken, error) {
			return stored, nil
		},
		RevokeAllForUserFunc: func(ctx context.Context, gotID uuid.UUID) error {
			assert.Equal(t, userID, gotID)
			return nil
		},
	}

	svc := newTestService(&userRepoMock{}, tokens)
	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "replayed"})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, tokens.revokeAllCalls)
}

func TestService_Refresh_ExpiredToken(t *testing.T) {
	t.Parallel()

	tokens := &tokenRepoMock{
		GetByHashFunc: func(ctx context.Context, hash string) (*domain.RefreshToken, error) {
			return &domain.RefreshToken{
				ID:        uuid.New(),
				UserID:    uuid.New(),
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}

	svc := newTestService(&userRepoMock{}, tokens)
	_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "expired"})

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestService_Logout_UnknownTokenIsNoop(t *testing.T) {
	t.Parallel()

	tokens := &tokenRepoMock{
		GetByHashFunc: func(ctx context.Context, hash string) (*domain.RefreshToken, error) {
			return nil, domain.NewNotFoundError("refresh token", "")
		},
	}

	svc := newTestService(&userRepoMock{}, tokens)
	err := svc.Logout(context.Background(), "never-issued")

	require.NoError(t, err)
}
