package auth

import "github.com/interpolice/interpolice-backend/internal/domain"

// AuthResult is returned by login and refresh: the authenticated user plus a
// fresh token pair. RefreshToken is the raw value; only its hash is stored.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}
