// Package filestore persists citizen avatars on the local filesystem and
// serves them back by URL.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/interpolice/interpolice-backend/internal/domain"
)

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// AvatarStore writes avatar files under a base directory. Files are named by
// citizen id so a re-upload replaces the previous avatar.
type AvatarStore struct {
	dir     string
	baseURL string
}

// NewAvatarStore creates the base directory if needed.
func NewAvatarStore(dir, baseURL string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &AvatarStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save stores the avatar bytes and returns the public URL.
// Rejects extensions outside the allowed image set.
func (s *AvatarStore) Save(ctx context.Context, citizenID uuid.UUID, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", domain.NewValidationError("avatar", "unsupported file type")
	}

	name := citizenID.String() + ext
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	// A citizen keeps at most one avatar; drop stale files with other extensions.
	for other := range allowedExtensions {
		if other == ext {
			continue
		}
		_ = os.Remove(filepath.Join(s.dir, citizenID.String()+other))
	}

	return s.baseURL + "/" + name, nil
}

// Remove deletes the stored file behind a previously returned URL.
// Removing a missing file is not an error.
func (s *AvatarStore) Remove(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := filepath.Base(url)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return domain.NewValidationError("avatar", "invalid avatar url")
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove avatar file: %w", err)
	}
	return nil
}

// Dir returns the base directory, used to mount the static file handler.
func (s *AvatarStore) Dir() string { return s.dir }
