package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rateit/internal/models"
	"rateit/internal/store"
)

// Session keys. UserKey holds the public user record, TokenKey the bearer token.
const (
	UserKey  = "rateit_user"
	TokenKey = "rateit_token"
)

// Session remembers the logged-in user between CLI invocations.
// Each key is one JSON document in the session directory.
type Session struct {
	backend store.Backend
}

// NewSession creates a Session on top of backend.
func NewSession(backend store.Backend) *Session {
	return &Session{backend: backend}
}

// OpenSession creates a file-backed Session in dir, or in DefaultSessionDir when dir is empty.
func OpenSession(dir string) (*Session, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultSessionDir(); err != nil {
			return nil, err
		}
	}
	backend, err := store.NewFileBackend(dir)
	if err != nil {
		return nil, err
	}
	return NewSession(backend), nil
}

// DefaultSessionDir is <user config dir>/rateit.
func DefaultSessionDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "rateit"), nil
}

// Set stores the user and token. The user record never carries a password.
func (s *Session) Set(ctx context.Context, user models.PublicUser, token string) error {
	if err := s.backend.Save(ctx, UserKey, user); err != nil {
		return err
	}
	if token == "" {
		return s.backend.Delete(ctx, TokenKey)
	}
	return s.backend.Save(ctx, TokenKey, token)
}

// Get returns the stored user, or nil when nobody is logged in.
// An unreadable record counts as logged out.
func (s *Session) Get(ctx context.Context) (*models.PublicUser, error) {
	var user models.PublicUser
	err := s.backend.Load(ctx, UserKey, &user)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrCorrupt) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Token returns the stored bearer token, or "".
func (s *Session) Token(ctx context.Context) string {
	var token string
	if err := s.backend.Load(ctx, TokenKey, &token); err != nil {
		return ""
	}
	return token
}

// Clear forgets the user and token.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, UserKey); err != nil {
		return err
	}
	return s.backend.Delete(ctx, TokenKey)
}

// IsLoggedIn reports whether a user is stored.
func (s *Session) IsLoggedIn(ctx context.Context) bool {
	user, err := s.Get(ctx)
	return err == nil && user != nil
}
