package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/repository"
	"rateit/pkg/auth"
)

// AuthService handles authentication business logic.
type AuthService struct {
	userRepo      repository.UserRepository
	jwtManager    auth.TokenManager
	hashPasswords bool
	now           func() time.Time
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	UserRepo   repository.UserRepository
	JWTManager auth.TokenManager
	// HashPasswords stores bcrypt hashes for new accounts instead of plaintext.
	HashPasswords bool
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo:      cfg.UserRepo,
		jwtManager:    cfg.JWTManager,
		hashPasswords: cfg.HashPasswords,
		now:           now,
	}
}

// Authenticate logs a user in by name and password, creating the account
// when the name has never been seen.
func (s *AuthService) Authenticate(ctx context.Context, req *models.AuthRequest) (*models.AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Password == "" {
		return nil, apperrors.ErrNameAndPasswordRequired
	}
	if req.Action != models.ActionAuthenticate {
		return nil, apperrors.ErrInvalidAction
	}

	user, err := s.userRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		return s.login(ctx, user, req.Password)
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	user, err = s.register(ctx, name, req.Password)
	if errors.Is(err, apperrors.ErrUserAlreadyExists) {
		// Lost a race with a concurrent first login under the same name.
		existing, findErr := s.userRepo.FindByName(ctx, name)
		if findErr != nil {
			return nil, fmt.Errorf("find user: %w", findErr)
		}
		return s.login(ctx, existing, req.Password)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID)
	return s.result(user, true)
}

func (s *AuthService) login(ctx context.Context, user *models.User, password string) (*models.AuthResult, error) {
	if !auth.VerifyPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	updated, err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	return s.result(updated, false)
}

func (s *AuthService) register(ctx context.Context, name, password string) (*models.User, error) {
	stored := password
	if s.hashPasswords {
		hashed, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		stored = hashed
	}

	now := s.now().UTC()
	user := &models.User{
		Name:      name,
		NameKey:   strings.ToLower(name),
		Password:  stored,
		CreatedAt: now,
		LastLogin: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) result(user *models.User, isNew bool) (*models.AuthResult, error) {
	token, err := s.jwtManager.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.AuthResult{
		User:      user.Public(),
		IsNewUser: isNew,
		Token:     token,
	}, nil
}

// ListUsers returns every user without passwords.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}
