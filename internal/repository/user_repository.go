// Package repository provides data access operations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/store"
)

//go:generate mockgen -destination=mocks/mock_repositories.go -package=mocks rateit/internal/repository UserRepository,ReviewRepository,SavedRepository

const usersDocument = "users"

// DemoUser is the account a fresh users store is seeded with.
var DemoUser = models.User{
	ID:        "1",
	Name:      "Demo User",
	Password:  "demo123",
	CreatedAt: time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
	LastLogin: time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// FindByName looks a user up by name, ignoring case.
	FindByName(ctx context.Context, name string) (*models.User, error)
	// Create assigns an ID when empty and stores the user.
	// Returns ErrUserAlreadyExists if the name is taken (ignoring case).
	Create(ctx context.Context, user *models.User) error
	// UpdateLastLogin sets lastLogin and returns the updated user.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
}

// userFileRepository implements UserRepository on a single JSON document.
type userFileRepository struct {
	backend store.Backend
	mu      sync.Mutex
}

// NewUserFileRepository creates a UserRepository backed by the users document.
func NewUserFileRepository(backend store.Backend) UserRepository {
	return &userFileRepository{backend: backend}
}

// load reads the users document, replacing a missing or corrupt one with the seeded store.
// Callers must hold r.mu.
func (r *userFileRepository) load(ctx context.Context) (*models.UserDocument, error) {
	var doc models.UserDocument
	err := r.backend.Load(ctx, usersDocument, &doc)
	if err == nil && doc.Users == nil {
		err = fmt.Errorf("%w: no users array", store.ErrCorrupt)
	}
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrCorrupt) {
		return nil, fmt.Errorf("load users: %w", err)
	}

	if errors.Is(err, store.ErrCorrupt) {
		slog.WarnContext(ctx, "users store is corrupt, reseeding", "error", err)
	}

	seeded := &models.UserDocument{Users: []models.User{DemoUser}}
	if err := r.backend.Save(ctx, usersDocument, seeded); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return seeded, nil
}

func (r *userFileRepository) save(ctx context.Context, doc *models.UserDocument) error {
	if err := r.backend.Save(ctx, usersDocument, doc); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// FindByName finds a user by name, ignoring case
func (r *userFileRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexByName(doc.Users, name); i >= 0 {
		user := doc.Users[i]
		return &user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

// Create appends a new user to the document
func (r *userFileRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	if indexByName(doc.Users, user.Name) >= 0 {
		return apperrors.ErrUserAlreadyExists
	}

	if user.ID == "" {
		user.ID = nextUserID(doc.Users, time.Now())
	}

	doc.Users = append(doc.Users, *user)
	return r.save(ctx, doc)
}

// UpdateLastLogin stamps a user's last login time
func (r *userFileRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range doc.Users {
		if doc.Users[i].ID == id {
			doc.Users[i].LastLogin = at
			if err := r.save(ctx, doc); err != nil {
				return nil, err
			}
			user := doc.Users[i]
			return &user, nil
		}
	}

	return nil, apperrors.ErrUserNotFound
}

// FindAll returns all users
func (r *userFileRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func indexByName(users []models.User, name string) int {
	for i := range users {
		if strings.EqualFold(users[i].Name, name) {
			return i
		}
	}
	return -1
}

// nextUserID derives an ID from the clock, bumping it past any ID already taken.
func nextUserID(users []models.User, now time.Time) string {
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[u.ID] = struct{}{}
	}

	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		n++
	}
}
