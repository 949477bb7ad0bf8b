package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"rateit/internal/models"
	"rateit/internal/store"
)

const savedDocument = "saved"

// SavedRepository defines the interface for saved-list data operations.
type SavedRepository interface {
	// Toggle removes reviewID from the user's list if present, appends it otherwise,
	// and returns the resulting list.
	Toggle(ctx context.Context, userID, reviewID string) ([]string, error)
	// FindByUserID returns the user's list, empty if they never saved anything.
	FindByUserID(ctx context.Context, userID string) ([]string, error)
}

// savedFileRepository implements SavedRepository on a single JSON document.
type savedFileRepository struct {
	backend store.Backend
	mu      sync.Mutex
}

// NewSavedFileRepository creates a SavedRepository backed by the saved document.
func NewSavedFileRepository(backend store.Backend) SavedRepository {
	return &savedFileRepository{backend: backend}
}

func (r *savedFileRepository) load(ctx context.Context) (models.SavedDocument, error) {
	doc := models.SavedDocument{}
	err := r.backend.Load(ctx, savedDocument, &doc)
	switch {
	case err == nil:
		if doc == nil {
			doc = models.SavedDocument{}
		}
		return doc, nil
	case errors.Is(err, store.ErrNotFound):
		return models.SavedDocument{}, nil
	case errors.Is(err, store.ErrCorrupt):
		slog.WarnContext(ctx, "saved store is corrupt, treating as empty", "error", err)
		return models.SavedDocument{}, nil
	default:
		return nil, fmt.Errorf("load saved: %w", err)
	}
}

// Toggle flips a review's membership in the user's saved list.
func (r *savedFileRepository) Toggle(ctx context.Context, userID, reviewID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	doc[userID] = toggleID(doc[userID], reviewID)

	if err := r.backend.Save(ctx, savedDocument, doc); err != nil {
		return nil, fmt.Errorf("save saved: %w", err)
	}
	return doc[userID], nil
}

// FindByUserID returns the saved review IDs for a user.
func (r *savedFileRepository) FindByUserID(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if ids := doc[userID]; ids != nil {
		return ids, nil
	}
	return []string{}, nil
}

// toggleID removes the first exact match of id from ids, or appends id if absent.
// The result is never nil.
func toggleID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...)
		}
	}
	return append(append(make([]string, 0, len(ids)+1), ids...), id)
}
