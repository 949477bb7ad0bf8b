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

const reviewsDocument = "reviews"

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	// FindAll returns every review in insertion order.
	FindAll(ctx context.Context) ([]models.Review, error)
}

// reviewFileRepository implements ReviewRepository on a single JSON document.
type reviewFileRepository struct {
	backend store.Backend
	mu      sync.Mutex
}

// NewReviewFileRepository creates a ReviewRepository backed by the reviews document.
func NewReviewFileRepository(backend store.Backend) ReviewRepository {
	return &reviewFileRepository{backend: backend}
}

// load reads the reviews document. A missing or corrupt document reads as empty.
func (r *reviewFileRepository) load(ctx context.Context) (*models.ReviewDocument, error) {
	var doc models.ReviewDocument
	err := r.backend.Load(ctx, reviewsDocument, &doc)
	switch {
	case err == nil:
		return &doc, nil
	case errors.Is(err, store.ErrNotFound):
		return &models.ReviewDocument{}, nil
	case errors.Is(err, store.ErrCorrupt):
		slog.WarnContext(ctx, "reviews store is corrupt, treating as empty", "error", err)
		return &models.ReviewDocument{}, nil
	default:
		return nil, fmt.Errorf("load reviews: %w", err)
	}
}

// Create appends a review to the document.
func (r *reviewFileRepository) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}

	doc.Reviews = append(doc.Reviews, *review)
	if err := r.backend.Save(ctx, reviewsDocument, doc); err != nil {
		return fmt.Errorf("save reviews: %w", err)
	}
	return nil
}

// FindAll returns all reviews.
func (r *reviewFileRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if doc.Reviews == nil {
		return []models.Review{}, nil
	}
	return doc.Reviews, nil
}
