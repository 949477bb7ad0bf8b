package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rateit/internal/cache"
	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/repository"
)

// SavedService handles saved-list business logic.
type SavedService struct {
	savedRepo repository.SavedRepository
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewSavedService creates a new SavedService.
func NewSavedService(savedRepo repository.SavedRepository, c cache.Cache, cacheTTL time.Duration) *SavedService {
	if c == nil {
		c = cache.Noop{}
	}
	return &SavedService{
		savedRepo: savedRepo,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// Toggle saves the review for the user, or unsaves it if already saved.
// Returns the user's resulting list.
func (s *SavedService) Toggle(ctx context.Context, req *models.ToggleSavedRequest) ([]string, error) {
	if req.UserID == "" || req.ReviewID == "" {
		return nil, apperrors.ErrUserAndReviewRequired
	}

	saved, err := s.savedRepo.Toggle(ctx, req.UserID, req.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("toggle saved: %w", err)
	}

	keyFor := func(v int64) string { return cache.SavedCacheKey(req.UserID, v) }
	if err := cache.Invalidate(ctx, s.cache, cache.SavedVersionKey(req.UserID), keyFor); err != nil {
		slog.Warn("Failed to invalidate saved cache", "user_id", req.UserID, "error", err)
	}
	return saved, nil
}

// Query returns the user's saved review IDs, or an empty list.
func (s *SavedService) Query(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, apperrors.ErrUserIDRequired
	}

	version, err := s.cache.Version(ctx, cache.SavedVersionKey(userID))
	if err != nil {
		slog.Warn("Saved cache version read failed", "user_id", userID, "error", err)
		return s.find(ctx, userID)
	}
	key := cache.SavedCacheKey(userID, version)

	var cached []string
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Saved cache read failed", "user_id", userID, "error", err)
	}
	if found && cached != nil {
		return cached, nil
	}

	saved, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, saved, s.cacheTTL); err != nil {
		slog.Warn("Saved cache write failed", "user_id", userID, "error", err)
	}
	return saved, nil
}

func (s *SavedService) find(ctx context.Context, userID string) ([]string, error) {
	saved, err := s.savedRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find saved: %w", err)
	}
	return saved, nil
}
