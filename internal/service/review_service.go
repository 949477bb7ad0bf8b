package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"rateit/internal/cache"
	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/queue"
	"rateit/internal/repository"
	"rateit/internal/storage"
	"rateit/internal/thumbnail"

	"github.com/google/uuid"
)

// MediaPrefix is the storage prefix all review media live under.
const MediaPrefix = "assets/reviews"

// PlaceholderID is stamped on reviews submitted without a user or item.
const PlaceholderID = "1"

// ReviewService handles review business logic.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	storage    storage.Storage
	cache      cache.Cache
	cacheTTL   time.Duration
	thumbnails queue.Enqueuer
	now        func() time.Time
	newID      func() string
}

// ReviewServiceConfig holds configuration for ReviewService.
type ReviewServiceConfig struct {
	ReviewRepo repository.ReviewRepository
	Storage    storage.Storage
	Cache      cache.Cache
	CacheTTL   time.Duration
	// Thumbnails receives a job per uploaded image; nil disables thumbnails.
	Thumbnails queue.Enqueuer
	Now        func() time.Time
	NewID      func() string
}

// NewReviewService creates a new ReviewService.
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	s := &ReviewService{
		reviewRepo: cfg.ReviewRepo,
		storage:    cfg.Storage,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		thumbnails: cfg.Thumbnails,
		now:        cfg.Now,
		newID:      cfg.NewID,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.thumbnails == nil {
		s.thumbnails = queue.Discard{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Submit stores the uploaded media and persists a new review.
func (s *ReviewService) Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
	uploads := make([]models.Upload, 0, len(req.Media))
	for _, up := range req.Media {
		if up.Size > 0 && up.Open != nil {
			uploads = append(uploads, up)
		}
	}
	if len(uploads) == 0 {
		return nil, apperrors.ErrNoMediaUploaded
	}

	rating, err := ParseRating(req.Rating)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	now := s.now().UTC()
	review := &models.Review{
		ID:        s.newID(),
		UserID:    orDefault(req.UserID, PlaceholderID),
		ItemID:    orDefault(req.ItemID, PlaceholderID),
		ItemType:  category,
		Rating:    rating,
		Caption:   req.Caption,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if category == models.DefaultCategory {
		review.Keywords = cleanKeywords(req.Keywords)
	}

	log := slog.With("review_id", review.ID)

	review.Media = make([]models.Media, 0, len(uploads))
	for i, up := range uploads {
		media, err := s.storeUpload(ctx, review.ID, i+1, up)
		if err != nil {
			return nil, err
		}
		review.Media = append(review.Media, media)
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := cache.Invalidate(ctx, s.cache, cache.ReviewsVersionKey, cache.ReviewsCacheKey); err != nil {
		log.Warn("Failed to invalidate review cache", "error", err)
	}

	for _, m := range review.Media {
		if m.Type != models.MediaImage {
			continue
		}
		job := queue.ThumbnailJob{ReviewID: review.ID, SourceKey: m.Path, TargetKey: thumbnail.KeyFor(m.Path)}
		if err := s.thumbnails.Enqueue(job); err != nil {
			log.Warn("Failed to enqueue thumbnail", "key", m.Path, "error", err)
		}
	}

	log.Info("Review submitted", "user_id", review.UserID, "media", len(review.Media))
	return review, nil
}

func (s *ReviewService) storeUpload(ctx context.Context, reviewID string, n int, up models.Upload) (models.Media, error) {
	kind := models.MediaVideo
	if strings.HasPrefix(up.ContentType, "image") {
		kind = models.MediaImage
	}
	filename := fmt.Sprintf("%s%d%s", kind, n, path.Ext(up.Filename))
	key := path.Join(MediaPrefix, reviewID, filename)

	rc, err := up.Open()
	if err != nil {
		return models.Media{}, fmt.Errorf("open upload %q: %w", up.Filename, err)
	}
	defer rc.Close()

	if err := s.storage.PutObject(ctx, key, rc, up.ContentType); err != nil {
		return models.Media{}, fmt.Errorf("store media %s: %w", key, err)
	}

	return models.Media{
		Type:       kind,
		Filename:   filename,
		Path:       key,
		UploadedAt: s.now().UTC(),
	}, nil
}

// List returns the reviews matching filter, in submission order.
func (s *ReviewService) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	reviews, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsZero() {
		return reviews, nil
	}

	matched := make([]models.Review, 0, len(reviews))
	for i := range reviews {
		if matches(&reviews[i], filter) {
			matched = append(matched, reviews[i])
		}
	}
	return matched, nil
}

func (s *ReviewService) all(ctx context.Context) ([]models.Review, error) {
	// The version is read before the repository so a concurrent Submit
	// leaves this fill under a key nobody reads any more.
	version, err := s.cache.Version(ctx, cache.ReviewsVersionKey)
	if err != nil {
		slog.Warn("Review cache version read failed", "error", err)
		return s.findAll(ctx)
	}
	key := cache.ReviewsCacheKey(version)

	var cached []models.Review
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Review cache read failed", "error", err)
	}
	if found {
		return cached, nil
	}

	reviews, err := s.findAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, reviews, s.cacheTTL); err != nil {
		slog.Warn("Review cache write failed", "error", err)
	}
	return reviews, nil
}

func (s *ReviewService) findAll(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func matches(r *models.Review, f models.ReviewFilter) bool {
	if f.Category != "" && !strings.EqualFold(r.ItemType, f.Category) {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if f.MinRating != nil && r.Rating < *f.MinRating {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if strings.Contains(strings.ToLower(r.Caption), q) {
			return true
		}
		for _, k := range r.Keywords {
			if strings.Contains(strings.ToLower(k), q) {
				return true
			}
		}
		return false
	}
	return true
}

// ParseRating reads the leading integer of a rating field. An empty value is 0;
// a value with no leading digits is rejected. "4.5" and "4 stars" both read as 4.
func ParseRating(raw string) (int, error) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if s == "" {
		return 0, nil
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		start = 1
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, apperrors.ErrInvalidRating
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, apperrors.ErrInvalidRating
	}
	return n, nil
}

func cleanKeywords(in []string) []string {
	var out []string
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
