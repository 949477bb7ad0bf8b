package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"rateit/internal/cache"
	"rateit/internal/config"
	"rateit/internal/database"
	"rateit/internal/models"
	"rateit/internal/repository"
	"rateit/internal/service"
	"rateit/internal/storage"
	"rateit/internal/store"
	"rateit/pkg/auth"
	"rateit/pkg/logging"

	"go.mongodb.org/mongo-driver/bson"
)

// seedReview is a review submitted by a seeded user.
type seedReview struct {
	Author   string
	Category string
	Rating   string
	Caption  string
	Keywords []string
	Color    color.RGBA
	Images   int
}

var seedUsers = []models.AuthRequest{
	{Action: models.ActionAuthenticate, Name: "Alice Johnson", Password: "password123"},
	{Action: models.ActionAuthenticate, Name: "Bob Smith", Password: "password456"},
}

var seedReviews = []seedReview{
	{Author: "Alice Johnson", Category: "coffee_shops", Rating: "5", Caption: "Best flat white in town", Color: color.RGBA{R: 111, G: 78, B: 55, A: 255}, Images: 2},
	{Author: "Alice Johnson", Category: "bakeries", Rating: "4", Caption: "Sourdough sells out by ten", Color: color.RGBA{R: 222, G: 184, B: 135, A: 255}, Images: 1},
	{Author: "Bob Smith", Category: "restaurants", Rating: "3", Caption: "Good pasta, slow service", Color: color.RGBA{R: 200, G: 60, B: 40, A: 255}, Images: 1},
	{Author: "Bob Smith", Category: models.DefaultCategory, Rating: "4", Caption: "Quiet bookshop with a reading nook", Keywords: []string{"books", "quiet"}, Color: color.RGBA{R: 60, G: 90, B: 160, A: 255}, Images: 1},
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("Starting seed...")

	users, reviews, saved, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	media, err := openStorage(cfg)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:      users,
		JWTManager:    auth.NewJWTManager(cfg.AccessTokenSecret, cfg.AccessTokenExpiry),
		HashPasswords: cfg.HashPasswords,
	})
	// Submissions and toggles invalidate whatever a running server has cached.
	var responseCache cache.Cache = cache.Noop{}
	if cfg.RedisURI != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURI)
		if err != nil {
			slog.Warn("Redis unavailable, cached lists may be stale until they expire", "error", err)
		} else {
			defer redisCache.Close()
			responseCache = redisCache
		}
	}

	reviewService := service.NewReviewService(service.ReviewServiceConfig{ReviewRepo: reviews, Storage: media, Cache: responseCache, CacheTTL: cfg.CacheTTL})
	savedService := service.NewSavedService(saved, responseCache, cfg.CacheTTL)

	// Seed users
	ids := make(map[string]string, len(seedUsers))
	for i := range seedUsers {
		result, err := authService.Authenticate(ctx, &seedUsers[i])
		if err != nil {
			return fmt.Errorf("seed user %s: %w", seedUsers[i].Name, err)
		}
		ids[result.User.Name] = result.User.ID
		slog.Info("Seeded user", "name", result.User.Name, "id", result.User.ID, "new", result.IsNewUser)
	}

	// Seed reviews with generated images
	var reviewIDs []string
	for _, sr := range seedReviews {
		req := &models.SubmitReviewRequest{
			UserID:   ids[sr.Author],
			Category: sr.Category,
			Rating:   sr.Rating,
			Caption:  sr.Caption,
			Keywords: sr.Keywords,
		}
		for n := 1; n <= sr.Images; n++ {
			upload, err := placeholderImage(fmt.Sprintf("photo%d.png", n), sr.Color)
			if err != nil {
				return err
			}
			req.Media = append(req.Media, upload)
		}

		review, err := reviewService.Submit(ctx, req)
		if err != nil {
			return fmt.Errorf("seed review %q: %w", sr.Caption, err)
		}
		reviewIDs = append(reviewIDs, review.ID)
	}
	slog.Info("Seeded reviews", "count", len(reviewIDs))

	// Each user saves the other's first review
	for _, pair := range [][2]string{{"Alice Johnson", reviewIDs[2]}, {"Bob Smith", reviewIDs[0]}} {
		if _, err := savedService.Toggle(ctx, &models.ToggleSavedRequest{UserID: ids[pair[0]], ReviewID: pair[1]}); err != nil {
			return fmt.Errorf("seed saved list: %w", err)
		}
	}

	slog.Info("Seed completed successfully!")
	return nil
}

// openStores clears reviews and saved lists and returns the repositories for the configured backend.
// Users are kept; authenticating an existing seed user just logs in.
func openStores(ctx context.Context, cfg *config.Config) (repository.UserRepository, repository.ReviewRepository, repository.SavedRepository, func(), error) {
	if cfg.StoreBackend == config.StoreMongo {
		mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := database.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			mongoDB.Close()
			return nil, nil, nil, nil, err
		}
		for _, name := range []string{"reviews", "saved_lists"} {
			if _, err := mongoDB.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				mongoDB.Close()
				return nil, nil, nil, nil, fmt.Errorf("clear %s: %w", name, err)
			}
		}
		return repository.NewUserRepository(mongoDB.Database),
			repository.NewReviewRepository(mongoDB.Database),
			repository.NewSavedRepository(mongoDB.Database),
			mongoDB.Close, nil
	}

	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := backend.Save(ctx, "reviews", models.ReviewDocument{Reviews: []models.Review{}}); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := backend.Save(ctx, "saved", models.SavedDocument{}); err != nil {
		return nil, nil, nil, nil, err
	}
	return repository.NewUserFileRepository(backend),
		repository.NewReviewFileRepository(backend),
		repository.NewSavedFileRepository(backend),
		func() {}, nil
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.MediaBackend == config.MediaS3 {
		return storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	}
	root, err := filepath.Abs(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}
	return storage.NewLocalStorage(root), nil
}

// placeholderImage renders a solid 640x480 PNG.
func placeholderImage(filename string, c color.RGBA) (models.Upload, error) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return models.Upload{}, fmt.Errorf("encode %s: %w", filename, err)
	}
	data := buf.Bytes()

	return models.Upload{
		Filename:    filename,
		ContentType: "image/png",
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}, nil
}
