package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rateit/internal/cache"
	"rateit/internal/config"
	"rateit/internal/database"
	"rateit/internal/handler"
	"rateit/internal/middleware"
	"rateit/internal/queue"
	"rateit/internal/repository"
	"rateit/internal/router"
	"rateit/internal/service"
	"rateit/internal/storage"
	"rateit/internal/store"
	"rateit/internal/thumbnail"
	"rateit/internal/validator"
	"rateit/pkg/auth"
	"rateit/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

//go:generate swag init -g main.go -d ./,../../internal/handler,../../internal/models,../../pkg/response -o ../../swagger

// @title           RateIt API
// @version         1.0
// @description     Reviews with ratings, captions and media, plus per-user saved lists.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

// thumbnailQueueSize bounds pending thumbnail jobs; submissions past it skip the thumbnail.
const thumbnailQueueSize = 100

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	slog.Info("Configuration loaded", "store", cfg.StoreBackend, "media", cfg.MediaBackend, "auth_required", cfg.AuthRequired)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// repositories groups the three stores behind one backend choice.
type repositories struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
	saved   repository.SavedRepository
	close   func()
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.StoreBackend == config.StoreMongo {
		mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			mongoDB.Close()
			return nil, err
		}

		return &repositories{
			users:   repository.NewUserRepository(mongoDB.Database),
			reviews: repository.NewReviewRepository(mongoDB.Database),
			saved:   repository.NewSavedRepository(mongoDB.Database),
			close:   mongoDB.Close,
		}, nil
	}

	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	slog.Info("Using file store", "dir", backend.Dir())

	return &repositories{
		users:   repository.NewUserFileRepository(backend),
		reviews: repository.NewReviewFileRepository(backend),
		saved:   repository.NewSavedFileRepository(backend),
		close:   func() {},
	}, nil
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.MediaBackend == config.MediaS3 {
		return storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
	}
	root, err := filepath.Abs(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}
	slog.Info("Using local media storage", "root", root)
	return storage.NewLocalStorage(root), nil
}

// openCache falls back to no caching when Redis is unset or unreachable.
func openCache(cfg *config.Config) (cache.Cache, func()) {
	if cfg.RedisURI == "" {
		return cache.Noop{}, func() {}
	}
	redisCache, err := cache.NewRedis(cfg.RedisURI)
	if err != nil {
		slog.Warn("Redis unavailable, caching disabled", "error", err)
		return cache.Noop{}, func() {}
	}
	return redisCache, redisCache.Close
}

func run(cfg *config.Config) error {
	validator.RegisterCustomValidators()
	gin.SetMode(cfg.GinMode)

	repos, err := openRepositories(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repos.close()

	media, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("open media storage: %w", err)
	}

	responseCache, closeCache := openCache(cfg)
	defer closeCache()

	jwtManager := auth.NewJWTManager(cfg.AccessTokenSecret, cfg.AccessTokenExpiry)

	// Thumbnail queue and processor
	var (
		thumbnails queue.Enqueuer
		processor  *queue.Processor
	)
	if cfg.ThumbnailWorkers > 0 {
		thumbQueue := queue.NewMemoryQueue(thumbnailQueueSize)
		processor = queue.NewProcessor(thumbQueue, thumbnail.NewResizer(media), cfg.ThumbnailWorkers)
		thumbnails = thumbQueue
	}

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:      repos.users,
		JWTManager:    jwtManager,
		HashPasswords: cfg.HashPasswords,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo: repos.reviews,
		Storage:    media,
		Cache:      responseCache,
		CacheTTL:   cfg.CacheTTL,
		Thumbnails: thumbnails,
	})
	savedService := service.NewSavedService(repos.saved, responseCache, cfg.CacheTTL)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.Setup(&router.Config{
		AuthHandler:   handler.NewAuthHandler(authService),
		ReviewHandler: handler.NewReviewHandler(reviewService, cfg.MaxUploadBytes(), cfg.AuthRequired),
		SavedHandler:  handler.NewSavedHandler(savedService, cfg.AuthRequired),
		MediaHandler:  handler.NewMediaHandler(media),
		TokenManager:  jwtManager,
		Metrics:       middleware.NewMetrics(registry),
		Gatherer:      registry,
		Logger:        slog.Default(),
	})
	// Keep multipart parts on disk past 8 MiB so large videos don't sit in memory.
	r.MaxMultipartMemory = 8 << 20

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if processor != nil {
		processor.Start(ctx)
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first (drain connections)
	slog.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Cancel context to signal processor shutdown
	cancel()

	if processor != nil {
		processor.Stop()
		slog.Info("Thumbnails", "completed", processor.Completed(), "failed", processor.Failed())
	}

	slog.Info("Server shutdown complete")
	return nil
}
