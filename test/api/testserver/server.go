//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"rateit/internal/cache"
	"rateit/internal/handler"
	"rateit/internal/middleware"
	"rateit/internal/queue"
	"rateit/internal/repository"
	"rateit/internal/router"
	"rateit/internal/service"
	"rateit/internal/storage"
	"rateit/internal/thumbnail"
	"rateit/pkg/auth"
	"rateit/test/api/testdb"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// TestAccessTokenSecret is the JWT secret used in tests.
	TestAccessTokenSecret = "test-secret-key-for-api-tests"
	// TestAccessTokenExpiry is the session token expiry used in tests.
	TestAccessTokenExpiry = 15 * time.Minute
	// TestCacheTTL is the response cache TTL used in tests.
	TestCacheTTL = time.Minute
	// TestMaxUploadBytes caps multipart bodies in tests.
	TestMaxUploadBytes = 5 << 20
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
)

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router serves the open endpoints; AuthRouter is the same stack with AUTH_REQUIRED on.
	Router     *gin.Engine
	AuthRouter *gin.Engine

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer
	MinIO   *testdb.MinIOContainer

	// Repositories (for direct database access in tests)
	UserRepo   repository.UserRepository
	ReviewRepo repository.ReviewRepository
	SavedRepo  repository.SavedRepository

	Storage    *storage.S3Client
	JWTManager *auth.JWTManager
	Registry   *prometheus.Registry

	ThumbnailProcessor *queue.Processor
	thumbnails         *countingQueue
}

// countingQueue counts first-time enqueues so tests can wait for the processor to drain.
// Retries go straight to the inner queue and are not counted.
type countingQueue struct {
	*queue.MemoryQueue
	enqueued atomic.Int64
}

func (q *countingQueue) Enqueue(job queue.ThumbnailJob) error {
	q.enqueued.Add(1)
	if err := q.MemoryQueue.Enqueue(job); err != nil {
		q.enqueued.Add(-1)
		return err
	}
	return nil
}

// New creates a new test server with all dependencies wired up.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	mongoDB, err := testdb.SetupMongoDB(ctx, TestDBName)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	minioContainer, err := testdb.SetupMinIO(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		_ = redisContainer.Cleanup(ctx)
		return nil, err
	}

	ts := &TestServer{
		MongoDB: mongoDB,
		Redis:   redisContainer,
		MinIO:   minioContainer,
	}

	redisCache, err := cache.NewRedis(redisContainer.URI)
	if err != nil {
		ts.Cleanup(ctx)
		return nil, err
	}

	s3Client, err := storage.NewS3Client(
		minioContainer.Endpoint,
		minioContainer.AccessKey,
		minioContainer.SecretKey,
		minioContainer.Bucket,
		false,
	)
	if err != nil {
		ts.Cleanup(ctx)
		return nil, err
	}

	ts.Storage = s3Client
	ts.JWTManager = auth.NewJWTManager(TestAccessTokenSecret, TestAccessTokenExpiry)
	ts.Registry = prometheus.NewRegistry()

	// Repository layer
	ts.UserRepo = repository.NewUserRepository(mongoDB.Database)
	ts.ReviewRepo = repository.NewReviewRepository(mongoDB.Database)
	ts.SavedRepo = repository.NewSavedRepository(mongoDB.Database)

	// Thumbnails are generated against MinIO, with short retries
	thumbQueue := queue.NewMemoryQueue(100)
	ts.thumbnails = &countingQueue{MemoryQueue: thumbQueue}
	ts.ThumbnailProcessor = queue.NewProcessor(thumbQueue, thumbnail.NewResizer(s3Client), 2).
		WithRetryDelay(50 * time.Millisecond)
	ts.ThumbnailProcessor.Start(context.Background())

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:      ts.UserRepo,
		JWTManager:    ts.JWTManager,
		HashPasswords: true,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo: ts.ReviewRepo,
		Storage:    s3Client,
		Cache:      redisCache,
		CacheTTL:   TestCacheTTL,
		Thumbnails: ts.thumbnails,
	})
	savedService := service.NewSavedService(ts.SavedRepo, redisCache, TestCacheTTL)

	// Metrics are only registered once; the auth-required router reuses the collectors
	metrics := middleware.NewMetrics(ts.Registry)

	build := func(authRequired bool) *gin.Engine {
		return router.Setup(&router.Config{
			AuthHandler:   handler.NewAuthHandler(authService),
			ReviewHandler: handler.NewReviewHandler(reviewService, TestMaxUploadBytes, authRequired),
			SavedHandler:  handler.NewSavedHandler(savedService, authRequired),
			MediaHandler:  handler.NewMediaHandler(s3Client),
			TokenManager:  ts.JWTManager,
			Metrics:       metrics,
			Gatherer:      ts.Registry,
			Logger:        slog.Default(),
		})
	}
	ts.Router = build(false)
	ts.AuthRouter = build(true)

	return ts, nil
}

// ThumbnailsPending reports how many enqueued thumbnails have neither completed nor failed.
func (ts *TestServer) ThumbnailsPending() int64 {
	return ts.thumbnails.enqueued.Load() - ts.ThumbnailProcessor.Completed() - ts.ThumbnailProcessor.Failed()
}

// Cleanup stops the processor and terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.ThumbnailProcessor != nil {
		ts.ThumbnailProcessor.Stop()
	}
	if ts.MinIO != nil {
		_ = ts.MinIO.Cleanup(ctx)
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}
