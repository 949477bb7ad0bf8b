// Package router sets up HTTP routes for the API.
package router

import (
	"log/slog"
	"net/http"

	_ "rateit/swagger" // Import generated swagger docs

	"rateit/internal/handler"
	"rateit/internal/middleware"
	"rateit/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler   *handler.AuthHandler
	ReviewHandler *handler.ReviewHandler
	SavedHandler  *handler.SavedHandler
	MediaHandler  *handler.MediaHandler
	TokenManager  auth.TokenManager
	// Metrics and Gatherer are optional; /metrics is only mounted when Gatherer is set.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler())
	}

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Uploaded media
	r.GET("/assets/*path", cfg.MediaHandler.Serve)

	// Tokens are optional on every API route; handlers decide whether a subject is required.
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(cfg.TokenManager))
	{
		api.POST("/auth", cfg.AuthHandler.Authenticate)
		api.GET("/auth", cfg.AuthHandler.ListUsers)

		api.POST("/reviews", cfg.ReviewHandler.Submit)
		api.GET("/reviews", cfg.ReviewHandler.List)

		api.POST("/saved", cfg.SavedHandler.Toggle)
		api.GET("/saved", cfg.SavedHandler.Query)
	}

	return r
}
