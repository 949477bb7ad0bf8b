// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends selectable through STORE_BACKEND and MEDIA_BACKEND.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
	MediaLocal = "local"
	MediaS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string

	// Persistence
	StoreBackend  string
	DataDir       string
	MongoURI      string
	MongoDatabase string

	// Cache; empty RedisURI disables caching
	RedisURI string
	CacheTTL time.Duration

	// Media
	MediaBackend string
	MediaRoot    string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool
	MaxUploadMB  int64

	// Auth
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	AuthRequired      bool
	HashPasswords     bool

	ThumbnailWorkers int
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if file doesn't exist - env vars may be set directly)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
		DataDir:       getEnv("DATA_DIR", "Db"),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "rateit"),

		RedisURI: getEnv("REDIS_URI", ""),
		CacheTTL: parseDuration(getEnv("CACHE_TTL", "5m")),

		MediaBackend: strings.ToLower(getEnv("MEDIA_BACKEND", MediaLocal)),
		MediaRoot:    getEnv("MEDIA_ROOT", "."),
		S3Endpoint:   getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:  getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:     getEnv("S3_BUCKET", "rateit-media"),
		S3UseSSL:     getEnv("S3_USE_SSL", "false") == "true",
		MaxUploadMB:  int64(parseInt(getEnv("MAX_UPLOAD_MB", "50"))),

		AccessTokenSecret: getEnvRequired("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry: parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "24h")),
		AuthRequired:      getEnv("AUTH_REQUIRED", "false") == "true",
		HashPasswords:     getEnv("HASH_PASSWORDS", "true") == "true",

		ThumbnailWorkers: parseInt(getEnv("THUMBNAIL_WORKERS", "2")),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreFile:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=%s", StoreMongo)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.MediaBackend {
	case MediaLocal, MediaS3:
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.MediaBackend)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// MaxUploadBytes is the request body limit for review submissions.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and exits if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

// parseDuration parses a duration string, exits on error
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid integer: %s", s)
	}
	return n
}
