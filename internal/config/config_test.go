package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns environment variable value when set", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_VAR", "custom_value")

		result := getEnv("TEST_CONFIG_VAR", "default_value")

		assert.Equal(t, "custom_value", result)
	})

	t.Run("returns default value when env var not set", func(t *testing.T) {
		result := getEnv("NONEXISTENT_CONFIG_VAR_12345", "default_value")

		assert.Equal(t, "default_value", result)
	})

	t.Run("returns default value when env var is empty string", func(t *testing.T) {
		t.Setenv("EMPTY_CONFIG_VAR", "")

		result := getEnv("EMPTY_CONFIG_VAR", "default_value")

		assert.Equal(t, "default_value", result)
	})
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{"minutes", "15m", 15 * time.Minute},
		{"hours", "24h", 24 * time.Hour},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseDuration(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads custom values", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_SECRET", "test-secret-key")
		t.Setenv("SERVER_PORT", "3000")
		t.Setenv("GIN_MODE", "release")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("STORE_BACKEND", "Mongo")
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("MONGO_DATABASE", "testdb")
		t.Setenv("REDIS_URI", "redis.example.com:6379")
		t.Setenv("CACHE_TTL", "1m")
		t.Setenv("MEDIA_BACKEND", "s3")
		t.Setenv("S3_ENDPOINT", "s3.example.com:9000")
		t.Setenv("S3_ACCESS_KEY", "myaccesskey")
		t.Setenv("S3_SECRET_KEY", "mysecretkey")
		t.Setenv("S3_BUCKET", "my-bucket")
		t.Setenv("S3_USE_SSL", "true")
		t.Setenv("MAX_UPLOAD_MB", "10")
		t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
		t.Setenv("AUTH_REQUIRED", "true")
		t.Setenv("HASH_PASSWORDS", "false")
		t.Setenv("THUMBNAIL_WORKERS", "4")

		cfg := Load()

		require.NotNil(t, cfg)
		assert.Equal(t, "3000", cfg.ServerPort)
		assert.Equal(t, "release", cfg.GinMode)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, StoreMongo, cfg.StoreBackend)
		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
		assert.Equal(t, "testdb", cfg.MongoDatabase)
		assert.Equal(t, "redis.example.com:6379", cfg.RedisURI)
		assert.Equal(t, time.Minute, cfg.CacheTTL)
		assert.Equal(t, MediaS3, cfg.MediaBackend)
		assert.Equal(t, "s3.example.com:9000", cfg.S3Endpoint)
		assert.Equal(t, "myaccesskey", cfg.S3AccessKey)
		assert.Equal(t, "mysecretkey", cfg.S3SecretKey)
		assert.Equal(t, "my-bucket", cfg.S3Bucket)
		assert.True(t, cfg.S3UseSSL)
		assert.Equal(t, int64(10), cfg.MaxUploadMB)
		assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
		assert.Equal(t, "test-secret-key", cfg.AccessTokenSecret)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
		assert.True(t, cfg.AuthRequired)
		assert.False(t, cfg.HashPasswords)
		assert.Equal(t, 4, cfg.ThumbnailWorkers)
	})

	t.Run("uses default values for optional env vars", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_SECRET", "test-secret-key")

		cfg := Load()

		require.NotNil(t, cfg)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "debug", cfg.GinMode)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, StoreFile, cfg.StoreBackend)
		assert.Equal(t, "Db", cfg.DataDir)
		assert.Equal(t, "rateit", cfg.MongoDatabase)
		assert.Empty(t, cfg.RedisURI)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.Equal(t, MediaLocal, cfg.MediaBackend)
		assert.Equal(t, ".", cfg.MediaRoot)
		assert.Equal(t, int64(50), cfg.MaxUploadMB)
		assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiry)
		assert.False(t, cfg.AuthRequired)
		assert.True(t, cfg.HashPasswords)
		assert.Equal(t, 2, cfg.ThumbnailWorkers)
		assert.False(t, cfg.S3UseSSL)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{StoreBackend: StoreFile, MediaBackend: MediaLocal, MaxUploadMB: 50}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"file and local", func(c *Config) {}, ""},
		{"mongo with uri", func(c *Config) { c.StoreBackend = StoreMongo; c.MongoURI = "mongodb://x" }, ""},
		{"mongo without uri", func(c *Config) { c.StoreBackend = StoreMongo }, "MONGO_URI"},
		{"unknown store", func(c *Config) { c.StoreBackend = "sqlite" }, "STORE_BACKEND"},
		{"unknown media", func(c *Config) { c.MediaBackend = "gcs" }, "MEDIA_BACKEND"},
		{"zero upload limit", func(c *Config) { c.MaxUploadMB = 0 }, "MAX_UPLOAD_MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
