package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"rateit/internal/config"
	"rateit/internal/database"
	"rateit/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.StoreBackend != config.StoreMongo {
		slog.Info("Nothing to index", "store_backend", cfg.StoreBackend)
		return
	}

	if err := run(cfg); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	slog.Info("Starting migration...")

	mongoDB, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(ctx, mongoDB.Database); err != nil {
		return err
	}

	slog.Info("Migration completed successfully!", "indexes", len(database.Indexes))
	return nil
}
