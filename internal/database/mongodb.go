// Package database provides database connection and management.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB holds the database connection
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB connects to MongoDB and verifies the connection with a ping.
func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", dbName)

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

// Close disconnects from MongoDB
func (m *MongoDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		slog.Error("Error disconnecting from MongoDB", "error", err)
		return
	}
	slog.Info("Disconnected from MongoDB")
}

// Collection returns a collection from the database
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Index is one index the repositories rely on.
type Index struct {
	Collection string
	Keys       bson.D
	Unique     bool
}

// Indexes lists every index the application expects.
var Indexes = []Index{
	// Case-insensitive name uniqueness; the repository stores the lower-cased name.
	{Collection: "users", Keys: bson.D{{Key: "nameKey", Value: 1}}, Unique: true},
	{Collection: "reviews", Keys: bson.D{{Key: "createdAt", Value: 1}}},
	{Collection: "reviews", Keys: bson.D{{Key: "itemType", Value: 1}}},
	{Collection: "reviews", Keys: bson.D{{Key: "userId", Value: 1}}},
}

// EnsureIndexes creates the indexes in Indexes. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range Indexes {
		model := mongo.IndexModel{Keys: idx.Keys}
		if idx.Unique {
			model.Options = options.Index().SetUnique(true)
		}

		name, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
		slog.Debug("Index ready", "collection", idx.Collection, "index", name)
	}
	return nil
}
