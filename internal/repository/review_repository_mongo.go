package repository

import (
	"context"

	"rateit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reviewRepository implements ReviewRepository using MongoDB.
type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection("reviews"),
	}
}

// Create inserts a review.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	_, err := r.collection.InsertOne(ctx, review)
	return err
}

// FindAll returns all reviews, oldest first.
func (r *reviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}
