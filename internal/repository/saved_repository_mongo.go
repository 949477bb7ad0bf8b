package repository

import (
	"context"
	"errors"

	"rateit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// savedRepository implements SavedRepository using MongoDB, one document per user.
type savedRepository struct {
	collection *mongo.Collection
}

// NewSavedRepository creates a new SavedRepository.
func NewSavedRepository(db *mongo.Database) SavedRepository {
	return &savedRepository{
		collection: db.Collection("saved_lists"),
	}
}

// Toggle pulls the review if the user's list contains it, pushes it otherwise.
func (r *savedRepository) Toggle(ctx context.Context, userID, reviewID string) ([]string, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var list models.SavedList
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID, "reviewIds": reviewID},
		bson.M{"$pull": bson.M{"reviewIds": reviewID}},
		after,
	).Decode(&list)
	if err == nil {
		return nonNil(list.ReviewIDs), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	push := func() error {
		return r.collection.FindOneAndUpdate(ctx,
			bson.M{"_id": userID},
			bson.M{"$push": bson.M{"reviewIds": reviewID}},
			after.SetUpsert(true),
		).Decode(&list)
	}
	err = push()
	if mongo.IsDuplicateKeyError(err) {
		// Two first saves for one user raced on the upsert; the document exists now.
		err = push()
	}
	if err != nil {
		return nil, err
	}

	return nonNil(list.ReviewIDs), nil
}

// FindByUserID returns the saved review IDs for a user.
func (r *savedRepository) FindByUserID(ctx context.Context, userID string) ([]string, error) {
	var list models.SavedList
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&list)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		return nil, err
	}

	return nonNil(list.ReviewIDs), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
