package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxIDAttempts = 5

// userRepository implements UserRepository using MongoDB
type userRepository struct {
	collection *mongo.Collection

	seedMu sync.Mutex
	seeded bool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// ensureSeeded inserts the demo user into an empty collection, once per process.
func (r *userRepository) ensureSeeded(ctx context.Context) error {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()

	if r.seeded {
		return nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}

	if count == 0 {
		demo := DemoUser
		demo.NameKey = strings.ToLower(demo.Name)
		if _, err := r.collection.InsertOne(ctx, demo); err != nil && !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}

	r.seeded = true
	return nil
}

// FindByName finds a user by name, ignoring case
func (r *userRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	if err := r.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"nameKey": strings.ToLower(name)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	// Check if user with name already exists
	taken, err := r.nameTaken(ctx, user.Name)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrUserAlreadyExists
	}

	user.NameKey = strings.ToLower(user.Name)
	assignID := user.ID == ""
	now := time.Now()

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		if assignID {
			user.ID = nextUserID(nil, now.Add(time.Duration(attempt)*time.Millisecond))
		}

		_, err := r.collection.InsertOne(ctx, user)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}

		// Either the name was taken concurrently or the clock-derived ID collided
		taken, lookupErr := r.nameTaken(ctx, user.Name)
		if lookupErr != nil {
			return lookupErr
		}
		if taken {
			return apperrors.ErrUserAlreadyExists
		}
		if !assignID {
			return err
		}
	}

	return apperrors.ErrUserAlreadyExists
}

func (r *userRepository) nameTaken(ctx context.Context, name string) (bool, error) {
	_, err := r.FindByName(ctx, name)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check existing user: %w", err)
	}
	return true, nil
}

// UpdateLastLogin stamps a user's last login time
func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) (*models.User, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLogin": at}})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns all users
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	if err := r.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if users == nil {
		users = []models.User{}
	}

	return users, nil
}
