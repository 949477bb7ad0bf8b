// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"strconv"
	"sync/atomic"
	"time"

	"rateit/internal/models"

	"github.com/google/uuid"
)

var userSeq atomic.Int64

// ===== User Fixtures =====

// UserBuilder provides fluent API for building test users.
type UserBuilder struct {
	user models.User
}

// NewUser creates a new UserBuilder with sensible defaults.
// The password is stored in plaintext, the way legacy records are.
func NewUser() *UserBuilder {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := strconv.FormatInt(now.UnixMilli()+userSeq.Add(1), 10)
	return &UserBuilder{
		user: models.User{
			ID:        id,
			Name:      "Test User " + id,
			Password:  "password123",
			CreatedAt: now,
			LastLogin: now,
		},
	}
}

func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.user.Password = password
	return b
}

func (b *UserBuilder) WithLastLogin(at time.Time) *UserBuilder {
	b.user.LastLogin = at
	return b
}

func (b *UserBuilder) Build() models.User {
	return b.user
}

func (b *UserBuilder) BuildPtr() *models.User {
	u := b.user
	return &u
}

// ===== Review Fixtures =====

// ReviewBuilder provides fluent API for building test reviews.
type ReviewBuilder struct {
	review models.Review
}

// NewReview creates a ReviewBuilder with one image and the placeholder user and item.
func NewReview() *ReviewBuilder {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := uuid.NewString()
	return &ReviewBuilder{
		review: models.Review{
			ID:       id,
			UserID:   "1",
			ItemID:   "1",
			ItemType: "other",
			Rating:   4,
			Caption:  "Test review",
			Media: []models.Media{{
				Type:       models.MediaImage,
				Filename:   "image1.jpg",
				Path:       "assets/reviews/" + id + "/image1.jpg",
				UploadedAt: now,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *ReviewBuilder) WithID(id string) *ReviewBuilder {
	b.review.ID = id
	return b
}

func (b *ReviewBuilder) WithUserID(userID string) *ReviewBuilder {
	b.review.UserID = userID
	return b
}

func (b *ReviewBuilder) WithCategory(category string) *ReviewBuilder {
	b.review.ItemType = category
	return b
}

func (b *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	b.review.Rating = rating
	return b
}

func (b *ReviewBuilder) WithCaption(caption string) *ReviewBuilder {
	b.review.Caption = caption
	return b
}

// WithKeywords sets the keywords. They are only kept for the "other" category.
func (b *ReviewBuilder) WithKeywords(keywords ...string) *ReviewBuilder {
	b.review.Keywords = keywords
	return b
}

func (b *ReviewBuilder) WithCreatedAt(at time.Time) *ReviewBuilder {
	b.review.CreatedAt = at
	b.review.UpdatedAt = at
	return b
}

func (b *ReviewBuilder) Build() models.Review {
	return b.review
}

func (b *ReviewBuilder) BuildPtr() *models.Review {
	r := b.review
	return &r
}
