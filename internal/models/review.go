package models

import (
	"io"
	"time"
)

// MediaType is the kind of an uploaded media file.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// DefaultCategory is used when a review is submitted without a category.
const DefaultCategory = "other"

// Media is one uploaded file attached to a review.
type Media struct {
	Type       MediaType `json:"type" bson:"type" example:"image"`
	Filename   string    `json:"filename" bson:"filename" example:"image1.jpg"`
	Path       string    `json:"path" bson:"path" example:"assets/reviews/0b6f.../image1.jpg"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt" example:"2025-01-20T10:00:00Z"`
}

// Review is a rating with caption and media tied to a category.
type Review struct {
	ID        string    `json:"id" bson:"_id" example:"0b6f3a52-6c0e-4a8b-9d0e-3f3c2b1a0e11"`
	UserID    string    `json:"userId" bson:"userId" example:"1"`
	ItemID    string    `json:"itemId,omitempty" bson:"itemId,omitempty" example:"1"`
	ItemType  string    `json:"itemType" bson:"itemType" example:"coffee_shops"`
	Rating    int       `json:"rating" bson:"rating" example:"4"`
	Caption   string    `json:"caption" bson:"caption" example:"Great flat white"`
	Keywords  []string  `json:"keywords,omitempty" bson:"keywords,omitempty" example:"cozy,quiet"`
	Media     []Media   `json:"media" bson:"media"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" example:"2025-01-20T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" example:"2025-01-20T10:00:00Z"`
}

// ReviewDocument is the on-disk layout of the reviews store.
type ReviewDocument struct {
	Reviews []Review `json:"reviews"`
}

// Upload is one media file received with a review submission.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmitReviewRequest carries the parsed multipart fields of a review submission.
type SubmitReviewRequest struct {
	UserID   string
	ItemID   string
	Category string
	Rating   string
	Caption  string
	Keywords []string
	Media    []Upload
}

// ReviewFilter narrows a review listing. The zero value matches everything.
// MinRating is nil when no minimum was asked for, so unrated or negative
// reviews still show up under the other filters.
type ReviewFilter struct {
	Category  string `form:"category"`
	UserID    string `form:"userId"`
	Query     string `form:"q"`
	MinRating *int   `form:"minRating" binding:"omitempty,gte=0,lte=5"`
}

// AtLeast returns a filter minimum for n.
func AtLeast(n int) *int {
	return &n
}

// IsZero reports whether the filter matches every review.
func (f ReviewFilter) IsZero() bool {
	return f == ReviewFilter{}
}

// ReviewResponse is the body of a successful submission.
type ReviewResponse struct {
	Success bool   `json:"success" example:"true"`
	Review  Review `json:"review"`
}

// ReviewListResponse is the body of the review listing.
type ReviewListResponse struct {
	Success bool     `json:"success" example:"true"`
	Reviews []Review `json:"reviews"`
}
