package models

// SavedDocument is the on-disk layout of the saved-list store: user ID to review IDs.
type SavedDocument map[string][]string

// SavedList is a user's saved review IDs, as stored by the Mongo backend.
type SavedList struct {
	UserID    string   `bson:"_id"`
	ReviewIDs []string `bson:"reviewIds"`
}

// ToggleSavedRequest is the payload for saving or unsaving a review.
type ToggleSavedRequest struct {
	UserID   string `json:"userId" example:"1"`
	ReviewID string `json:"reviewId" example:"0b6f3a52-6c0e-4a8b-9d0e-3f3c2b1a0e11"`
}

// SavedResponse is the body of both saved-list endpoints.
type SavedResponse struct {
	Success bool     `json:"success" example:"true"`
	Saved   []string `json:"saved" example:"0b6f3a52-6c0e-4a8b-9d0e-3f3c2b1a0e11"`
}
