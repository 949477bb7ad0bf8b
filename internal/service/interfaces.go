// Package service contains business logic for the application.
package service

import (
	"context"

	"rateit/internal/models"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Authenticate(ctx context.Context, req *models.AuthRequest) (*models.AuthResult, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
}

// ReviewServicer defines the interface for review operations.
type ReviewServicer interface {
	Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error)
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
}

// SavedServicer defines the interface for saved-list operations.
type SavedServicer interface {
	Toggle(ctx context.Context, req *models.ToggleSavedRequest) ([]string, error)
	Query(ctx context.Context, userID string) ([]string, error)
}

// Ensure concrete types implement interfaces
var (
	_ AuthServicer   = (*AuthService)(nil)
	_ ReviewServicer = (*ReviewService)(nil)
	_ SavedServicer  = (*SavedService)(nil)
)
