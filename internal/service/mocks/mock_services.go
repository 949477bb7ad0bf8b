// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"rateit/internal/models"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	AuthenticateFunc func(ctx context.Context, req *models.AuthRequest) (*models.AuthResult, error)
	ListUsersFunc    func(ctx context.Context) ([]models.PublicUser, error)
}

func (m *MockAuthService) Authenticate(ctx context.Context, req *models.AuthRequest) (*models.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

// MockReviewService is a mock implementation of ReviewServicer.
type MockReviewService struct {
	SubmitFunc func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error)
	ListFunc   func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
}

func (m *MockReviewService) Submit(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockReviewService) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// MockSavedService is a mock implementation of SavedServicer.
type MockSavedService struct {
	ToggleFunc func(ctx context.Context, req *models.ToggleSavedRequest) ([]string, error)
	QueryFunc  func(ctx context.Context, userID string) ([]string, error)
}

func (m *MockSavedService) Toggle(ctx context.Context, req *models.ToggleSavedRequest) ([]string, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockSavedService) Query(ctx context.Context, userID string) ([]string, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, userID)
	}
	return nil, nil
}
