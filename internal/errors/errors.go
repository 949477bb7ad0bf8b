// Package errors provides custom error types for the application.
package errors

import "errors"

// Validation errors
var (
	ErrInvalidAction           = errors.New("invalid action")
	ErrNameAndPasswordRequired = errors.New("name and password are required")
	ErrNoMediaUploaded         = errors.New("no media uploaded")
	ErrInvalidRating           = errors.New("rating must be a number")
	ErrUserAndReviewRequired   = errors.New("user ID and review ID are required")
	ErrUserIDRequired          = errors.New("user ID is required")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this name already exists")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("you can only act on your own account")
)

// Storage errors
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// IsValidation reports whether err is one of the request validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrNameAndPasswordRequired) ||
		errors.Is(err, ErrNoMediaUploaded) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrUserAndReviewRequired) ||
		errors.Is(err, ErrUserIDRequired)
}
