// Package models defines data structures for the application.
package models

import "time"

// User represents a stored account. Password is persisted with the record.
type User struct {
	ID        string    `json:"id" bson:"_id" example:"1737367200000"`
	Name      string    `json:"name" bson:"name" example:"Demo User"`
	NameKey   string    `json:"-" bson:"nameKey"` // lower-cased name, used by the Mongo backend for lookups
	Password  string    `json:"password" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" example:"2025-01-20T10:00:00Z"`
	LastLogin time.Time `json:"lastLogin" bson:"lastLogin" example:"2025-01-20T10:00:00Z"`
}

// PublicUser is a User without its password.
type PublicUser struct {
	ID        string    `json:"id" example:"1737367200000"`
	Name      string    `json:"name" example:"Demo User"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-20T10:00:00Z"`
	LastLogin time.Time `json:"lastLogin" example:"2025-01-20T10:00:00Z"`
}

// Public strips the password.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// UserDocument is the on-disk layout of the users store.
type UserDocument struct {
	Users []User `json:"users"`
}

// ActionAuthenticate is the only action the auth endpoint accepts.
const ActionAuthenticate = "authenticate"

// AuthRequest is the payload for the auth endpoint.
type AuthRequest struct {
	Action   string `json:"action" example:"authenticate"`
	Name     string `json:"name" binding:"required,notblank" example:"Demo User"`
	Password string `json:"password" binding:"required" example:"demo123"`
}

// AuthResult is returned by a successful authenticate call.
type AuthResult struct {
	User      PublicUser `json:"user"`
	IsNewUser bool       `json:"isNewUser" example:"false"`
	Token     string     `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// AuthResponse is the body of a successful authenticate call.
type AuthResponse struct {
	Success bool `json:"success" example:"true"`
	AuthResult
}

// UserListResponse is the body of the user listing.
type UserListResponse struct {
	Success    bool         `json:"success" example:"true"`
	Users      []PublicUser `json:"users"`
	TotalUsers int          `json:"totalUsers" example:"1"`
}
