// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"net/http"
	"strings"

	"rateit/pkg/auth"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys for storing user data
const (
	UserIDKey = "userID"
)

// Auth returns a middleware that requires a valid JWT token.
func Auth(tokens auth.TokenManager) gin.HandlerFunc {
	return authenticate(tokens, true)
}

// OptionalAuth validates a bearer token when one is sent and lets anonymous
// requests through. A malformed or invalid token is still rejected.
func OptionalAuth(tokens auth.TokenManager) gin.HandlerFunc {
	return authenticate(tokens, false)
}

func authenticate(tokens auth.TokenManager, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				response.AbortWithError(c, http.StatusUnauthorized, "missing authorization header")
				return
			}
			c.Next()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		// Store user ID in context for handlers to use
		c.Set(UserIDKey, claims.UserID)

		c.Next()
	}
}

// GetUserID retrieves the user ID from the context.
// Returns empty string if not found.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}
