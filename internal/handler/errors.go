// Package handler contains HTTP handlers for the API.
package handler

import (
	"errors"
	"log/slog"

	apperrors "rateit/internal/errors"
	"rateit/internal/middleware"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		response.InternalError(c)
	}
}

// authorizeUser checks the bearer token subject against the user ID a request
// acts on. Without enforcement the client-supplied ID is trusted.
func authorizeUser(c *gin.Context, enforce bool, userID string) error {
	if !enforce {
		return nil
	}
	subject := middleware.GetUserID(c)
	if subject == "" {
		return apperrors.ErrUnauthorized
	}
	if userID != "" && subject != userID {
		return apperrors.ErrForbidden
	}
	return nil
}
