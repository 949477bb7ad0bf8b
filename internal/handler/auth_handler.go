package handler

import (
	"errors"

	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/service"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	service service.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service service.AuthServicer) *AuthHandler {
	return &AuthHandler{service: service}
}

// Authenticate godoc
// @Summary      Log in or sign up
// @Description  Logs in by name and password. A name that has never been seen creates a new account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.AuthRequest  true  "Credentials"
// @Success      200      {object}  models.AuthResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/auth [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req models.AuthRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.BadRequest(c, apperrors.ErrNameAndPasswordRequired.Error())
			return
		}
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.AuthResponse{Success: true, AuthResult: *result})
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns every account without passwords
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.UserListResponse
// @Failure      500  {object}  response.Response
// @Router       /api/auth [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.UserListResponse{
		Success:    true,
		Users:      users,
		TotalUsers: len(users),
	})
}
