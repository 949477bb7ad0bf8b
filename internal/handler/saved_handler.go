package handler

import (
	apperrors "rateit/internal/errors"
	"rateit/internal/models"
	"rateit/internal/service"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
)

// SavedHandler handles HTTP requests for saved-list operations.
type SavedHandler struct {
	service      service.SavedServicer
	authRequired bool
}

// NewSavedHandler creates a new SavedHandler.
func NewSavedHandler(service service.SavedServicer, authRequired bool) *SavedHandler {
	return &SavedHandler{service: service, authRequired: authRequired}
}

// Toggle godoc
// @Summary      Save or unsave a review
// @Description  Adds the review to the user's saved list, or removes it if already saved
// @Tags         saved
// @Accept       json
// @Produce      json
// @Param        request  body      models.ToggleSavedRequest  true  "User and review"
// @Success      200      {object}  models.SavedResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Security     BearerAuth
// @Router       /api/saved [post]
func (h *SavedHandler) Toggle(c *gin.Context) {
	var req models.ToggleSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, apperrors.ErrUserAndReviewRequired.Error())
		return
	}

	if err := authorizeUser(c, h.authRequired, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.service.Toggle(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.SavedResponse{Success: true, Saved: saved})
}

// Query godoc
// @Summary      Get a user's saved reviews
// @Tags         saved
// @Produce      json
// @Param        userId  query     string  true  "User ID"
// @Success      200     {object}  models.SavedResponse
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /api/saved [get]
func (h *SavedHandler) Query(c *gin.Context) {
	userID := c.Query("userId")

	if err := authorizeUser(c, h.authRequired, userID); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.service.Query(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.SavedResponse{Success: true, Saved: saved})
}
