package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "rateit/internal/errors"
	"rateit/internal/middleware"
	"rateit/internal/models"
	"rateit/internal/service"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles HTTP requests for review operations.
type ReviewHandler struct {
	service        service.ReviewServicer
	maxUploadBytes int64
	authRequired   bool
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service service.ReviewServicer, maxUploadBytes int64, authRequired bool) *ReviewHandler {
	return &ReviewHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		authRequired:   authRequired,
	}
}

// Submit godoc
// @Summary      Submit a review
// @Description  Creates a review with one or more media files. Empty file parts are ignored.
// @Tags         reviews
// @Accept       multipart/form-data
// @Produce      json
// @Param        media     formData  file    true   "Image or video (repeatable)"
// @Param        caption   formData  string  false  "Caption"
// @Param        rating    formData  string  false  "Rating (integer, defaults to 0)"
// @Param        category  formData  string  false  "Category (defaults to other)"
// @Param        keywords  formData  string  false  "Keyword (repeatable, kept for the other category)"
// @Param        userId    formData  string  false  "Author; replaced by the token subject when authenticated"
// @Param        itemId    formData  string  false  "Reviewed item"
// @Success      200       {object}  models.ReviewResponse
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /api/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(c, fmt.Sprintf("upload exceeds %d MB", h.maxUploadBytes>>20))
			return
		}
		response.BadRequest(c, "invalid multipart form")
		return
	}
	defer func() { _ = form.RemoveAll() }()

	req := &models.SubmitReviewRequest{
		UserID:   formValue(form.Value, "userId"),
		ItemID:   formValue(form.Value, "itemId"),
		Category: formValue(form.Value, "category"),
		Rating:   formValue(form.Value, "rating"),
		Caption:  formValue(form.Value, "caption"),
		Keywords: form.Value["keywords"],
	}

	if subject := middleware.GetUserID(c); subject != "" {
		req.UserID = subject
	} else if h.authRequired {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	for _, fh := range form.File["media"] {
		req.Media = append(req.Media, models.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	review, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.ReviewResponse{Success: true, Review: *review})
}

// List godoc
// @Summary      List reviews
// @Description  Returns every review in submission order. Optional filters narrow the list.
// @Tags         reviews
// @Produce      json
// @Param        category   query     string  false  "Category, case-insensitive"
// @Param        userId     query     string  false  "Author"
// @Param        q          query     string  false  "Text matched against caption and keywords"
// @Param        minRating  query     int     false  "Minimum rating"
// @Success      200        {object}  models.ReviewListResponse
// @Failure      400        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var filter models.ReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid filter")
		return
	}

	reviews, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, models.ReviewListResponse{Success: true, Reviews: reviews})
}

// formValue returns the first value of a multipart field, or "".
func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
