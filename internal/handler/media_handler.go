package handler

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/storage"
	"rateit/pkg/response"

	"github.com/gin-gonic/gin"
)

// PresignExpiry is how long a redirect to object storage stays valid.
const PresignExpiry = 15 * time.Minute

// MediaHandler serves uploaded review media.
type MediaHandler struct {
	storage storage.Storage
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(s storage.Storage) *MediaHandler {
	return &MediaHandler{storage: s}
}

// Serve godoc
// @Summary      Fetch a media file
// @Description  Streams a stored file, or redirects to a presigned URL when media lives in object storage
// @Tags         media
// @Produce      octet-stream
// @Param        path  path  string  true  "Path under /assets"
// @Success      200
// @Success      302
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /assets/{path} [get]
func (h *MediaHandler) Serve(c *gin.Context) {
	key := "assets" + c.Param("path")
	ctx := c.Request.Context()

	if p, ok := h.storage.(storage.Presigner); ok {
		url, err := p.GetPresignedURL(ctx, key, PresignExpiry)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		c.Redirect(http.StatusFound, url)
		return
	}

	rc, err := h.storage.GetObject(ctx, key)
	if err != nil {
		respondMediaError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

func respondMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrObjectNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrInvalidKey):
		response.BadRequest(c, err.Error())
	default:
		respondError(c, err)
	}
}
