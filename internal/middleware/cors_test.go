package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// corsRouter mounts stand-ins for the API routes behind CORS and counts handler hits.
func corsRouter(hits *int) *gin.Engine {
	router := gin.New()
	router.Use(CORS())

	count := func(status int) gin.HandlerFunc {
		return func(c *gin.Context) {
			*hits++
			c.JSON(status, gin.H{"success": status == http.StatusOK})
		}
	}
	api := router.Group("/api")
	api.GET("/auth", count(http.StatusOK))
	api.POST("/auth", count(http.StatusUnauthorized))
	api.GET("/reviews", count(http.StatusOK))
	api.POST("/reviews", count(http.StatusOK))
	api.GET("/saved", count(http.StatusOK))
	api.POST("/saved", count(http.StatusOK))
	router.GET("/assets/*path", func(c *gin.Context) {
		*hits++
		c.Redirect(http.StatusFound, "http://media.example/"+c.Param("path"))
	})
	return router
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		header         http.Header
		body           []byte
		expectedStatus int
		expectedHits   int
	}{
		{
			name:           "review listing",
			method:         http.MethodGet,
			path:           "/api/reviews?category=coffee_shops",
			expectedStatus: http.StatusOK,
			expectedHits:   1,
		},
		{
			name:           "saved toggle with bearer token",
			method:         http.MethodPost,
			path:           "/api/saved",
			header:         http.Header{"Authorization": {"Bearer tok"}, "Content-Type": {"application/json"}},
			body:           []byte(`{"userId":"1","reviewId":"r1"}`),
			expectedStatus: http.StatusOK,
			expectedHits:   1,
		},
		{
			name:           "error responses still carry the headers",
			method:         http.MethodPost,
			path:           "/api/auth",
			header:         http.Header{"Content-Type": {"application/json"}},
			body:           []byte(`{"action":"authenticate","name":"x","password":"y"}`),
			expectedStatus: http.StatusUnauthorized,
			expectedHits:   1,
		},
		{
			name:           "media redirect",
			method:         http.MethodGet,
			path:           "/assets/reviews/r1/image1.jpg",
			expectedStatus: http.StatusFound,
			expectedHits:   1,
		},
		{
			name:   "multipart submit preflight",
			method: http.MethodOptions,
			path:   "/api/reviews",
			header: http.Header{
				"Origin":                         {"http://localhost:19006"},
				"Access-Control-Request-Method":  {"POST"},
				"Access-Control-Request-Headers": {"authorization"},
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "preflight on an unrouted path",
			method:         http.MethodOptions,
			path:           "/api/unknown",
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := 0
			router := corsRouter(&hits)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header[k] = v
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedHits, hits)

			h := w.Header()
			assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Origin, Content-Type, Authorization", h.Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))
		})
	}
}
