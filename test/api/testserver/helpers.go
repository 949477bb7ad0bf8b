//go:build api

package testserver

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"testing"

	"rateit/internal/models"
	"rateit/test/testutil"

	"github.com/stretchr/testify/require"
)

// AuthHelper provides authentication helpers for API tests.
type AuthHelper struct {
	server *TestServer
}

// NewAuthHelper creates a new auth helper.
func NewAuthHelper(server *TestServer) *AuthHelper {
	return &AuthHelper{server: server}
}

// Authenticate posts credentials to /api/auth and returns the decoded body.
func (ah *AuthHelper) Authenticate(t *testing.T, name, password string) models.AuthResponse {
	t.Helper()

	req := models.AuthRequest{Action: "authenticate", Name: name, Password: password}
	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/auth", req)
	require.Equal(t, http.StatusOK, w.Code, "authenticate should return 200, got: %s", w.Body.String())

	var resp models.AuthResponse
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "authenticate response should be successful")
	require.NotEmpty(t, resp.Token)
	return resp
}

// CreateAuthenticatedUser registers name through the API and returns the user and token.
func (ah *AuthHelper) CreateAuthenticatedUser(t *testing.T, name, password string) (models.PublicUser, string) {
	t.Helper()

	resp := ah.Authenticate(t, name, password)
	require.True(t, resp.IsNewUser, "%q should be a new account", name)
	return resp.User, resp.Token
}

// SeedUser directly inserts a user into the database (bypasses API).
func (ah *AuthHelper) SeedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	err := ah.server.UserRepo.Create(context.Background(), user)
	require.NoError(t, err, "failed to seed user")
	return user
}

// ReviewHelper provides review helpers for API tests.
type ReviewHelper struct {
	server *TestServer
}

// NewReviewHelper creates a new review helper.
func NewReviewHelper(server *TestServer) *ReviewHelper {
	return &ReviewHelper{server: server}
}

// Submit posts a review with one PNG image and returns the stored review.
func (rh *ReviewHelper) Submit(t *testing.T, token string, fields map[string][]string) models.Review {
	t.Helper()

	files := []testutil.MultipartFile{{
		Field:       "media",
		Filename:    "photo.png",
		ContentType: "image/png",
		Data:        PNG(t, 640, 480),
	}}
	w := testutil.MakeMultipartRequest(t, rh.server.Router, "/api/reviews", token, fields, files)
	require.Equal(t, http.StatusOK, w.Code, "submit should return 200, got: %s", w.Body.String())

	var resp models.ReviewResponse
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success)
	return resp.Review
}

// SeedReview directly inserts a review into the database (bypasses API and storage).
func (rh *ReviewHelper) SeedReview(t *testing.T, review *models.Review) *models.Review {
	t.Helper()

	err := rh.server.ReviewRepo.Create(context.Background(), review)
	require.NoError(t, err, "failed to seed review")
	return review
}

// List fetches /api/reviews with a raw query string.
func (rh *ReviewHelper) List(t *testing.T, query string) []models.Review {
	t.Helper()

	path := "/api/reviews"
	if query != "" {
		path += "?" + query
	}
	w := testutil.MakeRequest(t, rh.server.Router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, "list should return 200, got: %s", w.Body.String())

	var resp models.ReviewListResponse
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success)
	return resp.Reviews
}

// PNG encodes a solid-colour image of the given size.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
