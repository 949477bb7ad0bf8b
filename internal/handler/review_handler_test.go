package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "rateit/internal/errors"
	"rateit/internal/middleware"
	"rateit/internal/models"
	"rateit/internal/service/mocks"
	"rateit/pkg/auth"
	"rateit/test/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewRouter(svc *mocks.MockReviewService, maxUpload int64, authRequired bool, tokens auth.TokenManager) *gin.Engine {
	router := testutil.SetupRouter()
	h := NewReviewHandler(svc, maxUpload, authRequired)
	api := router.Group("/api")
	if tokens != nil {
		api.Use(middleware.OptionalAuth(tokens))
	}
	api.POST("/reviews", h.Submit)
	api.GET("/reviews", h.List)
	return router
}

func TestReviewHandler_Submit(t *testing.T) {
	image := testutil.MultipartFile{Field: "media", Filename: "latte.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")}

	t.Run("passes form fields and files to the service", func(t *testing.T) {
		var got *models.SubmitReviewRequest
		var firstFile []byte
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				got = req
				rc, err := req.Media[0].Open()
				require.NoError(t, err)
				defer rc.Close()
				firstFile, _ = io.ReadAll(rc)
				return &models.Review{ID: "r1", UserID: req.UserID, ItemType: req.Category, Rating: 4, CreatedAt: testTime, UpdatedAt: testTime}, nil
			},
		}
		router := setupReviewRouter(svc, 1<<20, false, nil)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", map[string][]string{
			"caption":  {"Great flat white"},
			"rating":   {"4"},
			"category": {"coffee_shops"},
			"userId":   {"1737367200000"},
			"itemId":   {"42"},
			"keywords": {"cozy", "quiet"},
		}, []testutil.MultipartFile{
			image,
			{Field: "media", Filename: "empty.png", ContentType: "image/png"},
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, got)
		assert.Equal(t, "Great flat white", got.Caption)
		assert.Equal(t, "4", got.Rating)
		assert.Equal(t, "coffee_shops", got.Category)
		assert.Equal(t, "1737367200000", got.UserID)
		assert.Equal(t, "42", got.ItemID)
		assert.Equal(t, []string{"cozy", "quiet"}, got.Keywords)
		require.Len(t, got.Media, 2)
		assert.Equal(t, "latte.jpg", got.Media[0].Filename)
		assert.Equal(t, "image/jpeg", got.Media[0].ContentType)
		assert.Equal(t, int64(8), got.Media[0].Size)
		assert.Equal(t, int64(0), got.Media[1].Size)
		assert.Equal(t, []byte("jpegdata"), firstFile)

		var resp models.ReviewResponse
		testutil.ParseResponse(t, w, &resp)
		assert.True(t, resp.Success)
		assert.Equal(t, "r1", resp.Review.ID)
	})

	t.Run("missing fields are left empty", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				assert.Empty(t, req.Caption)
				assert.Empty(t, req.Rating)
				assert.Empty(t, req.Category)
				assert.Empty(t, req.UserID)
				assert.Nil(t, req.Keywords)
				return &models.Review{ID: "r1"}, nil
			},
		}
		router := setupReviewRouter(svc, 0, false, nil)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", nil, []testutil.MultipartFile{image})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token subject overrides userId", func(t *testing.T) {
		tokens := auth.NewJWTManager("testsecret", time.Hour)
		token, err := tokens.GenerateToken("1737367200000")
		require.NoError(t, err)

		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				assert.Equal(t, "1737367200000", req.UserID)
				return &models.Review{ID: "r1"}, nil
			},
		}
		router := setupReviewRouter(svc, 0, false, tokens)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", token,
			map[string][]string{"userId": {"1"}}, []testutil.MultipartFile{image})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("auth required rejects anonymous submit", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := setupReviewRouter(svc, 0, true, auth.NewJWTManager("testsecret", time.Hour))

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", nil, []testutil.MultipartFile{image})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no media maps to 400", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				assert.Empty(t, req.Media)
				return nil, apperrors.ErrNoMediaUploaded
			},
		}
		router := setupReviewRouter(svc, 0, false, nil)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", map[string][]string{"caption": {"x"}}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]interface{}
		testutil.ParseResponse(t, w, &resp)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "no media uploaded", resp["error"])
	})

	t.Run("invalid rating maps to 400", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				return nil, apperrors.ErrInvalidRating
			},
		}
		router := setupReviewRouter(svc, 0, false, nil)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", map[string][]string{"rating": {"five"}}, []testutil.MultipartFile{image})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		router := setupReviewRouter(&mocks.MockReviewService{}, 0, false, nil)

		w := testutil.MakeRequest(t, router, http.MethodPost, "/api/reviews", map[string]string{"caption": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upload over the limit", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		router := setupReviewRouter(svc, 1024, false, nil)

		big := testutil.MultipartFile{Field: "media", Filename: "big.jpg", ContentType: "image/jpeg", Data: make([]byte, 4096)}
		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", nil, []testutil.MultipartFile{big})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service failure is a generic 500", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			SubmitFunc: func(ctx context.Context, req *models.SubmitReviewRequest) (*models.Review, error) {
				return nil, errors.New("store media: disk full")
			},
		}
		router := setupReviewRouter(svc, 0, false, nil)

		w := testutil.MakeMultipartRequest(t, router, "/api/reviews", "", nil, []testutil.MultipartFile{image})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestReviewHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*mocks.MockReviewService)
		expectedStatus int
	}{
		{
			name:  "no filter",
			query: "",
			mockSetup: func(m *mocks.MockReviewService) {
				m.ListFunc = func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
					assert.True(t, filter.IsZero())
					return []models.Review{{ID: "r1"}, {ID: "r2"}}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "filters are bound",
			query: "?category=coffee_shops&userId=1&q=latte&minRating=3",
			mockSetup: func(m *mocks.MockReviewService) {
				m.ListFunc = func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
					assert.Equal(t, models.ReviewFilter{Category: "coffee_shops", UserID: "1", Query: "latte", MinRating: models.AtLeast(3)}, filter)
					return []models.Review{}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "minRating is unset when absent",
			query: "?category=coffee_shops",
			mockSetup: func(m *mocks.MockReviewService) {
				m.ListFunc = func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
					assert.Nil(t, filter.MinRating)
					return []models.Review{}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "out of range minRating",
			query:          "?minRating=9",
			mockSetup:      func(m *mocks.MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric minRating",
			query:          "?minRating=high",
			mockSetup:      func(m *mocks.MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "service failure",
			query: "",
			mockSetup: func(m *mocks.MockReviewService) {
				m.ListFunc = func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
					return nil, errors.New("boom")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockReviewService{}
			tt.mockSetup(svc)
			router := setupReviewRouter(svc, 0, false, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reviews"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("response shape", func(t *testing.T) {
		svc := &mocks.MockReviewService{
			ListFunc: func(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
				return []models.Review{}, nil
			},
		}
		router := setupReviewRouter(svc, 0, false, nil)

		w := testutil.MakeRequest(t, router, http.MethodGet, "/api/reviews", nil)

		assert.JSONEq(t, `{"success":true,"reviews":[]}`, w.Body.String())
	})
}
