package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"rateit/internal/models"
	"rateit/internal/store"
	storemocks "rateit/internal/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReview(id string) *models.Review {
	now := time.Now().UTC()
	return &models.Review{
		ID:       id,
		UserID:   "1",
		ItemType: "other",
		Rating:   4,
		Caption:  "nice",
		Media: []models.Media{
			{Type: models.MediaImage, Filename: "image1.jpg", Path: "assets/reviews/" + id + "/image1.jpg", UploadedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestReviewFileRepository_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("missing store is empty", func(t *testing.T) {
		repo := NewReviewFileRepository(store.NewMemoryBackend())

		reviews, err := repo.FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, reviews)
		assert.Empty(t, reviews)
	})

	t.Run("corrupt store is empty", func(t *testing.T) {
		backend := store.NewMemoryBackend()
		backend.SetRaw("reviews", []byte(""))
		repo := NewReviewFileRepository(backend)

		reviews, err := repo.FindAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("propagates backend I/O errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		backend := storemocks.NewMockBackend(ctrl)
		backend.EXPECT().Load(gomock.Any(), "reviews", gomock.Any()).Return(errors.New("permission denied"))

		repo := NewReviewFileRepository(backend)
		reviews, err := repo.FindAll(ctx)

		assert.Nil(t, reviews)
		assert.ErrorContains(t, err, "permission denied")
	})
}

func TestReviewFileRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("appends in order", func(t *testing.T) {
		backend, err := store.NewFileBackend(filepath.Join(t.TempDir(), "Db"))
		require.NoError(t, err)
		repo := NewReviewFileRepository(backend)

		require.NoError(t, repo.Create(ctx, newTestReview("r1")))
		require.NoError(t, repo.Create(ctx, newTestReview("r2")))

		reviews, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, "r1", reviews[0].ID)
		assert.Equal(t, "r2", reviews[1].ID)
		assert.Len(t, reviews[0].Media, 1)
	})

	t.Run("overwrites a corrupt store on next write", func(t *testing.T) {
		backend := store.NewMemoryBackend()
		backend.SetRaw("reviews", []byte("{\"reviews\": [oops"))
		repo := NewReviewFileRepository(backend)

		require.NoError(t, repo.Create(ctx, newTestReview("r1")))

		reviews, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, reviews, 1)
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		backend := storemocks.NewMockBackend(ctrl)
		backend.EXPECT().Load(gomock.Any(), "reviews", gomock.Any()).Return(store.ErrNotFound)
		backend.EXPECT().Save(gomock.Any(), "reviews", gomock.Any()).Return(errors.New("disk full"))

		repo := NewReviewFileRepository(backend)
		err := repo.Create(ctx, newTestReview("r1"))

		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("concurrent creates do not lose updates", func(t *testing.T) {
		backend, err := store.NewFileBackend(t.TempDir())
		require.NoError(t, err)
		repo := NewReviewFileRepository(backend)

		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, repo.Create(ctx, newTestReview(fmt.Sprintf("r%d", i))))
			}(i)
		}
		wg.Wait()

		reviews, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, reviews, 25)
	})
}
