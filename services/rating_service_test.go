package services

import (
	"testing"

	"pixelforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newRatingServiceWithMocks() (RatingService, *MockRatingRepository, *MockPostRepository) {
	ratingRepo := new(MockRatingRepository)
	postRepo := new(MockPostRepository)
	return NewRatingService(ratingRepo, postRepo), ratingRepo, postRepo
}

func TestUpsertRating(t *testing.T) {
	post := &models.Post{ID: 7, Slug: "go-services"}

	t.Run("New rating recomputes the aggregate", func(t *testing.T) {
		svc, ratingRepo, postRepo := newRatingServiceWithMocks()

		postRepo.On("GetPostBySlug", "go-services").Return(post, nil)
		ratingRepo.On("UpsertRating", uint(7), "user-a", 4).
			Return(&models.Rating{PostID: 7, UserID: "user-a", Value: 4}, nil)
		ratingRepo.On("GetAggregate", uint(7)).Return(4.25, 4, nil)
		ratingRepo.On("WriteAggregate", uint(7), 4.3, 4).Return(nil)

		rating, err := svc.Upsert("go-services", "user-a", 4)

		assert.NoError(t, err)
		assert.Equal(t, 4, rating.Value)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Second rating from the same user overwrites", func(t *testing.T) {
		svc, ratingRepo, postRepo := newRatingServiceWithMocks()

		postRepo.On("GetPostBySlug", "go-services").Return(post, nil)
		ratingRepo.On("UpsertRating", uint(7), "user-a", 2).
			Return(&models.Rating{PostID: 7, UserID: "user-a", Value: 2}, nil)
		// One row only, so the aggregate follows the overwrite.
		ratingRepo.On("GetAggregate", uint(7)).Return(2.0, 1, nil)
		ratingRepo.On("WriteAggregate", uint(7), 2.0, 1).Return(nil)

		rating, err := svc.Upsert("go-services", "user-a", 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, rating.Value)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Out-of-range values are rejected", func(t *testing.T) {
		svc, ratingRepo, _ := newRatingServiceWithMocks()

		for _, value := range []int{0, 6, -1} {
			_, err := svc.Upsert("go-services", "user-a", value)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
		ratingRepo.AssertNotCalled(t, "UpsertRating", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing user ID is rejected", func(t *testing.T) {
		svc, _, _ := newRatingServiceWithMocks()

		_, err := svc.Upsert("go-services", "", 3)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestListRatingsForPost(t *testing.T) {
	svc, ratingRepo, postRepo := newRatingServiceWithMocks()

	postRepo.On("GetPostBySlug", "go-services").Return(&models.Post{ID: 7}, nil)
	ratingRepo.On("ListRatingsByPost", uint(7)).
		Return([]models.Rating{{UserID: "a", Value: 5}, {UserID: "b", Value: 4}, {UserID: "c", Value: 4}}, nil)
	ratingRepo.On("GetAggregate", uint(7)).Return(4.333333333, 3, nil)

	summary, err := svc.ListForPost("go-services")

	assert.NoError(t, err)
	assert.Len(t, summary.Ratings, 3)
	assert.Equal(t, 3, summary.TotalRatings)
	assert.Equal(t, 4.3, summary.AverageRating)
}

func TestDeleteRating(t *testing.T) {
	post := &models.Post{ID: 7, Slug: "go-services"}

	t.Run("Aggregate shrinks with the deleted row", func(t *testing.T) {
		svc, ratingRepo, postRepo := newRatingServiceWithMocks()

		postRepo.On("GetPostBySlug", "go-services").Return(post, nil)
		ratingRepo.On("DeleteRating", uint(7), "user-a").Return(nil)
		ratingRepo.On("GetAggregate", uint(7)).Return(4.5, 2, nil)
		ratingRepo.On("WriteAggregate", uint(7), 4.5, 2).Return(nil)

		assert.NoError(t, svc.Delete("go-services", "user-a"))
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Deleting the last rating zeroes the aggregate", func(t *testing.T) {
		svc, ratingRepo, postRepo := newRatingServiceWithMocks()

		postRepo.On("GetPostBySlug", "go-services").Return(post, nil)
		ratingRepo.On("DeleteRating", uint(7), "user-a").Return(nil)
		ratingRepo.On("GetAggregate", uint(7)).Return(0.0, 0, nil)
		ratingRepo.On("WriteAggregate", uint(7), 0.0, 0).Return(nil)

		assert.NoError(t, svc.Delete("go-services", "user-a"))
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Missing rating maps to not found", func(t *testing.T) {
		svc, ratingRepo, postRepo := newRatingServiceWithMocks()

		postRepo.On("GetPostBySlug", "go-services").Return(post, nil)
		ratingRepo.On("DeleteRating", uint(7), "user-a").Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete("go-services", "user-a"), ErrRatingNotFound)
		ratingRepo.AssertNotCalled(t, "WriteAggregate", mock.Anything, mock.Anything, mock.Anything)
	})
}
