package services

import (
	"errors"
	"log"

	"pixelforge/models"
	"pixelforge/repository"

	"gorm.io/gorm"
)

// ErrRatingNotFound is returned when deleting a rating that does not exist.
var ErrRatingNotFound = errors.New("rating not found")

// RatingService owns the one-rating-per-user rule and keeps the post-level
// aggregate consistent with the rating rows.
type RatingService interface {
	Upsert(postSlug, userID string, value int) (*models.Rating, error)
	ListForPost(postSlug string) (*models.RatingSummary, error)
	Delete(postSlug, userID string) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	postRepo   repository.PostRepository
}

// NewRatingService creates a new instance of RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, postRepo repository.PostRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		postRepo:   postRepo,
	}
}

// Upsert stores a user's rating for a post, overwriting any previous value,
// then recomputes the post's aggregate.
func (s *ratingService) Upsert(postSlug, userID string, value int) (*models.Rating, error) {
	if userID == "" {
		return nil, invalidf("user ID is required")
	}
	if value < 1 || value > 5 {
		return nil, invalidf("rating must be between 1 and 5, got %d", value)
	}

	post, err := s.postRepo.GetPostBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	rating, err := s.ratingRepo.UpsertRating(post.ID, userID, value)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeAggregate(post.ID); err != nil {
		return nil, err
	}
	return rating, nil
}

// ListForPost returns all ratings for a post with the rounded aggregate.
func (s *ratingService) ListForPost(postSlug string) (*models.RatingSummary, error) {
	post, err := s.postRepo.GetPostBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	ratings, err := s.ratingRepo.ListRatingsByPost(post.ID)
	if err != nil {
		return nil, err
	}
	average, count, err := s.ratingRepo.GetAggregate(post.ID)
	if err != nil {
		return nil, err
	}
	return &models.RatingSummary{
		Ratings:       ratings,
		TotalRatings:  count,
		AverageRating: roundRating(average),
	}, nil
}

// Delete removes a user's rating and recomputes the post's aggregate, so
// the stored average never reflects rows that no longer exist.
func (s *ratingService) Delete(postSlug, userID string) error {
	post, err := s.postRepo.GetPostBySlug(postSlug)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.ratingRepo.DeleteRating(post.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	return s.recomputeAggregate(post.ID)
}

func (s *ratingService) recomputeAggregate(postID uint) error {
	average, count, err := s.ratingRepo.GetAggregate(postID)
	if err != nil {
		return err
	}
	if err := s.ratingRepo.WriteAggregate(postID, roundRating(average), count); err != nil {
		return err
	}
	log.Printf("INFO: [RatingService] Post ID %d aggregate recomputed: %.1f over %d ratings.", postID, roundRating(average), count)
	return nil
}
