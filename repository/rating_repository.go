package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository defines the interface for interacting with rating data.
type RatingRepository interface {
	UpsertRating(postID uint, userID string, value int) (*models.Rating, error)
	ListRatingsByPost(postID uint) ([]models.Rating, error)
	GetAggregate(postID uint) (average float64, count int, err error)
	WriteAggregate(postID uint, average float64, count int) error
	DeleteRating(postID uint, userID string) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// UpsertRating inserts a rating for (postID, userID), or overwrites the
// existing value on conflict. The current row is re-fetched afterwards
// because the insert struct is not populated on the update path.
func (r *ratingRepository) UpsertRating(postID uint, userID string, value int) (*models.Rating, error) {
	rating := models.Rating{
		PostID: postID,
		UserID: userID,
		Value:  value,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&rating).Error
	if err != nil {
		log.Printf("ERROR: [RatingRepository] Failed to upsert rating for post ID %d, user '%s': %v", postID, userID, err)
		return nil, fmt.Errorf("failed to upsert rating for post ID %d: %w", postID, err)
	}

	var current models.Rating
	if fetchErr := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&current).Error; fetchErr != nil {
		log.Printf("ERROR: [RatingRepository] Failed to fetch rating for post ID %d, user '%s' after upsert: %v", postID, userID, fetchErr)
		return nil, fmt.Errorf("failed to fetch rating for post ID %d after upsert: %w", postID, fetchErr)
	}
	log.Printf("INFO: [RatingRepository] Upserted rating %d for post ID %d by user '%s'.", current.Value, postID, userID)
	return &current, nil
}

// ListRatingsByPost returns all ratings for a post, newest first.
func (r *ratingRepository) ListRatingsByPost(postID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("post_id = ?", postID).Order("updated_at desc").Find(&ratings).Error
	if err != nil {
		log.Printf("ERROR: [RatingRepository] Failed to list ratings for post ID %d: %v", postID, err)
		return nil, fmt.Errorf("failed to list ratings for post ID %d: %w", postID, err)
	}
	return ratings, nil
}

// GetAggregate computes the raw average and count over a post's ratings.
// Rounding is business logic and happens in the service.
func (r *ratingRepository) GetAggregate(postID uint) (float64, int, error) {
	var result struct {
		Average float64
		Count   int
	}
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Scan(&result).Error
	if err != nil {
		log.Printf("ERROR: [RatingRepository] Failed to aggregate ratings for post ID %d: %v", postID, err)
		return 0, 0, fmt.Errorf("failed to aggregate ratings for post ID %d: %w", postID, err)
	}
	return result.Average, result.Count, nil
}

// WriteAggregate stores the recomputed average and count on the post row.
func (r *ratingRepository) WriteAggregate(postID uint, average float64, count int) error {
	err := r.db.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"rating":        average,
		"total_ratings": count,
	}).Error
	if err != nil {
		log.Printf("ERROR: [RatingRepository] Failed to write rating aggregate to post ID %d: %v", postID, err)
		return fmt.Errorf("failed to write rating aggregate to post ID %d: %w", postID, err)
	}
	return nil
}

// DeleteRating removes the rating for (postID, userID).
func (r *ratingRepository) DeleteRating(postID uint, userID string) error {
	if userID == "" {
		log.Printf("ERROR: [RatingRepository] DeleteRating: userID cannot be empty")
		return errors.New("user ID cannot be empty")
	}
	result := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Rating{})
	if result.Error != nil {
		log.Printf("ERROR: [RatingRepository] Failed to delete rating for post ID %d, user '%s': %v", postID, userID, result.Error)
		return fmt.Errorf("failed to delete rating for post ID %d: %w", postID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("INFO: [RatingRepository] Deleted rating for post ID %d by user '%s'.", postID, userID)
	return nil
}
