package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
)

// ViewRepository defines the interface for session-deduplicated view tracking.
type ViewRepository interface {
	// RecordView increments the post's view count the first time a session
	// views it. Returns the post's current view count and whether this call
	// performed an increment.
	RecordView(view *models.PostView) (count int, incremented bool, err error)
	GetViewCount(postID uint) (int, error)
}

type viewRepository struct {
	db *gorm.DB
}

// NewViewRepository creates a new instance of ViewRepository.
func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

// RecordView runs the dedup check, the view-record insert and the counter
// increment in one transaction so concurrent requests from the same session
// cannot double-count.
func (r *viewRepository) RecordView(view *models.PostView) (int, bool, error) {
	if view == nil {
		log.Printf("ERROR: [ViewRepository] RecordView: view cannot be nil")
		return 0, false, errors.New("view cannot be nil")
	}
	if view.SessionID == "" {
		log.Printf("ERROR: [ViewRepository] RecordView: session ID cannot be empty")
		return 0, false, errors.New("session ID cannot be empty")
	}

	incremented := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PostView
		err := tx.Where("post_id = ? AND session_id = ?", view.PostID, view.SessionID).
			First(&existing).Error
		if err == nil {
			// Session already counted; nothing to do.
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check view record: %w", err)
		}

		if err := tx.Create(view).Error; err != nil {
			return fmt.Errorf("failed to create view record: %w", err)
		}
		result := tx.Model(&models.Post{}).Where("id = ?", view.PostID).
			Update("view_count", gorm.Expr("view_count + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment view count: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		incremented = true
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
		log.Printf("ERROR: [ViewRepository] Failed to record view for post ID %d: %v", view.PostID, err)
		return 0, false, fmt.Errorf("failed to record view for post ID %d: %w", view.PostID, err)
	}

	count, countErr := r.GetViewCount(view.PostID)
	if countErr != nil {
		return 0, incremented, countErr
	}
	if incremented {
		log.Printf("INFO: [ViewRepository] Recorded view for post ID %d (session '%s'), count now %d.", view.PostID, view.SessionID, count)
	}
	return count, incremented, nil
}

// GetViewCount reads a post's current view count.
func (r *viewRepository) GetViewCount(postID uint) (int, error) {
	var post models.Post
	err := r.db.Select("view_count").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, gorm.ErrRecordNotFound
		}
		log.Printf("ERROR: [ViewRepository] Failed to read view count for post ID %d: %v", postID, err)
		return 0, fmt.Errorf("failed to read view count for post ID %d: %w", postID, err)
	}
	return post.ViewCount, nil
}
