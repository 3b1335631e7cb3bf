package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for interacting with comment data.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListCommentsByPost(postID uint, approvedOnly bool) ([]models.Comment, error)
	SetApproval(id uint, approved bool) error
	DeleteComment(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// CreateComment inserts a new comment.
func (r *commentRepository) CreateComment(comment *models.Comment) error {
	if comment == nil {
		log.Printf("ERROR: [CommentRepository] CreateComment: comment cannot be nil")
		return errors.New("comment cannot be nil")
	}
	if comment.PostID == 0 {
		log.Printf("ERROR: [CommentRepository] CreateComment: comment must reference a post")
		return errors.New("comment must reference a post")
	}
	if err := r.db.Create(comment).Error; err != nil {
		log.Printf("ERROR: [CommentRepository] Failed to create comment on post ID %d: %v", comment.PostID, err)
		return fmt.Errorf("failed to create comment on post ID %d: %w", comment.PostID, err)
	}
	log.Printf("INFO: [CommentRepository] Created comment ID %d on post ID %d.", comment.ID, comment.PostID)
	return nil
}

// GetCommentByID retrieves a comment by its ID. Returns (nil, nil) when not found.
func (r *commentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CommentRepository] Failed to retrieve comment ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve comment ID %d: %w", id, err)
	}
	return &comment, nil
}

// ListCommentsByPost returns a post's comments, newest first. With
// approvedOnly set, unmoderated comments are excluded.
func (r *commentRepository) ListCommentsByPost(postID uint, approvedOnly bool) ([]models.Comment, error) {
	var comments []models.Comment
	query := r.db.Where("post_id = ?", postID)
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}
	if err := query.Order("created_at desc").Find(&comments).Error; err != nil {
		log.Printf("ERROR: [CommentRepository] Failed to list comments for post ID %d: %v", postID, err)
		return nil, fmt.Errorf("failed to list comments for post ID %d: %w", postID, err)
	}
	return comments, nil
}

// SetApproval toggles the moderation flag on a comment.
func (r *commentRepository) SetApproval(id uint, approved bool) error {
	result := r.db.Model(&models.Comment{}).Where("id = ?", id).Update("approved", approved)
	if result.Error != nil {
		log.Printf("ERROR: [CommentRepository] Failed to set approval on comment ID %d: %v", id, result.Error)
		return fmt.Errorf("failed to set approval on comment ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("INFO: [CommentRepository] Comment ID %d approval set to %t.", id, approved)
	return nil
}

// DeleteComment removes a comment by its ID.
func (r *commentRepository) DeleteComment(id uint) error {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		log.Printf("ERROR: [CommentRepository] Failed to delete comment ID %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete comment ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("INFO: [CommentRepository] Deleted comment ID %d.", id)
	return nil
}
