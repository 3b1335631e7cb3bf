package repository

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"pixelforge/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for interacting with post data.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostBySlug(slug string) (*models.Post, error)
	SlugExists(slug string) (bool, error)
	ListPosts(filters models.PostFilters, page, limit int) ([]models.Post, int64, error)
	UpdatePost(post *models.Post) error
	DeletePostCascade(id uint) error
	GetRelatedPosts(category string, excludeID uint, limit int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreatePost inserts a new post.
func (r *postRepository) CreatePost(post *models.Post) error {
	if post == nil {
		log.Printf("ERROR: [PostRepository] CreatePost: post cannot be nil")
		return errors.New("post cannot be nil")
	}
	if err := r.db.Create(post).Error; err != nil {
		log.Printf("ERROR: [PostRepository] Failed to create post '%s': %v", post.Title, err)
		return fmt.Errorf("failed to create post '%s': %w", post.Title, err)
	}
	log.Printf("INFO: [PostRepository] Created post ID %d (slug '%s').", post.ID, post.Slug)
	return nil
}

// GetPostByID retrieves a post by its ID. Returns (nil, nil) when not found.
func (r *postRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [PostRepository] Failed to retrieve post ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve post ID %d: %w", id, err)
	}
	return &post, nil
}

// GetPostBySlug retrieves a post by its slug. Returns (nil, nil) when not found.
func (r *postRepository) GetPostBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [PostRepository] Failed to retrieve post by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("failed to retrieve post by slug '%s': %w", slug, err)
	}
	return &post, nil
}

// SlugExists reports whether any post already uses the given slug.
func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		log.Printf("ERROR: [PostRepository] Failed to check slug '%s': %v", slug, err)
		return false, fmt.Errorf("failed to check slug '%s': %w", slug, err)
	}
	return count > 0, nil
}

// ListPosts returns one page of posts matching the filters, newest first,
// along with the total match count for pagination.
func (r *postRepository) ListPosts(filters models.PostFilters, page, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Author != "" {
		query = query.Where("author = ?", filters.Author)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Published != nil {
		query = query.Where("published = ?", *filters.Published)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("ERROR: [PostRepository] Failed to count posts: %v", err)
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var posts []models.Post
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to list posts (page %d): %v", page, err)
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

// UpdatePost saves all fields of an existing post.
func (r *postRepository) UpdatePost(post *models.Post) error {
	if post == nil {
		log.Printf("ERROR: [PostRepository] UpdatePost: post cannot be nil")
		return errors.New("post cannot be nil")
	}
	if post.ID == 0 {
		log.Printf("ERROR: [PostRepository] UpdatePost: post ID must be provided for update")
		return errors.New("post ID must be provided for update")
	}
	if err := r.db.Save(post).Error; err != nil {
		log.Printf("ERROR: [PostRepository] Failed to update post ID %d: %v", post.ID, err)
		return fmt.Errorf("failed to update post ID %d: %w", post.ID, err)
	}
	log.Printf("INFO: [PostRepository] Updated post ID %d.", post.ID)
	return nil
}

// DeletePostCascade removes a post together with every comment, rating and
// view record that references it, in a single transaction.
func (r *postRepository) DeletePostCascade(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments for post ID %d: %w", id, err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("failed to delete ratings for post ID %d: %w", id, err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostView{}).Error; err != nil {
			return fmt.Errorf("failed to delete view records for post ID %d: %w", id, err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete post ID %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: [PostRepository] Cascade delete of post ID %d failed: %v", id, err)
		return err
	}
	log.Printf("INFO: [PostRepository] Deleted post ID %d and its dependents.", id)
	return nil
}

// GetRelatedPosts returns up to limit published posts sharing a category,
// newest first, excluding the post itself.
func (r *postRepository) GetRelatedPosts(category string, excludeID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Where("category = ? AND id <> ? AND published = ?", category, excludeID, true).
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: [PostRepository] Failed to retrieve related posts for category '%s': %v", category, err)
		return nil, fmt.Errorf("failed to retrieve related posts for category '%s': %w", category, err)
	}
	return posts, nil
}
