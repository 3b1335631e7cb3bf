package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for interacting with category data.
type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	ListCategories() ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	CategorySlugExists(slug string) (bool, error)
	DeleteCategory(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// CreateCategory inserts a new category.
func (r *categoryRepository) CreateCategory(category *models.Category) error {
	if category == nil {
		log.Printf("ERROR: [CategoryRepository] CreateCategory: category cannot be nil")
		return errors.New("category cannot be nil")
	}
	if err := r.db.Create(category).Error; err != nil {
		log.Printf("ERROR: [CategoryRepository] Failed to create category '%s': %v", category.Name, err)
		return fmt.Errorf("failed to create category '%s': %w", category.Name, err)
	}
	log.Printf("INFO: [CategoryRepository] Created category ID %d ('%s').", category.ID, category.Name)
	return nil
}

// ListCategories returns all categories ordered by name.
func (r *categoryRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("ERROR: [CategoryRepository] Failed to list categories: %v", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug retrieves a category by its slug. Returns (nil, nil) when not found.
func (r *categoryRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CategoryRepository] Failed to retrieve category by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("failed to retrieve category by slug '%s': %w", slug, err)
	}
	return &category, nil
}

// CategorySlugExists reports whether any category already uses the given slug.
func (r *categoryRepository) CategorySlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		log.Printf("ERROR: [CategoryRepository] Failed to check category slug '%s': %v", slug, err)
		return false, fmt.Errorf("failed to check category slug '%s': %w", slug, err)
	}
	return count > 0, nil
}

// DeleteCategory removes a category. Posts referencing it by name are left
// untouched.
func (r *categoryRepository) DeleteCategory(id uint) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		log.Printf("ERROR: [CategoryRepository] Failed to delete category ID %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete category ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("INFO: [CategoryRepository] Deleted category ID %d.", id)
	return nil
}
