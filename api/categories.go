package api

import (
	"errors"
	"net/http"
	"strconv"

	"pixelforge/models"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ListCategoriesHandler returns all categories.
// GET /api/categories
func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.categoryRepo.ListCategories()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategoryHandler creates a category with a derived unique slug.
// POST /api/categories
func (h *APIHandler) CreateCategoryHandler(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if req.Name == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Category name is required.", nil)
		return
	}

	slug := utils.Slugify(req.Name)
	exists, err := h.categoryRepo.CategorySlugExists(slug)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}
	if exists {
		utils.SendJSONError(c, http.StatusBadRequest, "A category with this name already exists.", nil)
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
	}
	if err := h.categoryRepo.CreateCategory(category); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategoryHandler removes a category. Posts keep their category name.
// DELETE /api/categories/:id
func (h *APIHandler) DeleteCategoryHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid category ID.", err)
		return
	}
	if err := h.categoryRepo.DeleteCategory(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Category not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted."})
}
