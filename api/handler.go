package api

import (
	"errors"
	"net/http"

	"pixelforge/repository"
	"pixelforge/services"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIHandler holds all dependencies for API handlers, such as repositories and services.
type APIHandler struct {
	postService    services.PostService
	commentService services.CommentService
	ratingService  services.RatingService
	contactService services.ContactService
	socialService  services.SocialService
	categoryRepo   repository.CategoryRepository
	db             *gorm.DB
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	postService services.PostService,
	commentService services.CommentService,
	ratingService services.RatingService,
	contactService services.ContactService,
	socialService services.SocialService,
	categoryRepo repository.CategoryRepository,
	db *gorm.DB,
) *APIHandler {
	return &APIHandler{
		postService:    postService,
		commentService: commentService,
		ratingService:  ratingService,
		contactService: contactService,
		socialService:  socialService,
		categoryRepo:   categoryRepo,
		db:             db,
	}
}

// respondServiceError maps service-layer errors onto the HTTP error
// taxonomy: validation failures become 400, known not-found sentinels 404,
// everything else a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.SendJSONError(c, http.StatusBadRequest, validationErr.Error(), nil)
	case errors.Is(err, services.ErrPostNotFound):
		utils.SendJSONError(c, http.StatusNotFound, "Post not found.", nil)
	case errors.Is(err, services.ErrCommentNotFound):
		utils.SendJSONError(c, http.StatusNotFound, "Comment not found.", nil)
	case errors.Is(err, services.ErrRatingNotFound):
		utils.SendJSONError(c, http.StatusNotFound, "Rating not found.", nil)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
	}
}
