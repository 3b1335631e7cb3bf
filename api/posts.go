package api

import (
	"log"
	"net/http"
	"strconv"

	"pixelforge/config"
	"pixelforge/models"
	"pixelforge/services"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Category  string         `json:"category"`
	Excerpt   string         `json:"excerpt"`
	Author    string         `json:"author"`
	Tags      []string       `json:"tags"`
	Image     string         `json:"image"`
	Published *bool          `json:"published"`
	Featured  *bool          `json:"featured"`
	SEO       datatypes.JSON `json:"seo"`
	CrossPost bool           `json:"cross_post"`
}

// UpdatePostRequest is the payload for a partial post update. Absent fields
// are left untouched.
type UpdatePostRequest struct {
	Title     *string        `json:"title"`
	Content   *string        `json:"content"`
	Category  *string        `json:"category"`
	Excerpt   *string        `json:"excerpt"`
	Author    *string        `json:"author"`
	Tags      *[]string      `json:"tags"`
	Image     *string        `json:"image"`
	Published *bool          `json:"published"`
	Featured  *bool          `json:"featured"`
	SEO       datatypes.JSON `json:"seo"`
}

// ListPostsHandler returns one page of posts with filters from the query string.
// GET /api/posts
func (h *APIHandler) ListPostsHandler(c *gin.Context) {
	filters := models.PostFilters{
		Category: c.Query("category"),
		Author:   c.Query("author"),
		Search:   c.Query("search"),
	}
	if v, ok := parseBoolQuery(c, "featured"); ok {
		filters.Featured = &v
	}
	if v, ok := parseBoolQuery(c, "published"); ok {
		filters.Published = &v
	} else {
		// The public listing only shows published posts unless asked otherwise.
		published := true
		filters.Published = &published
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "9"))

	posts, pagination, err := h.postService.ListPosts(filters, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": pagination,
	})
}

// GetPostHandler returns a single post with comments, rating aggregate and
// related posts. Fetching never bumps the view count; that is the view
// endpoint's job.
// GET /api/posts/:slug
func (h *APIHandler) GetPostHandler(c *gin.Context) {
	detail, err := h.postService.GetPostDetail(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreatePostHandler creates a post and optionally cross-posts it.
// POST /api/posts
func (h *APIHandler) CreatePostHandler(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	post, err := h.postService.CreatePost(services.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Excerpt:   req.Excerpt,
		Author:    req.Author,
		Tags:      req.Tags,
		Image:     req.Image,
		Published: req.Published,
		Featured:  req.Featured,
		SEO:       req.SEO,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.CrossPost && post.Published {
		// Best effort: a failed cross-post never fails the create.
		if _, err := h.socialService.CrossPost(c.Request.Context(), post, config.AppConfig.Server.BaseURL); err != nil {
			log.Printf("WARN: [PostsHandler] Cross-post of '%s' failed: %v", post.Slug, err)
		}
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePostHandler applies a partial update to the post addressed by slug.
// PUT /api/posts/:slug
func (h *APIHandler) UpdatePostHandler(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	post, err := h.postService.UpdatePostBySlug(c.Param("slug"), services.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Excerpt:   req.Excerpt,
		Author:    req.Author,
		Tags:      req.Tags,
		Image:     req.Image,
		Published: req.Published,
		Featured:  req.Featured,
		SEO:       req.SEO,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePostHandler removes a post and all its comments and ratings. The
// path segment is a numeric ID or a slug.
// DELETE /api/posts/:slug
func (h *APIHandler) DeletePostHandler(c *gin.Context) {
	key := c.Param("slug")
	var err error
	if id, parseErr := strconv.ParseUint(key, 10, 32); parseErr == nil {
		err = h.postService.DeletePost(uint(id))
	} else {
		err = h.postService.DeletePostBySlug(key)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted."})
}

func parseBoolQuery(c *gin.Context, name string) (bool, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return value, true
}
