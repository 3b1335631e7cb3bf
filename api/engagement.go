package api

import (
	"net/http"
	"strconv"

	"pixelforge/services"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCommentRequest is the payload for a visitor comment.
type CreateCommentRequest struct {
	Author   string `json:"author"`
	Email    string `json:"email"`
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// ApprovalRequest toggles a comment's moderation flag.
type ApprovalRequest struct {
	Approved *bool `json:"approved"`
}

// RatingRequest submits or overwrites a user's rating for a post.
type RatingRequest struct {
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

// ViewRequest identifies the viewing session. The X-Session-ID header takes
// precedence over the body.
type ViewRequest struct {
	SessionID string `json:"session_id"`
}

// ListCommentsHandler returns the approved comments on a post, newest first.
// GET /api/posts/:slug/comments
func (h *APIHandler) ListCommentsHandler(c *gin.Context) {
	comments, err := h.commentService.ListForPost(c.Param("slug"), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateCommentHandler stores a visitor comment.
// POST /api/posts/:slug/comments
func (h *APIHandler) CreateCommentHandler(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	comment, err := h.commentService.Create(c.Param("slug"), services.CreateCommentInput{
		Author:   req.Author,
		Email:    req.Email,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// SetCommentApprovalHandler toggles a comment's moderation flag.
// PUT /api/comments/:id/approval
func (h *APIHandler) SetCommentApprovalHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid comment ID.", err)
		return
	}
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Approved == nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Field 'approved' is required.", err)
		return
	}

	comment, err := h.commentService.SetApproval(uint(id), *req.Approved)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteCommentHandler removes a comment.
// DELETE /api/comments/:id
func (h *APIHandler) DeleteCommentHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid comment ID.", err)
		return
	}
	if err := h.commentService.Delete(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted."})
}

// UpsertRatingHandler submits or overwrites a user's rating for a post.
// POST /api/posts/:slug/ratings
func (h *APIHandler) UpsertRatingHandler(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	rating, err := h.ratingService.Upsert(c.Param("slug"), req.UserID, req.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// ListRatingsHandler returns a post's ratings with the rounded aggregate.
// GET /api/posts/:slug/ratings
func (h *APIHandler) ListRatingsHandler(c *gin.Context) {
	summary, err := h.ratingService.ListForPost(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteRatingHandler removes one user's rating and recomputes the
// post aggregate.
// DELETE /api/posts/:slug/ratings/:userID
func (h *APIHandler) DeleteRatingHandler(c *gin.Context) {
	if err := h.ratingService.Delete(c.Param("slug"), c.Param("userID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted."})
}

// RecordViewHandler counts one view per session per post. A missing session
// ID gets a generated one, which still counts the request exactly once.
// POST /api/posts/:slug/view
func (h *APIHandler) RecordViewHandler(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		var req ViewRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			sessionID = req.SessionID
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	count, err := h.postService.RecordView(c.Param("slug"), sessionID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view_count": count, "session_id": sessionID})
}

// GetViewCountHandler reads a post's view count.
// GET /api/posts/:slug/views
func (h *APIHandler) GetViewCountHandler(c *gin.Context) {
	count, err := h.postService.GetViewCount(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"view_count": count})
}
