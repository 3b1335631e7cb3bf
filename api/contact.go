package api

import (
	"net/http"
	"strconv"

	"pixelforge/services"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
)

// ContactRequest is a contact-form submission. Website is the hidden
// honeypot field; humans never see it, bots fill it in.
type ContactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Website   string `json:"website"`
}

// ContactHandler validates and dispatches a contact submission.
// POST /api/contact
func (h *APIHandler) ContactHandler(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	result, err := h.contactService.Submit(services.ContactSubmission{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
		Honeypot:  req.Website,
	}, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thanks! We'll be in touch shortly.",
		"result":  result,
	})
}

// ListContactMessagesHandler pages stored submissions for the admin UI.
// GET /api/contact
func (h *APIHandler) ListContactMessagesHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	messages, pagination, err := h.contactService.ListMessages(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":   messages,
		"pagination": pagination,
	})
}
