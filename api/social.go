package api

import (
	"errors"
	"log"
	"net/http"

	"pixelforge/services"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
)

// MastodonSettingsRequest updates the cross-posting configuration. An empty
// access token keeps the stored one.
type MastodonSettingsRequest struct {
	Instance    string `json:"instance"`
	AccessToken string `json:"access_token"`
	Enabled     bool   `json:"enabled"`
}

// MastodonPostRequest publishes a status.
type MastodonPostRequest struct {
	Status string `json:"status"`
}

// GetMastodonSettingsHandler returns the stored cross-posting settings.
// GET /api/settings/mastodon
func (h *APIHandler) GetMastodonSettingsHandler(c *gin.Context) {
	settings, err := h.socialService.GetSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateMastodonSettingsHandler stores the cross-posting settings.
// PUT /api/settings/mastodon
func (h *APIHandler) UpdateMastodonSettingsHandler(c *gin.Context) {
	var req MastodonSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if err := h.socialService.UpdateSettings(req.Instance, req.AccessToken, req.Enabled); err != nil {
		respondServiceError(c, err)
		return
	}
	settings, err := h.socialService.GetSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PostMastodonStatusHandler publishes a status with the stored credentials.
// Upstream error text is passed through so the admin sees the real reason.
// POST /api/mastodon/post
func (h *APIHandler) PostMastodonStatusHandler(c *gin.Context) {
	var req MastodonPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	status, err := h.socialService.PostStatus(c.Request.Context(), req.Status)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

// TestMastodonConnectionHandler verifies the stored credentials.
// POST /api/mastodon/test
func (h *APIHandler) TestMastodonConnectionHandler(c *gin.Context) {
	account, err := h.socialService.TestConnection(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// respondUpstreamError surfaces a social-API error message verbatim, except
// for validation errors which stay 400.
func respondUpstreamError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.SendJSONError(c, http.StatusBadRequest, validationErr.Error(), nil)
		return
	}
	log.Printf("ERROR: [SocialHandler] Upstream call failed: %v", err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
