package api

import (
	"net/http"
	"time"

	"pixelforge/config"
	"pixelforge/middleware"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler checks the admin credentials against the configured bcrypt
// hash and issues a signed session token. Authentication lives entirely on
// the server; nothing client-side is trusted.
// POST /api/auth/login
func (h *APIHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	cfg := config.AppConfig.Auth
	if cfg.JWTSecret == "" || cfg.AdminPasswordHash == "" {
		utils.SendJSONError(c, http.StatusInternalServerError, "Admin authentication is not configured.", nil)
		return
	}
	if req.Email != cfg.AdminEmail {
		utils.SendJSONError(c, http.StatusUnauthorized, "Invalid credentials.", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Invalid credentials.", nil)
		return
	}

	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	token, err := middleware.IssueAdminToken(cfg.JWTSecret, req.Email, ttl)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(ttl.Seconds()),
	})
}
