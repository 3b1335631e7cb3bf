package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-signing-secret"

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/admin/ping", RequireAdmin(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("admin_email")})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	t.Run("Valid token passes and exposes the admin email", func(t *testing.T) {
		token, err := IssueAdminToken(testSecret, "admin@example.com", time.Hour)
		assert.NoError(t, err)

		router := newProtectedRouter(testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("Missing token is rejected", func(t *testing.T) {
		router := newProtectedRouter(testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token, err := IssueAdminToken("some-other-secret", "admin@example.com", time.Hour)
		assert.NoError(t, err)

		router := newProtectedRouter(testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		token, err := IssueAdminToken(testSecret, "admin@example.com", -time.Minute)
		assert.NoError(t, err)

		router := newProtectedRouter(testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unconfigured secret locks the route", func(t *testing.T) {
		router := newProtectedRouter("")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer anything")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
