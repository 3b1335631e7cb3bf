package middleware

import (
	"net/http"
	"strings"
	"time"

	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the JWT claims carried by an admin session token.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs a session token for a logged-in admin.
func IssueAdminToken(secret, email string, ttl time.Duration) (string, error) {
	claims := AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// RequireAdmin validates the Bearer token on admin routes. Authentication
// is enforced server-side per request; there is no client-stored session
// flag to trust.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.SendJSONError(c, http.StatusUnauthorized, "Admin authentication is not configured.", nil)
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.SendJSONError(c, http.StatusUnauthorized, "Missing bearer token.", nil)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.SendJSONError(c, http.StatusUnauthorized, "Invalid or expired token.", err)
			return
		}

		c.Set("admin_email", claims.Email)
		c.Next()
	}
}
