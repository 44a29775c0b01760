package middleware

import (
	"context"
	"net/http"
	"strings"

	"dstclan/internal/constants"
	"dstclan/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	// AdminTokenHeader header carrying the admin session token
	AdminTokenHeader = "X-Admin-Token"
	adminKey         = "admin"
)

// Authenticator resolves a session token to an admin
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Admin, error)
}

// AdminToken extracts the token from X-Admin-Token or a Bearer Authorization header
func AdminToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(AdminTokenHeader)); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// AdminAuth rejects requests without a valid admin token
func AdminAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AdminToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrUnauthorized})
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidToken})
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// IdentifyAdmin records the admin when a valid token is present but never rejects
func IdentifyAdmin(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := AdminToken(c); token != "" {
			if admin, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(adminKey, admin)
			}
		}
		c.Next()
	}
}

// CurrentAdmin returns the authenticated admin, if any
func CurrentAdmin(c *gin.Context) (*model.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*model.Admin)
	return admin, ok
}
