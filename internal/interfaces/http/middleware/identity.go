package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// UserIDHeader carries the authenticated user's ID. Session handling
// lives in front of this service; by the time a request lands here the
// edge has already resolved the session cookie to a user ID.
const UserIDHeader = "X-User-ID"

// AdminHeader marks requests from the back office
const AdminHeader = "X-Admin"

// UserIDKey is the gin context key for the resolved user ID
const UserIDKey = "user_id"

// Identity resolves the user ID header into the request context. It
// does not reject anonymous requests; handlers that need a user call
// RequireUser.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(UserIDKey, id)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 when the request has no resolved user
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UserIDKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized,
				"Sign in to continue",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the request carries the back
// office marker
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AdminHeader) != "true" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Admin access required",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

// GetUserID returns the resolved user ID, or uuid.Nil when anonymous
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
