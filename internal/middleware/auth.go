package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/auth"
	"planr_backend/internal/logger"
	"planr_backend/pkg/apperrors"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isStaff", claims.IsStaff)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// StaffMiddleware gates staff-only routes. Must run after AuthMiddleware.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffVal, exists := c.Get("isStaff")
		isStaff, ok := staffVal.(bool)
		if !exists || !ok || !isStaff {
			apperrors.HandleError(c, apperrors.ErrStaffOnly)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// IsStaff reports whether the authenticated caller has the staff flag.
func IsStaff(c *gin.Context) bool {
	staffVal, exists := c.Get("isStaff")
	if !exists {
		return false
	}
	isStaff, ok := staffVal.(bool)
	return ok && isStaff
}
