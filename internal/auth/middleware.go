package auth

import (
	"strings"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/gin-gonic/gin"
)

// validates the session token and adds user info to the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Respond(c, apierrors.Unauthenticated("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := ValidateSessionToken(parts[1])
		if err != nil {
			apierrors.Respond(c, apierrors.Unauthenticated("invalid or expired session"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	return userID.(string), true
}

// extracts user_email from context after AuthMiddleware
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")

	if !exists {
		return "", false
	}

	return email.(string), true
}
