package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recapio/recapio/internal/services/auth"
	"github.com/recapio/recapio/internal/utils"
)

// JWTAuthMiddleware validates the access token and the session behind it,
// then stores the user identity in the gin context.
func JWTAuthMiddleware(jwtService *auth.JWTService, sessionService *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := jwtService.ExtractTokenFromBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":      "MISSING_TOKEN",
				"message":    "Authorization token required",
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			errorMessage := "Invalid or expired token"
			if strings.Contains(err.Error(), "expired") {
				errorMessage = "Token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":      "INVALID_TOKEN",
				"message":    errorMessage,
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		if err := sessionService.ValidateSession(c.Request.Context(), claims); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":      "SESSION_INVALID",
				"message":    "Session is no longer valid",
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		c.Set("session_id", claims.SessionID)
		c.Set("token_jti", claims.ID)

		c.Next()
	}
}

// RoleMiddleware checks that the authenticated user holds any of the
// required roles. Must run after JWTAuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("user_roles")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":      "AUTHENTICATION_REQUIRED",
				"message":    "Authentication required for this endpoint",
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		roles, ok := userRoles.([]string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":      utils.NewForbiddenError(),
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		hasRole := false
		for _, userRole := range roles {
			for _, requiredRole := range requiredRoles {
				if userRole == requiredRole {
					hasRole = true
					break
				}
			}
			if hasRole {
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":      utils.NewForbiddenError(),
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
