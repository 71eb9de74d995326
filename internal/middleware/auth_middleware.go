package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Madhesh247/Zenfocus/internal/errors"
	"github.com/Madhesh247/Zenfocus/internal/service"
)

func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authService.Enabled() {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			writeError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		if apiErr := authService.ParseToken(token); apiErr != nil {
			writeError(c, apiErr)
			return
		}

		c.Next()
	}
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}
