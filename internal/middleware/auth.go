package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wellspringapp/wellspring/backend/internal/apierror"
	"github.com/wellspringapp/wellspring/backend/internal/logger"
)

// Auth verifies the bearer API key and resolves the acting user from the
// X-User-ID header. With an empty apiKey the check is disabled, which is
// the local development mode.
func Auth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		if apiKey != "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				log.Debug("authentication failed: missing authorization header")
				apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Debug("authentication failed: invalid authorization format")
				apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
				c.Abort()
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(apiKey)) != 1 {
				log.Warn("authentication failed: invalid api key")
				apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
				c.Abort()
				return
			}
		}

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			log.Debug("authentication failed: missing user id header")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		ctx := logger.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
