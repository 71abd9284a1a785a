package middleware

import (
	"crypto/subtle"
	"regexp"

	"github.com/Payphone-Digital/instruments/internal/constants"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var apiKeyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// RequireAPIKey rejects requests whose API-Key header is not a 64 character
// lowercase hex string equal to key. An empty key rejects every request.
func RequireAPIKey(key string) gin.HandlerFunc {
	expected := []byte(key)

	return func(c *gin.Context) {
		provided := c.GetHeader(constants.HeaderAPIKey)

		if !apiKeyPattern.MatchString(provided) ||
			len(expected) == 0 ||
			subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			logger.LogAuth(c.ClientIP(), c.Request.URL.Path, false,
				zap.String("method", c.Request.Method),
				zap.Bool("header_present", provided != ""),
			)
			c.AbortWithStatusJSON(apperrors.Response(apperrors.ErrUnauthorized, apperrors.Scope{}))
			return
		}

		logger.LogAuth(c.ClientIP(), c.Request.URL.Path, true,
			zap.String("method", c.Request.Method),
		)
		c.Next()
	}
}
