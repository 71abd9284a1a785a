package middleware

import (
	"io"
	"time"

	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	ctxutil "github.com/Payphone-Digital/instruments/pkg/context"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// slowRequest is the latency above which requests are logged as slow.
const slowRequest = 2 * time.Second

// LoggingMiddleware routes gin's access log through zap.
func LoggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.LogRequest(
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency.Milliseconds(),
				param.ClientIP,
				param.Request.UserAgent(),
			)

			if param.ErrorMessage != "" {
				logger.GetLogger().Error("Request error",
					zap.String("error", param.ErrorMessage),
					zap.String("method", param.Method),
					zap.String("path", param.Path),
					zap.Int("status_code", param.StatusCode),
				)
			}

			if param.Latency > slowRequest {
				logger.GetLogger().Warn("Slow request detected",
					zap.String("method", param.Method),
					zap.String("path", param.Path),
					zap.Duration("latency", param.Latency),
				)
			}

			return ""
		},
		Output: io.Discard,
	})
}

// RecoveryMiddleware turns panics into a 500 error response.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.LogPanic(recovered, zap.Any("request", ctxutil.ContextToMap(c.Request.Context())))
		c.AbortWithStatusJSON(apperrors.Response(apperrors.ErrInternal, apperrors.Scope{}))
	})
}
