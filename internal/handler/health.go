package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/service"
	"github.com/Payphone-Digital/instruments/pkg/health"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 5 * time.Second

type HealthHandler struct {
	monitor *health.Monitor
	cache   *service.CacheService
	now     func() time.Time
}

type HealthCheckResponse struct {
	Status    string          `json:"status"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Checks    []health.Result `json:"checks"`
	Cache     map[string]any  `json:"cache,omitempty"`
}

func NewHealthHandler(monitor *health.Monitor, cache *service.CacheService) *HealthHandler {
	return &HealthHandler{
		monitor: monitor,
		cache:   cache,
		now:     time.Now,
	}
}

// HealthCheck runs the registered dependency checks. Only critical checks
// make the service unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	healthy, results := h.monitor.CheckAll(ctx)

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: h.now(),
		Checks:    results,
	}
	if !healthy {
		response.Status = "unhealthy"
	}
	if h.cache != nil {
		response.Cache = h.cache.Status(ctx)
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}
