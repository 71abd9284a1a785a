package router

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/instruments/config"
	"github.com/Payphone-Digital/instruments/internal/handler"
	"github.com/Payphone-Digital/instruments/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	instrumentHandler *handler.InstrumentHandler
	healthHandler     *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	metrics *middleware.Metrics
	Config  *config.Config
}

func NewRouter(
	instrument *handler.InstrumentHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	metrics *middleware.Metrics,
	config *config.Config,
) *Router {
	return &Router{
		instrumentHandler: instrument,
		healthHandler:     health,

		validMw: validMw,
		metrics: metrics,
		Config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ContextMiddleware("http", r.Config.App.Timeout))
	if r.metrics != nil {
		router.Use(r.metrics.Middleware())
	}
	router.Use(middleware.Headers())

	router.NoRoute(handler.EndpointNotFound)
	router.NoMethod(handler.MethodNotAllowed)

	router.GET("/health", r.healthHandler.HealthCheck)
	if r.metrics != nil {
		router.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	api := router.Group("/api")
	api.Use(middleware.RateLimit(r.Config.RateLimit.RequestsPerSecond, r.Config.RateLimit.Burst))
	r.instrumentRoutes(api)

	return router
}

// Handler serves the routes with one trailing slash removed from the request
// path, so /api/ and /api/7/ are answered like /api and /api/7 instead of
// being redirected.
func (r *Router) Handler() http.Handler {
	engine := r.SetupRoutes()
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			req.URL.Path = strings.TrimSuffix(p, "/")
			req.URL.RawPath = strings.TrimSuffix(req.URL.RawPath, "/")
		}
		engine.ServeHTTP(w, req)
	})
}
