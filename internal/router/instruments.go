package router

import (
	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/middleware"
	"github.com/gin-gonic/gin"
)

// instrumentRoutes registers the collection and item routes. Validation runs
// before the API key check on every mutating route.
func (r *Router) instrumentRoutes(api *gin.RouterGroup) {
	requireKey := middleware.RequireAPIKey(r.Config.App.APIKey)

	// Collection
	api.GET("", r.validMw.ValidateQuery(), r.instrumentHandler.List)
	api.HEAD("", r.validMw.ValidateQuery(), r.instrumentHandler.List)
	api.POST("", r.validMw.ValidateBody(), requireKey, r.instrumentHandler.Create)
	api.OPTIONS("", middleware.Preflight(constants.CollectionMethods))

	// Single instrument
	item := "/:" + constants.ResponseFieldID
	api.GET(item, r.validMw.ValidateParams(), r.instrumentHandler.Get)
	api.HEAD(item, r.validMw.ValidateParams(), r.instrumentHandler.Get)
	api.PUT(item, r.validMw.ValidateParams(), r.validMw.ValidateBody(), requireKey, r.instrumentHandler.Replace)
	api.DELETE(item, r.validMw.ValidateParams(), requireKey, r.instrumentHandler.Delete)
	api.OPTIONS(item, middleware.Preflight(constants.ItemMethods))
}
