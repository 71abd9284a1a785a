package middleware

import (
	"net/http"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/gin-gonic/gin"
)

// Headers sets the headers every response carries.
func Headers() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set(constants.HeaderAllowOrigin, constants.AllowOriginAny)
		h.Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
		h.Set(constants.HeaderContentType, constants.ContentTypeJSON+"; charset=utf-8")
		c.Next()
	}
}

// Preflight answers OPTIONS requests for a resource that supports methods.
func Preflight(methods []string) gin.HandlerFunc {
	allowed := constants.JoinMethods(methods)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set(constants.HeaderAllow, allowed)
		h.Set(constants.HeaderAllowMethods, allowed)
		h.Set(constants.HeaderAllowHeaders, constants.AllowedHeaders)
		c.AbortWithStatus(http.StatusOK)
	}
}
