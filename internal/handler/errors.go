package handler

import (
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error, scope apperrors.Scope) {
	c.JSON(apperrors.Response(err, scope))
}

// EndpointNotFound answers requests for unknown paths.
func EndpointNotFound(c *gin.Context) {
	writeError(c, apperrors.ErrEndpointNotFound, apperrors.Scope{})
}

// MethodNotAllowed answers unsupported methods on known paths.
func MethodNotAllowed(c *gin.Context) {
	writeError(c, apperrors.ErrMethodNotAllowed, apperrors.Scope{Method: c.Request.Method})
}
