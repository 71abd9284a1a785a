package errors

import (
	"net/http"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/pkg/validation"
)

// Scope carries the request values echoed back in error envelopes.
type Scope struct {
	ID     int
	Name   string
	Method string
}

// Response maps err to its status code and response body. Validation
// failures render as the violation array; every other error renders as an
// object whose extra key depends on the error and the scope.
func Response(err error, scope Scope) (int, any) {
	if errs, ok := validation.AsErrors(err); ok {
		return http.StatusBadRequest, errs
	}

	status := ToHTTPStatus(err)
	message := GetErrorMessage(err)

	switch {
	case status == http.StatusConflict:
		return status, constants.BuildNameErrorResponse(scope.Name, message)
	case status == http.StatusMethodNotAllowed:
		return status, constants.BuildMethodErrorResponse(scope.Method, message)
	case scope.ID > 0:
		return status, constants.BuildIDErrorResponse(scope.ID, message)
	default:
		return status, constants.BuildErrorResponse(message)
	}
}
