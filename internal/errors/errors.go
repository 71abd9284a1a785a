package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/pkg/validation"
)

// Error codes
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodePageNotFound     = "PAGE_NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"
	CodeBodyTooLarge     = "BODY_TOO_LARGE"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code and message, so a wrapped copy of a
// predefined error still satisfies errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Listing errors
	ErrNoResults    = NewDomainError(CodeNotFound, constants.MsgNoResults)
	ErrPageNotFound = NewDomainError(CodePageNotFound, constants.MsgPageNotFound)

	// Instrument errors
	ErrInstrumentNotFound = NewDomainError(CodeNotFound, constants.MsgInstrumentNotFound)
	ErrNameExists         = NewDomainError(CodeConflict, constants.MsgNameExists)

	// Request errors
	ErrUnauthorized     = NewDomainError(CodeUnauthorized, constants.MsgUnauthorized)
	ErrEndpointNotFound = NewDomainError(CodeNotFound, constants.MsgEndpointNotFound)
	ErrMethodNotAllowed = NewDomainError(CodeMethodNotAllowed, constants.MsgMethodNotAllowed)
	ErrTooManyRequests  = NewDomainError(CodeTooManyRequests, constants.MsgTooManyRequests)
	ErrBodyTooLarge     = NewDomainError(CodeBodyTooLarge, constants.MsgBodyTooLarge)
	ErrValidation       = NewDomainError(CodeValidationFailed, "validation failed")

	// System errors
	ErrInternal = NewDomainError(CodeInternal, constants.MsgInternalError)
)

// NewValidationError wraps a list of field violations.
func NewValidationError(errs validation.Errors) *DomainError {
	return WrapError(ErrValidation, errs)
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound, CodePageNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage returns the client facing message of err. Internal errors
// report the message of the underlying cause.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == CodeInternal && domainErr.Err != nil {
			return domainErr.Err.Error()
		}
		return domainErr.Message
	}

	return err.Error()
}
