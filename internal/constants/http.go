package constants

import "strings"

// HTTP Header Names
const (
	HeaderContentType  = "Content-Type"
	HeaderAPIKey       = "API-Key"
	HeaderUserAgent    = "User-Agent"
	HeaderXRequestID   = "X-Request-ID"
	HeaderAllow        = "Allow"
	HeaderCacheControl = "Cache-Control"
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)

// Header values
const (
	CacheControlNoStore = "no-store"
	AllowOriginAny      = "*"
	AllowedHeaders      = HeaderAPIKey + ", " + HeaderContentType
)

// HTTP methods
const (
	MethodGET     = "GET"
	MethodHEAD    = "HEAD"
	MethodPOST    = "POST"
	MethodPUT     = "PUT"
	MethodDELETE  = "DELETE"
	MethodOPTIONS = "OPTIONS"
)

// Methods allowed per resource
var (
	CollectionMethods = []string{MethodGET, MethodHEAD, MethodPOST, MethodOPTIONS}
	ItemMethods       = []string{MethodGET, MethodHEAD, MethodPUT, MethodDELETE, MethodOPTIONS}
)

// JoinMethods renders methods as an Allow header value.
func JoinMethods(methods []string) string {
	return strings.Join(methods, ", ")
}

// Error messages
const (
	MsgNoResults          = "No instruments were found"
	MsgPageNotFound       = "Page does not exist"
	MsgInstrumentNotFound = "No instrument with the specified _id"
	MsgEndpointNotFound   = "The requested endpoint does not exist"
	MsgNameExists         = "An instrument with the specified name already exists"
	MsgUnauthorized       = "Unauthorized request: A valid API key is required"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgTooManyRequests    = "Too many requests"
	MsgBodyTooLarge       = "Request body is too large"
	MsgInternalError      = "Internal server error"
)

// Success messages
const (
	MsgCreated = "The instrument was added to the database"
	MsgUpdated = "The instrument was updated"
	MsgDeleted = "The instrument was deleted"
)
