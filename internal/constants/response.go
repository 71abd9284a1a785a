package constants

// Standard Response Field Keys
const (
	ResponseFieldID      = "_id"
	ResponseFieldName    = "name"
	ResponseFieldMethod  = "method"
	ResponseFieldMessage = "message"
	ResponseFieldError   = "error"
)

// BuildErrorResponse returns {"error": message}.
func BuildErrorResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldError: message,
	}
}

// BuildIDErrorResponse returns {"_id": id, "error": message} for failures
// scoped to a single instrument.
func BuildIDErrorResponse(id int, message string) map[string]any {
	return map[string]any{
		ResponseFieldID:    id,
		ResponseFieldError: message,
	}
}

// BuildNameErrorResponse returns {"name": name, "error": message}.
func BuildNameErrorResponse(name, message string) map[string]any {
	return map[string]any{
		ResponseFieldName:  name,
		ResponseFieldError: message,
	}
}

// BuildMethodErrorResponse returns {"method": method, "error": message}.
func BuildMethodErrorResponse(method, message string) map[string]any {
	return map[string]any{
		ResponseFieldMethod: method,
		ResponseFieldError:  message,
	}
}

// BuildCreatedResponse returns {"_id": id, "name": name, "message": message}.
func BuildCreatedResponse(id int, name, message string) map[string]any {
	return map[string]any{
		ResponseFieldID:      id,
		ResponseFieldName:    name,
		ResponseFieldMessage: message,
	}
}

// BuildMutationResponse returns {"_id": id, "message": message}.
func BuildMutationResponse(id int, message string) map[string]any {
	return map[string]any{
		ResponseFieldID:      id,
		ResponseFieldMessage: message,
	}
}
