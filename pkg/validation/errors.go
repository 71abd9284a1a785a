package validation

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnknownSchema is returned when validating against a schema that was not
// registered.
var ErrUnknownSchema = errors.New("validation: unknown schema")

// FieldError is a single violation.
type FieldError struct {
	Location Location
	Field    string
	Message  string
}

// MarshalJSON renders the error as {"property": field, "error": message} or
// {"parameter": field, "error": message}.
func (e FieldError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		string(e.Location): e.Field,
		"error":            e.Message,
	})
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Errors is an ordered list of violations. It is never empty when returned
// as an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors extracts the violation list from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
