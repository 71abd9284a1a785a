package validation

import "net/url"

// FromValues converts URL values into validator input. A parameter given
// once becomes a string and a repeated parameter becomes an array.
func FromValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			out[key] = ""
		case 1:
			out[key] = vals[0]
		default:
			items := make([]any, len(vals))
			for i, v := range vals {
				items[i] = v
			}
			out[key] = items
		}
	}
	return out
}

// FromStrings converts named string values, such as route parameters, into
// validator input.
func FromStrings(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for key, v := range values {
		out[key] = v
	}
	return out
}
