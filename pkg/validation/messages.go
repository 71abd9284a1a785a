package validation

import "fmt"

// Default violation messages. A constraint may override its message with
// WithMessage.
const (
	MsgAdditionalProperties = "should not have additional properties"
	MsgAdditionalParameters = "should not have additional parameters"
	MsgRequired             = "should have all of the required properties"
	MsgEnum                 = "should be equal to one of the allowed values"
	MsgUniqueItems          = "should not have duplicate items"
	MsgPattern              = "should match the required pattern"
)

// DefaultMessage returns the message reported when a constraint of the
// given kind is violated.
func DefaultMessage(c Constraint) string {
	switch c.Kind {
	case KindType:
		return fmt.Sprintf("should be %s", c.Type)
	case KindPattern:
		return MsgPattern
	case KindMaxLength:
		return fmt.Sprintf("should not have more than %d %s", c.Limit, plural(c.Limit, "character", "characters"))
	case KindMinItems:
		return fmt.Sprintf("should not have fewer than %d %s", c.Limit, plural(c.Limit, "item", "items"))
	case KindMaxItems:
		return fmt.Sprintf("should not have more than %d %s", c.Limit, plural(c.Limit, "item", "items"))
	case KindUniqueItems:
		return MsgUniqueItems
	case KindEnum:
		return MsgEnum
	default:
		return "is invalid"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
