package validation

import (
	"regexp"
)

// Kind identifies the rule a Constraint checks.
type Kind int

const (
	KindType Kind = iota
	KindPattern
	KindMaxLength
	KindMinItems
	KindMaxItems
	KindUniqueItems
	KindEnum
	KindItems
)

// JSONType names the JSON type a value must have.
type JSONType string

const (
	TypeString JSONType = "string"
	TypeArray  JSONType = "array"
	TypeObject JSONType = "object"
)

// Location tells clients whether a failing field came from the request body
// or from the URL.
type Location string

const (
	LocationProperty  Location = "property"
	LocationParameter Location = "parameter"
)

// Constraint is a single declarative rule. Rules that only make sense for
// one JSON type are skipped for values of any other type.
type Constraint struct {
	Kind    Kind
	Type    JSONType
	Tag     string
	Pattern *regexp.Regexp
	Limit   int
	Values  []string
	Items   []Constraint
	Message string
}

// WithMessage returns a copy of c reporting msg on violation.
func (c Constraint) WithMessage(msg string) Constraint {
	c.Message = msg
	return c
}

func (c Constraint) message() string {
	if c.Message != "" {
		return c.Message
	}
	return DefaultMessage(c)
}

// Type requires the value to have the JSON type t.
func Type(t JSONType) Constraint {
	return Constraint{Kind: KindType, Type: t}
}

// Pattern requires a string to match re. The tag names the rule when it is
// registered with the underlying field validator and must be unique per
// Validator.
func Pattern(tag string, re *regexp.Regexp) Constraint {
	return Constraint{Kind: KindPattern, Tag: tag, Pattern: re}
}

// MaxLength limits a string to n characters.
func MaxLength(n int) Constraint {
	return Constraint{Kind: KindMaxLength, Limit: n}
}

// MinItems requires an array to have at least n items.
func MinItems(n int) Constraint {
	return Constraint{Kind: KindMinItems, Limit: n}
}

// MaxItems limits an array to n items.
func MaxItems(n int) Constraint {
	return Constraint{Kind: KindMaxItems, Limit: n}
}

// UniqueItems forbids equal items in an array.
func UniqueItems() Constraint {
	return Constraint{Kind: KindUniqueItems}
}

// Enum requires the value to be one of the given strings.
func Enum(values ...string) Constraint {
	return Constraint{Kind: KindEnum, Values: values}
}

// Items applies cs to every element of an array. Violations are reported
// against "<field>/<index>".
func Items(cs ...Constraint) Constraint {
	return Constraint{Kind: KindItems, Items: cs}
}

// Property declares one named input field.
type Property struct {
	Name        string
	Required    bool
	Constraints []Constraint
	// Message, when set, replaces every violation of this property with a
	// single error.
	Message string
}

// Schema describes an input object.
type Schema struct {
	Name       string
	Location   Location
	Properties []Property
	// AdditionalMessage is reported for every field not declared in
	// Properties.
	AdditionalMessage string
	// RequiredMessage is reported for every missing required property.
	RequiredMessage string
}

func (s *Schema) property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
