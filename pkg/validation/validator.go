// Package validation checks decoded request input against declarative
// schemas and reports every violation with a client facing message.
package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Validator holds a fixed set of compiled schemas. It is immutable after New
// and safe for concurrent use.
type Validator struct {
	schemas map[string]*Schema
	fields  *validator.Validate
}

// New compiles the schemas and registers their pattern rules.
func New(schemas ...*Schema) (*Validator, error) {
	v := &Validator{
		schemas: make(map[string]*Schema, len(schemas)),
		fields:  validator.New(),
	}

	for _, s := range schemas {
		if s == nil || s.Name == "" {
			return nil, fmt.Errorf("validation: schema without name")
		}
		if _, exists := v.schemas[s.Name]; exists {
			return nil, fmt.Errorf("validation: duplicate schema %q", s.Name)
		}
		for _, p := range s.Properties {
			if err := v.register(p.Constraints); err != nil {
				return nil, fmt.Errorf("validation: schema %q property %q: %w", s.Name, p.Name, err)
			}
		}
		v.schemas[s.Name] = s
	}

	return v, nil
}

func (v *Validator) register(cs []Constraint) error {
	for _, c := range cs {
		switch c.Kind {
		case KindPattern:
			if c.Tag == "" || c.Pattern == nil {
				return fmt.Errorf("pattern constraint needs a tag and an expression")
			}
			re := c.Pattern
			err := v.fields.RegisterValidation(c.Tag, func(fl validator.FieldLevel) bool {
				return re.MatchString(fl.Field().String())
			})
			if err != nil {
				return err
			}
		case KindItems:
			if err := v.register(c.Items); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks input against the named schema. Input is a decoded JSON
// value: strings, []any, map[string]any, numbers, booleans or nil.
//
// On success the input object is returned unchanged. Otherwise the error is
// an Errors value listing unknown fields first, in name order, followed by
// the violations of each declared property in declaration order.
func (v *Validator) Validate(schemaName string, input any) (map[string]any, error) {
	s, ok := v.schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, schemaName)
	}

	obj, ok := input.(map[string]any)
	if !ok {
		return nil, Errors{{Location: s.Location, Message: DefaultMessage(Type(TypeObject))}}
	}

	var errs Errors

	var unknown []string
	for name := range obj {
		if _, declared := s.property(name); !declared {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, FieldError{Location: s.Location, Field: name, Message: s.AdditionalMessage})
	}

	for _, p := range s.Properties {
		value, present := obj[p.Name]
		if !present {
			if p.Required {
				errs = append(errs, FieldError{Location: s.Location, Field: p.Name, Message: s.RequiredMessage})
			}
			continue
		}

		violations := v.check(s.Location, p.Name, value, p.Constraints)
		if len(violations) > 0 && p.Message != "" {
			violations = Errors{{Location: s.Location, Field: p.Name, Message: p.Message}}
		}
		errs = append(errs, violations...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return obj, nil
}

func (v *Validator) check(loc Location, field string, value any, cs []Constraint) Errors {
	var errs Errors
	fail := func(c Constraint) {
		errs = append(errs, FieldError{Location: loc, Field: field, Message: c.message()})
	}

	for _, c := range cs {
		switch c.Kind {
		case KindType:
			if !hasType(value, c.Type) {
				fail(c)
			}

		case KindPattern:
			if s, ok := value.(string); ok && v.fields.Var(s, c.Tag) != nil {
				fail(c)
			}

		case KindMaxLength:
			if s, ok := value.(string); ok && v.fields.Var(s, "max="+strconv.Itoa(c.Limit)) != nil {
				fail(c)
			}

		case KindMinItems:
			if items, ok := value.([]any); ok && v.fields.Var(items, "min="+strconv.Itoa(c.Limit)) != nil {
				fail(c)
			}

		case KindMaxItems:
			if items, ok := value.([]any); ok && v.fields.Var(items, "max="+strconv.Itoa(c.Limit)) != nil {
				fail(c)
			}

		case KindUniqueItems:
			if items, ok := value.([]any); ok && v.fields.Var(canonical(items), "unique") != nil {
				fail(c)
			}

		case KindEnum:
			if s, ok := value.(string); !ok || !slices.Contains(c.Values, s) {
				fail(c)
			}

		case KindItems:
			if items, ok := value.([]any); ok {
				for i, item := range items {
					errs = append(errs, v.check(loc, field+"/"+strconv.Itoa(i), item, c.Items)...)
				}
			}
		}
	}

	return errs
}

func hasType(value any, t JSONType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return reflect.ValueOf(value).IsValid()
	}
}

// canonical renders items as comparable JSON text so that structurally equal
// values compare equal regardless of their Go representation.
func canonical(items []any) []string {
	out := make([]string, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			out[i] = fmt.Sprintf("%#v", item)
			continue
		}
		out[i] = string(b)
	}
	return out
}
