// Package schema declares the request schemas of the instrument API.
package schema

import (
	"regexp"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/pkg/validation"
)

// Schema names
const (
	Params = "params"
	Query  = "query"
	Body   = "body"
)

// Pattern tags registered with the field validator
const (
	tagText = "instrument_text"
	tagID   = "instrument_id"
	tagPage = "listing_page"
)

var (
	textPattern = regexp.MustCompile(constants.TextPattern)
	idPattern   = regexp.MustCompile(constants.IDPattern)
	pagePattern = regexp.MustCompile(constants.PagePattern)
)

// New returns a validator holding the params, query and body schemas.
func New() (*validation.Validator, error) {
	return validation.New(ParamsSchema(), QuerySchema(), BodySchema())
}

func text() []validation.Constraint {
	return []validation.Constraint{
		validation.Type(validation.TypeString),
		validation.Pattern(tagText, textPattern).WithMessage(constants.MsgInvalidText),
		validation.MaxLength(constants.MaxTextLength),
	}
}

func textList() []validation.Constraint {
	return []validation.Constraint{
		validation.Type(validation.TypeArray),
		validation.Items(text()...),
		validation.MinItems(constants.MinArrayItems),
		validation.MaxItems(constants.MaxArrayItems),
		validation.UniqueItems(),
	}
}

// ParamsSchema validates the _id route parameter.
func ParamsSchema() *validation.Schema {
	return &validation.Schema{
		Name:              Params,
		Location:          validation.LocationParameter,
		AdditionalMessage: validation.MsgAdditionalParameters,
		RequiredMessage:   validation.MsgRequired,
		Properties: []validation.Property{
			{
				Name:     constants.ResponseFieldID,
				Required: true,
				Constraints: []validation.Constraint{
					validation.Type(validation.TypeString),
					validation.Pattern(tagID, idPattern),
					validation.MaxLength(constants.MaxIDLength),
				},
				Message: constants.MsgInvalidID,
			},
		},
	}
}

// QuerySchema validates the listing query string.
func QuerySchema() *validation.Schema {
	return &validation.Schema{
		Name:              Query,
		Location:          validation.LocationParameter,
		AdditionalMessage: validation.MsgAdditionalParameters,
		RequiredMessage:   validation.MsgRequired,
		Properties: []validation.Property{
			{
				Name:        constants.QueryParamSearch,
				Constraints: text(),
			},
			{
				Name: constants.QueryParamPage,
				Constraints: []validation.Constraint{
					validation.Type(validation.TypeString),
					validation.Pattern(tagPage, pagePattern).WithMessage(constants.MsgInvalidPage),
				},
			},
			{
				Name:        constants.QueryParamPageSize,
				Constraints: []validation.Constraint{validation.Enum(constants.PageSizes...)},
			},
			{
				Name:        constants.QueryParamSortBy,
				Constraints: []validation.Constraint{validation.Enum(constants.SortFields...)},
			},
			{
				Name:        constants.QueryParamSortDirection,
				Constraints: []validation.Constraint{validation.Enum(constants.SortDirections...)},
			},
		},
	}
}

// BodySchema validates an instrument document.
func BodySchema() *validation.Schema {
	return &validation.Schema{
		Name:              Body,
		Location:          validation.LocationProperty,
		AdditionalMessage: validation.MsgAdditionalProperties,
		RequiredMessage:   validation.MsgRequired,
		Properties: []validation.Property{
			{Name: "name", Required: true, Constraints: text()},
			{Name: "type", Required: true, Constraints: []validation.Constraint{validation.Enum(constants.InstrumentTypes...)}},
			{Name: "invented", Required: true, Constraints: text()},
			{Name: "origin", Required: true, Constraints: text()},
			{Name: "musicians", Required: true, Constraints: textList()},
			{Name: "songs", Required: true, Constraints: textList()},
			{Name: "brands", Required: true, Constraints: textList()},
			{Name: "tags", Required: true, Constraints: textList()},
		},
	}
}
