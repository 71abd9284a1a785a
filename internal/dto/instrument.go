package dto

import (
	"strconv"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/model"
)

// InstrumentRequest is a validated instrument document from a create or
// replace request.
type InstrumentRequest struct {
	Name      string   `json:"name" yaml:"name"`
	Type      string   `json:"type" yaml:"type"`
	Invented  string   `json:"invented" yaml:"invented"`
	Origin    string   `json:"origin" yaml:"origin"`
	Musicians []string `json:"musicians" yaml:"musicians"`
	Songs     []string `json:"songs" yaml:"songs"`
	Brands    []string `json:"brands" yaml:"brands"`
	Tags      []string `json:"tags" yaml:"tags"`
}

type InstrumentResponse struct {
	ID        int      `json:"_id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Invented  string   `json:"invented"`
	Origin    string   `json:"origin"`
	Musicians []string `json:"musicians"`
	Songs     []string `json:"songs"`
	Brands    []string `json:"brands"`
	Tags      []string `json:"tags"`
}

// InstrumentFromMap builds a request from input that already passed the body
// schema.
func InstrumentFromMap(doc map[string]any) InstrumentRequest {
	return InstrumentRequest{
		Name:      stringField(doc, "name"),
		Type:      stringField(doc, "type"),
		Invented:  stringField(doc, "invented"),
		Origin:    stringField(doc, "origin"),
		Musicians: listField(doc, "musicians"),
		Songs:     listField(doc, "songs"),
		Brands:    listField(doc, "brands"),
		Tags:      listField(doc, "tags"),
	}
}

// ToModel converts the request into a storage record with the given id.
func (r InstrumentRequest) ToModel(id int) *model.Instrument {
	return &model.Instrument{
		ID:        id,
		Name:      r.Name,
		Type:      r.Type,
		Invented:  r.Invented,
		Origin:    r.Origin,
		Musicians: append([]string(nil), r.Musicians...),
		Songs:     append([]string(nil), r.Songs...),
		Brands:    append([]string(nil), r.Brands...),
		Tags:      append([]string(nil), r.Tags...),
	}
}

func NewInstrumentResponse(m *model.Instrument) InstrumentResponse {
	return InstrumentResponse{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		Invented:  m.Invented,
		Origin:    m.Origin,
		Musicians: append([]string{}, m.Musicians...),
		Songs:     append([]string{}, m.Songs...),
		Brands:    append([]string{}, m.Brands...),
		Tags:      append([]string{}, m.Tags...),
	}
}

// ListingQuery holds listing parameters. Zero values mean the parameter was
// not supplied until Normalize fills in the defaults.
type ListingQuery struct {
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// ListingQueryFromMap builds a query from input that already passed the
// query schema.
func ListingQueryFromMap(q map[string]any) ListingQuery {
	return ListingQuery{
		Search:        stringField(q, constants.QueryParamSearch),
		Page:          intField(q, constants.QueryParamPage),
		PageSize:      intField(q, constants.QueryParamPageSize),
		SortBy:        stringField(q, constants.QueryParamSortBy),
		SortDirection: stringField(q, constants.QueryParamSortDirection),
	}
}

// Normalize fills defaults for every parameter that was not supplied.
func (q ListingQuery) Normalize() ListingQuery {
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = constants.DefaultPageSize
	}
	if q.SortBy == "" {
		q.SortBy = constants.DefaultSortBy
	}
	if q.SortDirection == "" {
		q.SortDirection = constants.DefaultSortDirection
	}
	return q
}

// CacheKey identifies the page selected by a normalized query.
func (q ListingQuery) CacheKey() string {
	return strconv.Quote(q.Search) + ":" +
		strconv.Itoa(q.Page) + ":" +
		strconv.Itoa(q.PageSize) + ":" +
		q.SortBy + ":" +
		q.SortDirection
}

// ListingPage is one page of search results before navigation links are
// attached.
type ListingPage struct {
	Count    int64                `json:"count"`
	NumPages int                  `json:"num_pages"`
	Results  []InstrumentResponse `json:"results"`
}

// PageResult is the listing response body.
type PageResult struct {
	Count         int64                `json:"count"`
	PageSize      int                  `json:"page_size"`
	SortBy        string               `json:"sort_by"`
	SortDirection string               `json:"sort_direction"`
	Next          string               `json:"next,omitempty"`
	Previous      string               `json:"previous,omitempty"`
	Results       []InstrumentResponse `json:"results"`
}

func stringField(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func intField(doc map[string]any, key string) int {
	s, ok := doc[key].(string)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func listField(doc map[string]any, key string) []string {
	items, _ := doc[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
