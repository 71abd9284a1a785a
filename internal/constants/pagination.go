package constants

// Listing Query Parameters
const (
	QueryParamSearch        = "search"
	QueryParamPage          = "page"
	QueryParamPageSize      = "page_size"
	QueryParamSortBy        = "sort_by"
	QueryParamSortDirection = "sort_direction"
)

// Default Listing Values
const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	DefaultSortBy        = SortByID
	DefaultSortDirection = SortAsc
)

// Sort fields
const (
	SortByID   = "_id"
	SortByName = "name"
)

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Allowed listing values
var (
	PageSizes      = []string{"5", "10", "25"}
	SortFields     = []string{SortByID, SortByName}
	SortDirections = []string{SortAsc, SortDesc}
)
