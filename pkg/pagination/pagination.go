// Package pagination computes page arithmetic and navigation links for
// listing endpoints.
package pagination

import (
	"net/url"
	"strconv"
)

// PageParam is the query parameter rewritten in navigation links.
const PageParam = "page"

// Links holds the absolute URLs of the neighbouring pages. An empty string
// means the link does not exist.
type Links struct {
	Next     string
	Previous string
}

// NumPages returns ceil(count / pageSize).
func NumPages(count int64, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((count + size - 1) / size)
}

// Offset returns the number of rows skipped before the given 1-based page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// Exists reports whether page lies within the result set.
func Exists(count int64, page, pageSize int) bool {
	return page >= 1 && page <= NumPages(count, pageSize)
}

// Navigation builds next and previous links for page out of numPages.
// Every parameter of the original query is preserved and only page changes.
func Navigation(endpoint string, query url.Values, page, numPages int) Links {
	var links Links
	if page < numPages {
		links.Next = link(endpoint, query, page+1)
	}
	if page > 1 {
		links.Previous = link(endpoint, query, page-1)
	}
	return links
}

func link(endpoint string, query url.Values, page int) string {
	params := make(url.Values, len(query)+1)
	for k, v := range query {
		params[k] = append([]string(nil), v...)
	}
	params.Set(PageParam, strconv.Itoa(page))
	return endpoint + "?" + params.Encode()
}
