package pagination

import (
	"net/url"
	"testing"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		pageSize int
		want     int
	}{
		{name: "empty", count: 0, pageSize: 10, want: 0},
		{name: "single partial page", count: 3, pageSize: 10, want: 1},
		{name: "exact multiple", count: 20, pageSize: 10, want: 2},
		{name: "remainder", count: 21, pageSize: 10, want: 3},
		{name: "page size five", count: 11, pageSize: 5, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumPages(tt.count, tt.pageSize); got != tt.want {
				t.Errorf("Expected %d pages, got %d", tt.want, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 10); got != 0 {
		t.Errorf("Expected offset 0, got %d", got)
	}
	if got := Offset(3, 25); got != 50 {
		t.Errorf("Expected offset 50, got %d", got)
	}
}

func TestExists(t *testing.T) {
	if !Exists(21, 3, 10) {
		t.Error("Expected page 3 of 21 items to exist")
	}
	if Exists(21, 4, 10) {
		t.Error("Expected page 4 of 21 items not to exist")
	}
	if Exists(0, 1, 10) {
		t.Error("Expected no pages for empty result")
	}
}

func TestNavigation(t *testing.T) {
	endpoint := "http://localhost:8080/api"

	t.Run("first page has only next", func(t *testing.T) {
		query := url.Values{"search": {"guitar"}}
		links := Navigation(endpoint, query, 1, 3)

		if links.Previous != "" {
			t.Errorf("Expected no previous link, got %q", links.Previous)
		}
		want := "http://localhost:8080/api?page=2&search=guitar"
		if links.Next != want {
			t.Errorf("Expected %q, got %q", want, links.Next)
		}
	})

	t.Run("middle page keeps other parameters", func(t *testing.T) {
		query := url.Values{"page": {"2"}, "page_size": {"5"}, "sort_by": {"name"}}
		links := Navigation(endpoint, query, 2, 3)

		wantNext := "http://localhost:8080/api?page=3&page_size=5&sort_by=name"
		wantPrev := "http://localhost:8080/api?page=1&page_size=5&sort_by=name"
		if links.Next != wantNext {
			t.Errorf("Expected %q, got %q", wantNext, links.Next)
		}
		if links.Previous != wantPrev {
			t.Errorf("Expected %q, got %q", wantPrev, links.Previous)
		}
		if query.Get("page") != "2" {
			t.Errorf("Expected original query to be untouched, got page=%s", query.Get("page"))
		}
	})

	t.Run("last page has only previous", func(t *testing.T) {
		links := Navigation(endpoint, url.Values{"page": {"3"}}, 3, 3)
		if links.Next != "" {
			t.Errorf("Expected no next link, got %q", links.Next)
		}
		if links.Previous != "http://localhost:8080/api?page=2" {
			t.Errorf("Unexpected previous link %q", links.Previous)
		}
	})

	t.Run("single page has no links", func(t *testing.T) {
		links := Navigation(endpoint, nil, 1, 1)
		if links.Next != "" || links.Previous != "" {
			t.Errorf("Expected no links, got %+v", links)
		}
	})

	t.Run("spaces are encoded", func(t *testing.T) {
		links := Navigation(endpoint, url.Values{"search": {"bass guitar"}}, 1, 2)
		want := "http://localhost:8080/api?page=2&search=bass+guitar"
		if links.Next != want {
			t.Errorf("Expected %q, got %q", want, links.Next)
		}
	})
}
