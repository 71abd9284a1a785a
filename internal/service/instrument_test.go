package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/Payphone-Digital/instruments/internal/dto"
	apperrors "github.com/Payphone-Digital/instruments/internal/errors"
	"github.com/Payphone-Digital/instruments/internal/repository"
)

const testListingURL = "http://localhost:8080/api"

func newRequest(name string) dto.InstrumentRequest {
	return dto.InstrumentRequest{
		Name:      name,
		Type:      "Other",
		Invented:  "1900",
		Origin:    "Somewhere",
		Musicians: []string{"Someone"},
		Songs:     []string{"Some song"},
		Brands:    []string{"Some brand"},
		Tags:      []string{"tag"},
	}
}

func newTestService(t *testing.T, names ...string) *InstrumentService {
	t.Helper()
	svc := NewInstrumentService(repository.NewMemoryInstrumentRepository(), nil, testListingURL)
	for _, name := range names {
		if _, err := svc.Create(context.Background(), newRequest(name)); err != nil {
			t.Fatalf("Failed to create %q: %v", name, err)
		}
	}
	return svc
}

func numberedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Instrument %02d", i+1)
	}
	return names
}

func TestInstrumentService_List_Pages(t *testing.T) {
	svc := newTestService(t, numberedNames(12)...)

	tests := []struct {
		name         string
		page         int
		wantResults  int
		wantFirstID  int
		wantNext     string
		wantPrevious string
	}{
		{"first page", 1, 5, 1, testListingURL + "?page=2&page_size=5", ""},
		{"middle page", 2, 5, 6, testListingURL + "?page=3&page_size=5", testListingURL + "?page=1&page_size=5"},
		{"last page", 3, 2, 11, "", testListingURL + "?page=2&page_size=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := url.Values{"page": {fmt.Sprint(tt.page)}, "page_size": {"5"}}
			res, err := svc.List(context.Background(), dto.ListingQuery{Page: tt.page, PageSize: 5}, raw)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if res.Count != 12 {
				t.Errorf("Expected count 12, got %d", res.Count)
			}
			if len(res.Results) != tt.wantResults {
				t.Errorf("Expected %d results, got %d", tt.wantResults, len(res.Results))
			}
			if res.Results[0].ID != tt.wantFirstID {
				t.Errorf("Expected first id %d, got %d", tt.wantFirstID, res.Results[0].ID)
			}
			if res.Next != tt.wantNext {
				t.Errorf("Expected next %q, got %q", tt.wantNext, res.Next)
			}
			if res.Previous != tt.wantPrevious {
				t.Errorf("Expected previous %q, got %q", tt.wantPrevious, res.Previous)
			}
		})
	}
}

func TestInstrumentService_List_Defaults(t *testing.T) {
	svc := newTestService(t, "Viola")

	res, err := svc.List(context.Background(), dto.ListingQuery{}, url.Values{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.PageSize != 10 || res.SortBy != "_id" || res.SortDirection != "asc" {
		t.Errorf("Expected defaults 10/_id/asc, got %d/%s/%s", res.PageSize, res.SortBy, res.SortDirection)
	}
	if res.Next != "" || res.Previous != "" {
		t.Errorf("Expected no links on a single page, got %q %q", res.Next, res.Previous)
	}
}

func TestInstrumentService_List_NotFound(t *testing.T) {
	svc := newTestService(t, numberedNames(3)...)

	tests := []struct {
		name  string
		query dto.ListingQuery
		want  error
	}{
		{"no matches", dto.ListingQuery{Search: "nothing like this"}, apperrors.ErrNoResults},
		{"page past the end", dto.ListingQuery{Page: 2}, apperrors.ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.query, url.Values{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInstrumentService_List_CollatedSortAndSearch(t *testing.T) {
	svc := newTestService(t, "Érhu", "banjo", "Cello", "erhu classic")

	res, err := svc.List(context.Background(), dto.ListingQuery{SortBy: "name"}, url.Values{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{"banjo", "Cello", "Érhu", "erhu classic"}
	for i, name := range want {
		if res.Results[i].Name != name {
			t.Errorf("Expected %q at %d, got %q", name, i, res.Results[i].Name)
		}
	}

	res, err = svc.List(context.Background(), dto.ListingQuery{SortBy: "name", SortDirection: "desc"}, url.Values{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Results[0].Name != "erhu classic" {
		t.Errorf("Expected erhu classic first in descending order, got %q", res.Results[0].Name)
	}

	res, err = svc.List(context.Background(), dto.ListingQuery{Search: "ERHU"}, url.Values{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Expected 2 matches for ERHU, got %d", res.Count)
	}
}

func TestInstrumentService_List_ASCIISearchFindsNonASCII(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	records := []struct {
		name   string
		origin string
	}{
		{"Fujara", "Łódź"},
		{"Langeleik", "Øresund"},
		{"Aeolian harp", "Æolia"},
		{"Langspil", "Þingvellir"},
		{"Tambura", "Đakovo"},
	}
	for _, r := range records {
		req := newRequest(r.name)
		req.Origin = r.origin
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("Failed to create %q: %v", r.name, err)
		}
	}

	tests := []struct {
		search string
		want   string
	}{
		{"Lodz", "Fujara"},
		{"oresund", "Langeleik"},
		{"AEOLIA", "Aeolian harp"},
		{"thingvellir", "Langspil"},
		{"Dakovo", "Tambura"},
		{"Łódź", "Fujara"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			res, err := svc.List(ctx, dto.ListingQuery{Search: tt.search}, url.Values{})
			if err != nil {
				t.Fatalf("Expected a match for %q, got %v", tt.search, err)
			}
			if res.Count != 1 || res.Results[0].Name != tt.want {
				t.Errorf("Expected only %q, got %d results", tt.want, res.Count)
			}
		})
	}
}

func TestInstrumentService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	id, err := svc.Create(ctx, newRequest("Oboe"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != 1 {
		t.Errorf("Expected id 1, got %d", id)
	}

	if _, err := svc.Create(ctx, newRequest("Oboe")); !errors.Is(err, apperrors.ErrNameExists) {
		t.Errorf("Expected ErrNameExists, got %v", err)
	}

	got, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Name != "Oboe" {
		t.Errorf("Expected Oboe, got %q", got.Name)
	}

	if err := svc.Replace(ctx, id, newRequest("English horn")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	got, _ = svc.GetByID(ctx, id)
	if got.Name != "English horn" {
		t.Errorf("Expected English horn, got %q", got.Name)
	}

	if err := svc.Replace(ctx, 42, newRequest("Bassoon")); !errors.Is(err, apperrors.ErrInstrumentNotFound) {
		t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.GetByID(ctx, id); !errors.Is(err, apperrors.ErrInstrumentNotFound) {
		t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, apperrors.ErrInstrumentNotFound) {
		t.Errorf("Expected ErrInstrumentNotFound, got %v", err)
	}
}

func TestInstrumentService_Replace_DuplicateName(t *testing.T) {
	svc := newTestService(t, "Flute", "Piccolo")

	err := svc.Replace(context.Background(), 2, newRequest("Flute"))
	if !errors.Is(err, apperrors.ErrNameExists) {
		t.Errorf("Expected ErrNameExists, got %v", err)
	}
	if err := svc.Replace(context.Background(), 1, newRequest("Flute")); err != nil {
		t.Errorf("Expected replacing with the same name to succeed, got %v", err)
	}
}
