package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Payphone-Digital/instruments/internal/model"
)

func newInstrument(id int, name string, tags ...string) *model.Instrument {
	if len(tags) == 0 {
		tags = []string{"misc"}
	}
	return &model.Instrument{
		ID:        id,
		Name:      name,
		Type:      "Other",
		Invented:  "unknown",
		Origin:    "unknown",
		Musicians: []string{"someone"},
		Songs:     []string{"something"},
		Brands:    []string{"brand"},
		Tags:      tags,
	}
}

func seededStore(t *testing.T) *MemoryInstrumentRepository {
	t.Helper()
	ctx := context.Background()
	store := NewMemoryInstrumentRepository()
	for _, inst := range []*model.Instrument{
		newInstrument(1, "zither", "folk"),
		newInstrument(2, "Accordion", "folk"),
		newInstrument(3, "Éclair Horn", "brass"),
		newInstrument(4, "banjo", "folk", "café music"),
		newInstrument(5, "Cello"),
	} {
		if err := store.Insert(ctx, inst); err != nil {
			t.Fatalf("Expected no error seeding %s, got %v", inst.Name, err)
		}
	}
	return store
}

func names(instruments []model.Instrument) []string {
	out := make([]string, len(instruments))
	for i, inst := range instruments {
		out[i] = inst.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemoryInstrumentRepository_Count(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	tests := []struct {
		search string
		want   int64
	}{
		{search: "", want: 5},
		{search: "folk", want: 3},
		{search: "FOLK", want: 3},
		{search: "cafe", want: 1},
		{search: "eclair", want: 1},
		{search: "piano", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got, err := store.Count(ctx, tt.search)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMemoryInstrumentRepository_FindSorting(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts FindOptions
		want []string
	}{
		{
			name: "id ascending",
			opts: FindOptions{SortBy: SortByID, Limit: 10},
			want: []string{"zither", "Accordion", "Éclair Horn", "banjo", "Cello"},
		},
		{
			name: "id descending",
			opts: FindOptions{SortBy: SortByID, Descending: true, Limit: 10},
			want: []string{"Cello", "banjo", "Éclair Horn", "Accordion", "zither"},
		},
		{
			name: "name ignores case and accents",
			opts: FindOptions{SortBy: SortByName, Limit: 10},
			want: []string{"Accordion", "banjo", "Cello", "Éclair Horn", "zither"},
		},
		{
			name: "name descending",
			opts: FindOptions{SortBy: SortByName, Descending: true, Limit: 10},
			want: []string{"zither", "Éclair Horn", "Cello", "banjo", "Accordion"},
		},
		{
			name: "second page",
			opts: FindOptions{SortBy: SortByName, Offset: 2, Limit: 2},
			want: []string{"Cello", "Éclair Horn"},
		},
		{
			name: "last partial page",
			opts: FindOptions{SortBy: SortByName, Offset: 4, Limit: 2},
			want: []string{"zither"},
		},
		{
			name: "search with paging",
			opts: FindOptions{Search: "folk", SortBy: SortByName, Limit: 2},
			want: []string{"Accordion", "banjo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Find(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !equalStrings(names(got), tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, names(got))
			}
		})
	}
}

func TestMemoryInstrumentRepository_NameTieBreaksByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryInstrumentRepository()
	_ = store.Insert(ctx, newInstrument(2, "cafe"))
	_ = store.Insert(ctx, newInstrument(1, "Café"))

	got, err := store.Find(ctx, FindOptions{SortBy: SortByName, Limit: 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("Expected ties ordered by _id, got %v and %v", got[0].ID, got[1].ID)
	}
}

func TestMemoryInstrumentRepository_Mutations(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, newInstrument(6, "Cello")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName on insert, got %v", err)
	}

	if err := store.Replace(ctx, newInstrument(1, "Cello")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName on replace, got %v", err)
	}
	if err := store.Replace(ctx, newInstrument(99, "Tuba")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on replace, got %v", err)
	}
	if err := store.Replace(ctx, newInstrument(1, "Zither")); err != nil {
		t.Fatalf("Expected rename to succeed, got %v", err)
	}

	got, err := store.GetByID(ctx, 1)
	if err != nil || got.Name != "Zither" {
		t.Errorf("Expected renamed instrument, got %v, %v", got, err)
	}
	if err := store.Insert(ctx, newInstrument(7, "zither")); err != nil {
		t.Errorf("Expected old name to be free after rename, got %v", err)
	}

	if err := store.Delete(ctx, 1); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
	if _, err := store.GetByID(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryInstrumentRepository_ReturnsCopies(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	got, _ := store.GetByID(ctx, 5)
	got.Tags[0] = "changed"

	again, _ := store.GetByID(ctx, 5)
	if again.Tags[0] != "misc" {
		t.Errorf("Expected stored record to be unchanged, got %q", again.Tags[0])
	}
}

func TestMemoryInstrumentRepository_NextIDConcurrent(t *testing.T) {
	store := NewMemoryInstrumentRepository()
	ctx := context.Background()

	const workers = 50
	ids := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.NextID(ctx)
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Errorf("Expected %d distinct ids, got %d", workers, len(seen))
	}
}

func TestMemoryInstrumentRepository_CancelledContext(t *testing.T) {
	store := seededStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Count(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
