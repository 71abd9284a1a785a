package repository

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Payphone-Digital/instruments/internal/model"
	"github.com/Payphone-Digital/instruments/pkg/collation"
)

// MemoryInstrumentRepository keeps instruments in process memory. It applies
// the same search and ordering rules as the postgres store.
type MemoryInstrumentRepository struct {
	mu     sync.RWMutex
	items  map[int]model.Instrument
	names  map[string]int
	lastID int
}

func NewMemoryInstrumentRepository() *MemoryInstrumentRepository {
	return &MemoryInstrumentRepository{
		items: make(map[int]model.Instrument),
		names: make(map[string]int),
	}
}

func (r *MemoryInstrumentRepository) matching(search string) []model.Instrument {
	phrase := collation.Fold(search)
	out := make([]model.Instrument, 0, len(r.items))
	for _, inst := range r.items {
		if phrase == "" || strings.Contains(inst.SearchText, phrase) {
			out = append(out, inst)
		}
	}
	return out
}

func (r *MemoryInstrumentRepository) Count(ctx context.Context, search string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(search))), nil
}

func (r *MemoryInstrumentRepository) Find(ctx context.Context, opts FindOptions) ([]model.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	found := r.matching(opts.Search)
	r.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if opts.SortBy == SortByName {
			if c := bytes.Compare(a.NameKey, b.NameKey); c != 0 {
				if opts.Descending {
					return c > 0
				}
				return c < 0
			}
			return a.ID < b.ID
		}
		if opts.Descending {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})

	if opts.Offset >= len(found) {
		return []model.Instrument{}, nil
	}
	end := len(found)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}

	page := make([]model.Instrument, 0, end-opts.Offset)
	for _, inst := range found[opts.Offset:end] {
		page = append(page, inst.Clone())
	}
	return page, nil
}

func (r *MemoryInstrumentRepository) GetByID(ctx context.Context, id int) (*model.Instrument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := inst.Clone()
	return &clone, nil
}

func (r *MemoryInstrumentRepository) NextID(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	return r.lastID, nil
}

func (r *MemoryInstrumentRepository) Insert(ctx context.Context, inst *model.Instrument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	inst.Index()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.names[inst.Name]; taken {
		return ErrDuplicateName
	}
	if _, taken := r.items[inst.ID]; taken {
		return ErrDuplicateName
	}
	r.items[inst.ID] = inst.Clone()
	r.names[inst.Name] = inst.ID
	if inst.ID > r.lastID {
		r.lastID = inst.ID
	}
	return nil
}

func (r *MemoryInstrumentRepository) Replace(ctx context.Context, inst *model.Instrument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	inst.Index()

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[inst.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.names[inst.Name]; taken && owner != inst.ID {
		return ErrDuplicateName
	}

	delete(r.names, current.Name)
	r.items[inst.ID] = inst.Clone()
	r.names[inst.Name] = inst.ID
	return nil
}

func (r *MemoryInstrumentRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.names, inst.Name)
	return nil
}

func (r *MemoryInstrumentRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
