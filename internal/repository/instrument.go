package repository

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/instruments/internal/model"
)

// Storage errors
var (
	ErrNotFound      = errors.New("instrument not found")
	ErrDuplicateName = errors.New("instrument name already exists")
)

// SortField names a sortable column.
type SortField string

const (
	SortByID   SortField = "_id"
	SortByName SortField = "name"
)

// FindOptions selects one page of instruments.
type FindOptions struct {
	Search     string
	SortBy     SortField
	Descending bool
	Offset     int
	Limit      int
}

// InstrumentStore persists instruments. Search matches a phrase against every
// text field ignoring case and diacritics; name ordering uses the same rules
// and ties are broken by ascending _id.
type InstrumentStore interface {
	Count(ctx context.Context, search string) (int64, error)
	Find(ctx context.Context, opts FindOptions) ([]model.Instrument, error)
	GetByID(ctx context.Context, id int) (*model.Instrument, error)
	NextID(ctx context.Context) (int, error)
	Insert(ctx context.Context, inst *model.Instrument) error
	Replace(ctx context.Context, inst *model.Instrument) error
	Delete(ctx context.Context, id int) error
	Ping(ctx context.Context) error
}

var (
	_ InstrumentStore = (*InstrumentRepository)(nil)
	_ InstrumentStore = (*MemoryInstrumentRepository)(nil)
)
