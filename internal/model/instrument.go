package model

import (
	"github.com/Payphone-Digital/instruments/pkg/collation"
	"gorm.io/datatypes"
)

type Instrument struct {
	ID        int                         `gorm:"column:_id;primaryKey;autoIncrement:false"`
	Name      string                      `gorm:"column:name;not null;uniqueIndex:idx_instruments_name"`
	Type      string                      `gorm:"column:type;not null"`
	Invented  string                      `gorm:"column:invented;not null"`
	Origin    string                      `gorm:"column:origin;not null"`
	Musicians datatypes.JSONSlice[string] `gorm:"column:musicians;type:jsonb;not null"`
	Songs     datatypes.JSONSlice[string] `gorm:"column:songs;type:jsonb;not null"`
	Brands    datatypes.JSONSlice[string] `gorm:"column:brands;type:jsonb;not null"`
	Tags      datatypes.JSONSlice[string] `gorm:"column:tags;type:jsonb;not null"`

	// Derived columns backing case and accent insensitive sort and search.
	NameKey    []byte `gorm:"column:name_key;type:bytea;not null;index:idx_instruments_name_key"`
	SearchText string `gorm:"column:search_text;type:text;not null"`
}

func (Instrument) TableName() string {
	return "instruments"
}

// Index recomputes the derived sort and search columns.
func (i *Instrument) Index() {
	i.NameKey = collation.Key(i.Name)
	fields := []string{i.Name, i.Type, i.Invented, i.Origin}
	fields = append(fields, i.Musicians...)
	fields = append(fields, i.Songs...)
	fields = append(fields, i.Brands...)
	fields = append(fields, i.Tags...)
	i.SearchText = collation.Document(fields...)
}

// Clone returns a deep copy.
func (i Instrument) Clone() Instrument {
	i.Musicians = append(datatypes.JSONSlice[string](nil), i.Musicians...)
	i.Songs = append(datatypes.JSONSlice[string](nil), i.Songs...)
	i.Brands = append(datatypes.JSONSlice[string](nil), i.Brands...)
	i.Tags = append(datatypes.JSONSlice[string](nil), i.Tags...)
	i.NameKey = append([]byte(nil), i.NameKey...)
	return i
}

// Counter stores the last identifier handed out for a collection.
type Counter struct {
	Name   string `gorm:"column:name;primaryKey"`
	LastID int    `gorm:"column:last_id;not null;default:0"`
}

func (Counter) TableName() string {
	return "counters"
}
