package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Payphone-Digital/instruments/pkg/collation"
)

func TestInstrument_Index(t *testing.T) {
	inst := Instrument{
		Name:      "Café Piano",
		Type:      "Keyboard",
		Invented:  "1700",
		Origin:    "Italy",
		Musicians: []string{"Glenn Gould"},
		Songs:     []string{"Goldberg Variations"},
		Brands:    []string{"Steinway"},
		Tags:      []string{"classical"},
	}
	inst.Index()

	if !bytes.Equal(inst.NameKey, collation.Key("cafe piano")) {
		t.Error("Expected name key to ignore case and accents")
	}
	for _, phrase := range []string{"cafe", "GOULD", "goldberg variations", "steinway"} {
		if !collation.Contains(inst.SearchText, phrase) {
			t.Errorf("Expected search text to contain %q", phrase)
		}
	}
	if strings.Contains(inst.SearchText, "Café") {
		t.Error("Expected search text to be folded")
	}
}

func TestInstrument_Clone(t *testing.T) {
	inst := Instrument{ID: 1, Name: "Harp", Tags: []string{"strings"}}
	clone := inst.Clone()
	clone.Tags[0] = "changed"

	if inst.Tags[0] != "strings" {
		t.Errorf("Expected original to be unchanged, got %q", inst.Tags[0])
	}
}
