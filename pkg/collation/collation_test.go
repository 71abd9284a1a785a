package collation

import (
	"bytes"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Guitar", want: "guitar"},
		{name: "acute accent", input: "Café", want: "cafe"},
		{name: "uppercase accent", input: "ÉCOLE", want: "ecole"},
		{name: "tilde", input: "Señor", want: "senor"},
		{name: "unchanged", input: "drum kit", want: "drum kit"},
		{name: "stroke l", input: "Łódź", want: "lodz"},
		{name: "slashed o", input: "Øresund", want: "oresund"},
		{name: "stroke d", input: "Đakovo", want: "dakovo"},
		{name: "eth", input: "Ðorð", want: "dord"},
		{name: "ae ligature", input: "Æolian", want: "aeolian"},
		{name: "oe ligature", input: "Œuvre", want: "oeuvre"},
		{name: "thorn", input: "Þórr", want: "thorr"},
		{name: "stroke h", input: "Ħamrun", want: "hamrun"},
		{name: "dotless i", input: "Kırşehir", want: "kirsehir"},
		{name: "stroke t", input: "Ŧest", want: "test"},
		{name: "kra", input: "ĸ", want: "k"},
		{name: "middle dot l", input: "Ŀ", want: "l"},
		{name: "ij ligature", input: "Ĳssel", want: "ijssel"},
		{name: "eng", input: "Ŋ", want: "n"},
		{name: "sharp s", input: "Straße", want: "strasse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCompare_IgnoresCaseAndAccents(t *testing.T) {
	if got := Compare("cafe", "CAFÉ"); got != 0 {
		t.Errorf("Expected equal comparison, got %d", got)
	}
	if got := Compare("apple", "Banana"); got >= 0 {
		t.Errorf("Expected apple before Banana, got %d", got)
	}
	if got := Compare("zither", "Accordion"); got <= 0 {
		t.Errorf("Expected zither after Accordion, got %d", got)
	}
}

func TestKey_MatchesCompare(t *testing.T) {
	pairs := [][2]string{
		{"apple", "Banana"},
		{"Éclair", "drum"},
		{"harp", "Harp"},
		{"violin", "Viola"},
	}

	for _, p := range pairs {
		want := Compare(p[0], p[1])
		got := bytes.Compare(Key(p[0]), Key(p[1]))
		if sign(got) != sign(want) {
			t.Errorf("Key order for %q vs %q: expected %d, got %d", p[0], p[1], want, got)
		}
	}
}

func TestContains(t *testing.T) {
	doc := Document("Acoustic Guitar", "Spain", "Café del Mar")

	if !Contains(doc, "cafe DEL") {
		t.Error("Expected folded phrase to match")
	}
	if !Contains(doc, "guitar") {
		t.Error("Expected single word to match")
	}
	if Contains(doc, "guitar spain") {
		t.Error("Expected phrase spanning two fields not to match")
	}
	if Contains(doc, "piano") {
		t.Error("Expected missing word not to match")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
