// Package collation provides case and accent insensitive text handling.
//
// Folding is used for substring search and sort keys are used for ordering.
// Both ignore letter case and diacritics, so "Cafe", "café" and "CAFÉ" are
// treated as the same text.
package collation

import (
	"bytes"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FieldSeparator joins folded fields in a search document. It cannot appear in
// a validated search phrase, so a phrase never matches across two fields.
const FieldSeparator = "\x1f"

// collate.Collator keeps internal buffers and is not safe for concurrent use.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
	},
}

// letters spells out the folded Latin letters that have no canonical
// decomposition into an ASCII base letter and combining marks.
var letters = strings.NewReplacer(
	"æ", "ae",
	"đ", "d",
	"ð", "d",
	"ħ", "h",
	"ı", "i",
	"ĳ", "ij",
	"ĸ", "k",
	"ŀ", "l",
	"ł", "l",
	"ŋ", "n",
	"ʼ", "'",
	"ø", "o",
	"œ", "oe",
	"þ", "th",
	"ŧ", "t",
)

// Fold returns s without combining marks, with Unicode case folding applied
// and with the remaining Latin letters spelled in ASCII.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		cases.Fold(),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return letters.Replace(folded)
}

// Key returns a binary sort key for s. Comparing two keys bytewise yields
// the same order as Compare.
func Key(s string) []byte {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)

	var buf collate.Buffer
	key := c.KeyFromString(&buf, s)
	return bytes.Clone(key)
}

// Compare orders a and b ignoring case and diacritics.
func Compare(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Document folds every field and joins the results into a single search text.
func Document(fields ...string) string {
	folded := make([]string, 0, len(fields))
	for _, f := range fields {
		folded = append(folded, Fold(f))
	}
	return strings.Join(folded, FieldSeparator)
}

// Contains reports whether the folded document contains the phrase.
func Contains(document, phrase string) bool {
	return strings.Contains(document, Fold(phrase))
}
