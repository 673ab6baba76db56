package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes characters and strips combining marks, so that
// accented letters compare equal to their unaccented base forms.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares raw OCR text for comparison. It lowercases the input,
// removes whitespace and apostrophes, and folds diacritics. Punctuation other
// than apostrophes is kept, since characters such as '<' carry meaning in
// machine-readable zones.
func Normalize(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsSpace(r) || r == '\'' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
