package extract

import "strings"

// digitConfusions maps characters the OCR engine commonly mistakes for
// digits to the digit they usually stand for on printed ID numbers.
var digitConfusions = map[rune]rune{
	'I': '1', 'i': '1',
	'A': '1', 'a': '1',
	'H': '4', 'h': '4',
	'O': '0', 'o': '0',
	'S': '3', 's': '3',
	'F': '7', 'f': '7',
	'G': '9', 'g': '9',
	'Q': '9', 'q': '9',
	'Z': '2', 'z': '2',
	'/': '1',
}

// CorrectDigits rewrites confused characters in an ID-number token to their
// digit equivalents. Characters without a known confusion pass through
// unchanged.
func CorrectDigits(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if d, ok := digitConfusions[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
