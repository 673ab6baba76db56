// Package fuzzy provides approximate text matching for noisy OCR output.
// Matching is performed on normalized text: lowercased, whitespace and
// apostrophes removed, and diacritics folded to their base characters, so
// that "Côte d'Ivoire" and "cotedivoire" compare equal.
package fuzzy
