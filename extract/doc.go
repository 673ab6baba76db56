// Package extract provides the building blocks shared by the per-country
// field extractors: the per-call extraction context, anchor search,
// anchor-relative extrapolation, nearest-neighbor lookups, date parsing with
// century disambiguation, and OCR character-confusion correction.
//
// Extractors never abort a call. Any internal failure in one field degrades
// to a null field for that field only, logged through the context's logger.
package extract
