// Package idscan extracts structured identity fields from OCR text
// detections of African identity documents.
//
// Basic usage:
//
//	fields, err := idscan.FromDetections(front).
//	    Back(back).
//	    Country(idscan.Kenya).
//	    Fields()
//	if err != nil {
//	    // handle error
//	}
//
// With image dimensions and a logger:
//
//	fields, err := idscan.FromDetections(front).
//	    Back(back).
//	    ImageSize(1080, 720).
//	    WithLogger(logger).
//	    Country(idscan.Zambia).
//	    Fields()
//
// Detections come from any OCR engine that reports a quadrilateral, the
// recognized text and a confidence per region; the optional ocr package
// provides a Tesseract-backed adapter.
package idscan

import (
	"github.com/tsawler/idscan/model"
)

// FromDetections returns an Extractor over the front-side detections,
// ready for fluent configuration.
//
// Example:
//
//	fields, err := idscan.FromDetections(front).Country(idscan.Malawi).Fields()
func FromDetections(front []model.TextDetection) *Extractor {
	return &Extractor{
		front:   front,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	fields := idscan.Must(idscan.FromDetections(front).Country(idscan.Kenya).Fields())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
