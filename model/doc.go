// Package model defines the core data types shared across the extraction
// pipeline: 2D geometry (points, quadrilateral polygons, bounding boxes),
// the TextDetection input record produced by an OCR engine, and the Field
// output record produced by the per-country extractors.
//
// All types in this package are plain values with no behaviour beyond
// geometry queries. They are safe to copy and share across goroutines.
package model
