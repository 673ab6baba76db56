// Package layout provides spatial analysis of OCR text detections, including
// centroid-annotated records, vertical ordering, and grouping of detections
// into visual lines.
package layout
