package model

// TextDetection is one recognized text span from an OCR engine: where it is,
// what it says, and how confident the recognizer was. Detections are
// immutable inputs; the pipeline never modifies them.
type TextDetection struct {
	Polygon    Polygon
	Text       string
	Confidence float64
}
