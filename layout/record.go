package layout

import (
	"sort"

	"github.com/tsawler/idscan/model"
)

// Record is a text detection annotated with its centroid. Extractors work on
// records rather than raw detections so that positional comparisons do not
// recompute geometry on every test.
type Record struct {
	Detection model.TextDetection

	// CentX and CentY are the centroid of the detection polygon.
	CentX float64
	CentY float64
}

// Text returns the detected text.
func (r Record) Text() string {
	return r.Detection.Text
}

// Polygon returns the detection polygon.
func (r Record) Polygon() model.Polygon {
	return r.Detection.Polygon
}

// Confidence returns the detection confidence.
func (r Record) Confidence() float64 {
	return r.Detection.Confidence
}

// NewRecords annotates detections with centroids, preserving detection order.
// Some extraction strategies depend on the order the OCR engine emitted the
// detections, so no sorting happens here.
func NewRecords(detections []model.TextDetection) []Record {
	records := make([]Record, 0, len(detections))
	for _, d := range detections {
		c := d.Polygon.Centroid()
		records = append(records, Record{
			Detection: d,
			CentX:     c.X,
			CentY:     c.Y,
		})
	}
	return records
}

// SortByY returns a copy of records ordered top to bottom by centroid Y.
// The sort is stable so detections on the same visual line keep their
// relative order.
func SortByY(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CentY < sorted[j].CentY
	})
	return sorted
}

// SortByX returns a copy of records ordered left to right by centroid X.
func SortByX(records []Record) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CentX < sorted[j].CentX
	})
	return sorted
}
