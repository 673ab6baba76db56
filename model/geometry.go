package model

import "math"

// Point represents a 2D point in image pixel coordinates.
// Y grows downward, matching OCR engine output.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Polygon is a text detection's quadrilateral, four vertices in OCR order:
// top-left, top-right, bottom-right, bottom-left. The quadrilateral is not
// necessarily axis-aligned; skewed text produces skewed polygons.
type Polygon [4]Point

// NewPolygon builds an axis-aligned polygon from two corner coordinates.
// Useful in tests and for adapters that only have rectangular boxes.
func NewPolygon(x1, y1, x2, y2 float64) Polygon {
	left := math.Min(x1, x2)
	right := math.Max(x1, x2)
	top := math.Min(y1, y2)
	bottom := math.Max(y1, y2)
	return Polygon{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: right, Y: bottom},
		{X: left, Y: bottom},
	}
}

// Centroid returns the arithmetic mean of the four vertices.
func (pg Polygon) Centroid() Point {
	return Point{
		X: (pg[0].X + pg[1].X + pg[2].X + pg[3].X) / 4,
		Y: (pg[0].Y + pg[1].Y + pg[2].Y + pg[3].Y) / 4,
	}
}

// LeftX returns the leftmost X coordinate of any vertex.
func (pg Polygon) LeftX() float64 {
	return math.Min(math.Min(pg[0].X, pg[1].X), math.Min(pg[2].X, pg[3].X))
}

// RightX returns the rightmost X coordinate of any vertex.
func (pg Polygon) RightX() float64 {
	return math.Max(math.Max(pg[0].X, pg[1].X), math.Max(pg[2].X, pg[3].X))
}

// TopY returns the smallest Y coordinate of any vertex (top edge of the
// polygon in image coordinates).
func (pg Polygon) TopY() float64 {
	return math.Min(math.Min(pg[0].Y, pg[1].Y), math.Min(pg[2].Y, pg[3].Y))
}

// BottomY returns the largest Y coordinate of any vertex.
func (pg Polygon) BottomY() float64 {
	return math.Max(math.Max(pg[0].Y, pg[1].Y), math.Max(pg[2].Y, pg[3].Y))
}

// LeftMidY returns the Y midpoint of the left edge (between the top-left and
// bottom-left vertices). Used by the line grouping test, which compares edge
// midpoints rather than centroids to tolerate skew.
func (pg Polygon) LeftMidY() float64 {
	return (pg[0].Y + pg[3].Y) / 2
}

// RightMidY returns the Y midpoint of the right edge (between the top-right
// and bottom-right vertices).
func (pg Polygon) RightMidY() float64 {
	return (pg[1].Y + pg[2].Y) / 2
}

// Height returns the smaller of the two edge heights. Skewed polygons report
// the conservative value, matching how relative text size is judged on the
// new-layout Kenyan card.
func (pg Polygon) Height() float64 {
	left := math.Abs(pg[3].Y - pg[0].Y)
	right := math.Abs(pg[1].Y - pg[2].Y)
	return math.Min(left, right)
}

// HorizontalOverlap reports whether the horizontal spans of the two polygons
// overlap at all.
func (pg Polygon) HorizontalOverlap(other Polygon) bool {
	return pg.RightX() > other.LeftX() && other.RightX() > pg.LeftX()
}
