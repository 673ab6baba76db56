package model

import (
	"math"
	"testing"
)

func TestPolygonCentroid(t *testing.T) {
	pg := NewPolygon(0, 0, 100, 40)
	c := pg.Centroid()
	if c.X != 50 || c.Y != 20 {
		t.Errorf("Expected centroid (50, 20), got (%f, %f)", c.X, c.Y)
	}
}

func TestPolygonEdges(t *testing.T) {
	// Skewed quadrilateral: right side sits lower than the left.
	pg := Polygon{
		{X: 10, Y: 10},
		{X: 110, Y: 14},
		{X: 110, Y: 34},
		{X: 10, Y: 30},
	}

	if pg.LeftX() != 10 {
		t.Errorf("Expected LeftX 10, got %f", pg.LeftX())
	}
	if pg.RightX() != 110 {
		t.Errorf("Expected RightX 110, got %f", pg.RightX())
	}
	if pg.TopY() != 10 {
		t.Errorf("Expected TopY 10, got %f", pg.TopY())
	}
	if pg.BottomY() != 34 {
		t.Errorf("Expected BottomY 34, got %f", pg.BottomY())
	}
	if pg.LeftMidY() != 20 {
		t.Errorf("Expected LeftMidY 20, got %f", pg.LeftMidY())
	}
	if pg.RightMidY() != 24 {
		t.Errorf("Expected RightMidY 24, got %f", pg.RightMidY())
	}
	if pg.Height() != 20 {
		t.Errorf("Expected Height 20, got %f", pg.Height())
	}
}

func TestPolygonHorizontalOverlap(t *testing.T) {
	a := NewPolygon(0, 0, 50, 20)
	b := NewPolygon(40, 100, 90, 120)
	c := NewPolygon(60, 0, 80, 20)

	if !a.HorizontalOverlap(b) {
		t.Error("Expected a and b to overlap horizontally")
	}
	if a.HorizontalOverlap(c) {
		t.Error("Expected a and c not to overlap horizontally")
	}
}

func TestPointDistance(t *testing.T) {
	d := Point{X: 0, Y: 0}.Distance(Point{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("Expected distance 5, got %f", d)
	}
}

func TestNewFieldEmptyValue(t *testing.T) {
	f := NewField("id_number", "", nil, 0.9)
	if f.Value != nil || f.Polygon != nil || f.Score != nil {
		t.Error("Empty value must produce a fully null field")
	}
}

func TestNewFieldKeepsMetadata(t *testing.T) {
	pg := NewPolygon(0, 0, 10, 10)
	f := NewField("gender", "FEMALE", &pg, 0.87)
	if f.Value == nil || *f.Value != "FEMALE" {
		t.Fatal("Expected value FEMALE")
	}
	if f.Polygon == nil || f.Score == nil {
		t.Fatal("Expected polygon and score to be set")
	}
	if *f.Score != 0.87 {
		t.Errorf("Expected score 0.87, got %f", *f.Score)
	}
}

func TestNullFieldsShape(t *testing.T) {
	names := []string{"First Name", "Last Name", "Gender"}
	fields := NullFields(names)
	if len(fields) != len(names) {
		t.Fatalf("Expected %d fields, got %d", len(names), len(fields))
	}
	for i, f := range fields {
		if f.Name != names[i] {
			t.Errorf("Field %d: expected name %q, got %q", i, names[i], f.Name)
		}
		if f.Value != nil || f.Polygon != nil || f.Score != nil {
			t.Errorf("Field %q: expected all-null field", f.Name)
		}
	}
}
