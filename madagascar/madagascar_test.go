package madagascar

import (
	"testing"

	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/model"
)

func det(x1, y1, x2, y2 float64, text string) model.TextDetection {
	return model.TextDetection{
		Polygon:    model.NewPolygon(x1, y1, x2, y2),
		Text:       text,
		Confidence: 0.9,
	}
}

func newContext(front []model.TextDetection) *extract.Context {
	ctx := extract.NewContext(front, nil, nil)
	ctx.ImageWidth = 1000
	ctx.ImageHeight = 700
	return ctx
}

func idField(t *testing.T, fields []model.Field) model.Field {
	t.Helper()
	if len(fields) != len(Schema()) {
		t.Fatalf("Expected %d fields, got %d", len(Schema()), len(fields))
	}
	if fields[0].Name != FieldIDNumber {
		t.Fatalf("Expected %s first, got %s", FieldIDNumber, fields[0].Name)
	}
	return fields[0]
}

func TestExtractFieldsDirect(t *testing.T) {
	front := []model.TextDetection{
		det(100, 20, 500, 50, "REPOBLIKAN'I MADAGASIKARA"),
		det(100, 100, 260, 130, "Laharana"),
		det(700, 160, 780, 190, "12345"),
		det(120, 160, 400, 190, "101 231 456 789"),
		det(120, 260, 200, 290, "999"),
	}

	fields := ExtractFields(newContext(front))
	f := idField(t, fields)
	if f.Value == nil || *f.Value != "101231456789" {
		t.Fatalf("Expected ID 101231456789, got %v", f.Value)
	}
	if f.Polygon == nil || f.Score == nil {
		t.Error("Resolved ID number is missing metadata")
	}

	for _, other := range fields[1:] {
		if other.Value != nil {
			t.Errorf("Expected %s null, got %q", other.Name, *other.Value)
		}
	}
}

func TestExtractFieldsConfusedCharacters(t *testing.T) {
	front := []model.TextDetection{
		det(100, 100, 260, 130, "Laharana"),
		det(120, 160, 300, 190, "A23O5671"),
	}

	f := idField(t, ExtractFields(newContext(front)))
	if f.Value == nil || *f.Value != "12305671" {
		t.Fatalf("Expected ID 12305671, got %v", f.Value)
	}
}

func TestSegmentedFallback(t *testing.T) {
	// The fragments sit right of the label column, so the direct read
	// finds nothing and the row-grouping fallback assembles them.
	front := []model.TextDetection{
		det(100, 100, 260, 130, "Laharana"),
		det(520, 160, 600, 190, "101 2"),
		det(610, 160, 660, 190, "3456"),
		det(670, 160, 700, 190, "78"),
	}

	f := idField(t, ExtractFields(newContext(front)))
	if f.Value == nil || *f.Value != "1012345678" {
		t.Fatalf("Expected ID 1012345678, got %v", f.Value)
	}
}

func TestShortDirectReadPrefersSegmented(t *testing.T) {
	// A three-character direct hit is treated as a fragment; the widest
	// fragment row below the label wins instead.
	front := []model.TextDetection{
		det(100, 100, 260, 130, "Laharana"),
		det(140, 150, 200, 175, "123"),
		det(300, 200, 360, 225, "45 6"),
		det(400, 200, 450, 225, "789"),
	}

	f := idField(t, ExtractFields(newContext(front)))
	if f.Value == nil || *f.Value != "456789" {
		t.Fatalf("Expected ID 456789, got %v", f.Value)
	}
}

func TestSegmentPunctuationDropped(t *testing.T) {
	front := []model.TextDetection{
		det(100, 100, 260, 130, "Laharana"),
		det(520, 160, 580, 190, "4?5"),
		det(600, 160, 660, 190, "12:3"),
	}

	f := idField(t, ExtractFields(newContext(front)))
	if f.Value == nil || *f.Value != "45123" {
		t.Fatalf("Expected ID 45123, got %v", f.Value)
	}
}

func TestNoLabelYieldsNull(t *testing.T) {
	front := []model.TextDetection{
		det(100, 20, 500, 50, "REPOBLIKAN'I MADAGASIKARA"),
		det(120, 160, 400, 190, "101 231 456 789"),
	}

	f := idField(t, ExtractFields(newContext(front)))
	if f.Value != nil {
		t.Fatalf("Expected null ID, got %q", *f.Value)
	}
	if f.Polygon != nil || f.Score != nil {
		t.Error("Null ID carries metadata")
	}
}

func TestEmptyInput(t *testing.T) {
	fields := ExtractFields(newContext(nil))
	if len(fields) != len(Schema()) {
		t.Fatalf("Expected %d fields, got %d", len(Schema()), len(fields))
	}
	for _, f := range fields {
		if f.Value != nil || f.Polygon != nil || f.Score != nil {
			t.Errorf("Expected %s fully null", f.Name)
		}
	}
}
