package extract

import (
	"math"
	"testing"

	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

func rec(x1, y1, x2, y2 float64, text string) layout.Record {
	return layout.NewRecords([]model.TextDetection{{
		Polygon:    model.NewPolygon(x1, y1, x2, y2),
		Text:       text,
		Confidence: 0.9,
	}})[0]
}

func TestGuardRecovers(t *testing.T) {
	ctx := NewContext(nil, nil, nil)

	f := ctx.Guard("id_number", func() model.Field {
		var records []layout.Record
		return model.NewField("id_number", records[3].Text(), nil, 0.5)
	})

	if f.Name != "id_number" {
		t.Errorf("Expected field name preserved, got %q", f.Name)
	}
	if f.Value != nil || f.Polygon != nil || f.Score != nil {
		t.Error("Expected null field after panic")
	}
}

func TestGuardPassesThrough(t *testing.T) {
	ctx := NewContext(nil, nil, nil)

	f := ctx.Guard("gender", func() model.Field {
		return model.NewField("gender", "MALE", nil, 0.95)
	})
	if f.Value == nil || *f.Value != "MALE" {
		t.Error("Expected field value to pass through Guard")
	}
}

func TestContextIDsDiffer(t *testing.T) {
	a := NewContext(nil, nil, nil)
	b := NewContext(nil, nil, nil)
	if a.CallID == b.CallID {
		t.Error("Expected distinct call IDs per context")
	}
}

func TestFindAnchor(t *testing.T) {
	records := []layout.Record{
		rec(0, 0, 100, 20, "JAMHURI YA KENYA"),
		rec(0, 30, 100, 50, "REPUBL1C OF KENYA"),
	}

	idx, ok := FindAnchor(records, "republicofkenya", 1)
	if !ok || idx != 1 {
		t.Errorf("Expected anchor at index 1, got %d (found=%v)", idx, ok)
	}

	if _, ok := FindAnchor(records, "passeport", 0); ok {
		t.Error("Expected no anchor for unrelated keyword")
	}
}

func TestExtrapolate(t *testing.T) {
	a1 := rec(0, 0, 100, 20, "header")
	a2 := rec(0, 90, 100, 110, "subheader")

	// Anchors sit at centroid Y 10 and 100; ratio 2.3 lands at 217.
	// The ratio is not exactly representable, so compare within an epsilon.
	if got := Extrapolate(a1, a2, 2.3); math.Abs(got-217) > 1e-9 {
		t.Errorf("Expected predicted Y 217, got %f", got)
	}
}

func TestClosestToY(t *testing.T) {
	records := []layout.Record{
		rec(0, 0, 100, 20, "a"),
		rec(0, 100, 100, 120, "b"),
		rec(0, 200, 100, 220, "c"),
	}

	r, ok := ClosestToY(records, 115)
	if !ok || r.Text() != "b" {
		t.Errorf("Expected record b, got %q", r.Text())
	}

	if _, ok := ClosestToY(nil, 10); ok {
		t.Error("Expected no result on empty input")
	}
}

func TestNearestBelow(t *testing.T) {
	label := rec(10, 50, 110, 70, "SURNAME")
	records := []layout.Record{
		rec(10, 10, 110, 30, "above"),
		rec(300, 80, 400, 100, "no overlap"),
		rec(20, 130, 120, 150, "further"),
		rec(15, 80, 115, 100, "BANDA"),
	}

	r, ok := NearestBelow(records, label, nil)
	if !ok || r.Text() != "BANDA" {
		t.Errorf("Expected BANDA, got %q (found=%v)", r.Text(), ok)
	}

	// A predicate can reject the nearest candidate.
	r, ok = NearestBelow(records, label, func(c layout.Record) bool {
		return c.Text() != "BANDA"
	})
	if !ok || r.Text() != "further" {
		t.Errorf("Expected filtered fallback, got %q", r.Text())
	}
}

func TestNearestAbove(t *testing.T) {
	label := rec(10, 100, 110, 120, "FIRST NAME")
	records := []layout.Record{
		rec(10, 10, 110, 30, "far"),
		rec(15, 60, 115, 80, "CHIKONDI"),
		rec(10, 150, 110, 170, "below"),
	}

	r, ok := NearestAbove(records, label, nil)
	if !ok || r.Text() != "CHIKONDI" {
		t.Errorf("Expected CHIKONDI, got %q", r.Text())
	}
}

func TestCentury(t *testing.T) {
	tests := []struct {
		yy       int
		expected int
	}{
		{99, 1999},
		{26, 1926},
		{25, 2025},
		{5, 2005},
		{0, 2000},
	}
	for _, tt := range tests {
		if got := Century(tt.yy); got != tt.expected {
			t.Errorf("Century(%d): expected %d, got %d", tt.yy, tt.expected, got)
		}
	}
}

func TestDecodePacked8(t *testing.T) {
	d, ok := DecodePacked8("0105199215")
	if !ok {
		t.Fatal("Expected packed date to parse")
	}
	if d.ISO() != "1992-05-01" {
		t.Errorf("Expected 1992-05-01, got %s", d.ISO())
	}

	if _, ok := DecodePacked8("41051992"); ok {
		t.Error("Expected day 41 to be rejected")
	}
	if _, ok := DecodePacked8("0113199"); ok {
		t.Error("Expected short token to be rejected")
	}
	if _, ok := DecodePacked8("0105 1992"); !ok {
		t.Error("Expected separators to be ignored")
	}
}

func TestDecodePacked6(t *testing.T) {
	d, ok := DecodePacked6("010599")
	if !ok || d.ISO() != "1999-05-01" {
		t.Errorf("Expected 1999-05-01, got %s (ok=%v)", d.ISO(), ok)
	}

	d, ok = DecodePacked6("010505")
	if !ok || d.ISO() != "2005-05-01" {
		t.Errorf("Expected 2005-05-01, got %s (ok=%v)", d.ISO(), ok)
	}
}

func TestParseDayMonthNameYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"clean", "12 MAR 1994", "1994-03-12", true},
		{"punctuated", "12-MAR-1994", "1994-03-12", true},
		{"repaired month", "14 FEE 1988", "1988-02-14", true},
		{"ambiguous month", "12 MAF 1994", "", false},
		{"year first", "1994 MAR 12", "1994-03-12", true},
		{"day out of range", "40 MAR 1994", "", false},
		{"extra number", "12 MAR 1994 7", "", false},
		{"no month", "12 13 1994", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDayMonthNameYear(tt.input)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && d.ISO() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, d.ISO())
			}
		})
	}
}

func TestFormatDayMonthNameYear(t *testing.T) {
	got := FormatDayMonthNameYear(DateMatch{Year: 1994, Month: 3, Day: 2})
	if got != "02-Mar-1994" {
		t.Errorf("Expected 02-Mar-1994, got %q", got)
	}
}

func TestThreeDates(t *testing.T) {
	matches := []DateMatch{
		{Year: 2019, Month: 6, Day: 1},
		{Year: 1988, Month: 2, Day: 14},
		{Year: 2029, Month: 6, Day: 1},
	}

	birth, issue, expiry, ok := ThreeDates(matches)
	if !ok {
		t.Fatal("Expected three dates to disambiguate")
	}
	if birth.Year != 1988 || issue.Year != 2019 || expiry.Year != 2029 {
		t.Errorf("Expected 1988/2019/2029, got %d/%d/%d", birth.Year, issue.Year, expiry.Year)
	}

	if _, _, _, ok := ThreeDates(matches[:2]); ok {
		t.Error("Expected refusal on two candidates")
	}
	if _, _, _, ok := ThreeDates(append(matches, DateMatch{Year: 2030})); ok {
		t.Error("Expected refusal on four candidates")
	}
}

func TestScanNumericDates(t *testing.T) {
	records := []layout.Record{
		rec(0, 0, 10, 10, "DATE OF BIRTH"),
		rec(0, 20, 10, 30, "14-02-1988"),
		rec(0, 40, 10, 50, "01/06/2019"),
		rec(0, 60, 10, 70, "01062029"),
	}

	matches := ScanNumericDates(records)
	if len(matches) != 3 {
		t.Fatalf("Expected 3 date candidates, got %d", len(matches))
	}
	birth, _, expiry, ok := ThreeDates(matches)
	if !ok || birth.ISO() != "1988-02-14" || expiry.ISO() != "2029-06-01" {
		t.Errorf("Unexpected disambiguation: %v %v (ok=%v)", birth.ISO(), expiry.ISO(), ok)
	}
}

func TestCorrectDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"A23O5671", "12305671"},
		{"IO8", "108"},
		{"45Z1", "4521"},
		{"123456", "123456"},
		{"S/o", "310"},
	}
	for _, tt := range tests {
		if got := CorrectDigits(tt.input); got != tt.expected {
			t.Errorf("CorrectDigits(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
