package malawi

import (
	"testing"

	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

func det(x1, y1, x2, y2 float64, text string) model.TextDetection {
	return model.TextDetection{
		Polygon:    model.NewPolygon(x1, y1, x2, y2),
		Text:       text,
		Confidence: 0.9,
	}
}

func fieldByName(t *testing.T, fields []model.Field, name string) model.Field {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("Field %q not in result", name)
	return model.Field{}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected classify.DocType
	}{
		{"national header", []string{"REPUBLIC OF MALAWI", "NATIONAL ID"}, classify.NationalID},
		{"chichewa header", []string{"CHIPHASO CHA NZIKA"}, classify.NationalID},
		{"card back mrz", []string{"NATIONAL REGISTRATION BUREAU", "IDMWIBANDA<<CHIKONDI<<<"}, classify.NationalID},
		{"passport mrz", []string{"P<MWIBANDA<<CHIKONDI<<<"}, classify.Passport},
		{"passport word", []string{"PASSPORT"}, classify.Passport},
		{"driving licence", []string{"DRIVING LICENCE"}, classify.DrivingLicense},
		{"unknown", []string{"HELLO WORLD"}, classify.OtherID},
		{"empty", nil, classify.Unresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detections := make([]model.TextDetection, 0, len(tt.texts))
			for i, txt := range tt.texts {
				detections = append(detections, det(0, float64(i*40), 300, float64(i*40+30), txt))
			}
			if got := Classify(layout.NewRecords(detections)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func cardDetections() []model.TextDetection {
	return []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(20, 60, 120, 80, "SURNAME"),
		det(20, 90, 120, 115, "BANDA"),
		det(20, 130, 140, 150, "OTHER NAMES"),
		det(20, 160, 220, 185, "CHIKONDI, MPHATSO"),
		det(300, 130, 350, 150, "SEX"),
		det(300, 165, 330, 185, "M"),
		det(300, 200, 450, 220, "IDENTIFICATION"),
		det(300, 230, 420, 255, "A1B2C3O9"),
		det(20, 200, 160, 220, "DATE OF BIRTH"),
		det(20, 230, 160, 255, "14 FEB 1988"),
		det(20, 270, 160, 290, "DATE OF ISSUE"),
		det(20, 300, 160, 325, "01 MAR 2019"),
		det(300, 270, 450, 290, "DATE OF EXPIRY"),
		det(300, 300, 450, 325, "01 MAR 2029"),
	}
}

func TestExtractFields(t *testing.T) {
	ctx := extract.NewContext(cardDetections(), nil, nil)
	fields := ExtractFields(ctx)

	if len(fields) != len(Schema()) {
		t.Fatalf("Expected %d fields, got %d", len(Schema()), len(fields))
	}

	want := map[string]string{
		FieldFirstName:    "CHIKONDI",
		FieldMiddleName:   "MPHATSO",
		FieldLastName:     "BANDA",
		FieldGender:       "M",
		FieldDateOfBirth:  "14-Feb-1988",
		FieldDateOfIssue:  "01-Mar-2019",
		FieldDateOfExpiry: "01-Mar-2029",
		FieldIDNumber:     "A1B2C309",
	}
	for name, expected := range want {
		f := fieldByName(t, fields, name)
		if f.Value == nil || *f.Value != expected {
			t.Errorf("Field %q: expected %q, got %v", name, expected, f.Value)
		}
	}
}

func TestExtractFieldsThreeDateFallback(t *testing.T) {
	detections := []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(20, 60, 160, 85, "14 FEB 1988"),
		det(20, 100, 160, 125, "01 MAR 2019"),
		det(300, 100, 440, 125, "01 MAR 2029"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	fields := ExtractFields(ctx)

	dob := fieldByName(t, fields, FieldDateOfBirth)
	if dob.Value == nil || *dob.Value != "14-Feb-1988" {
		t.Errorf("Expected earliest year as birth date, got %v", dob.Value)
	}
	issue := fieldByName(t, fields, FieldDateOfIssue)
	if issue.Value == nil || *issue.Value != "01-Mar-2019" {
		t.Errorf("Expected middle year as issue date, got %v", issue.Value)
	}
	expiry := fieldByName(t, fields, FieldDateOfExpiry)
	if expiry.Value == nil || *expiry.Value != "01-Mar-2029" {
		t.Errorf("Expected latest year as expiry date, got %v", expiry.Value)
	}
}

func TestExtractFieldsTwoDatesRefused(t *testing.T) {
	detections := []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(20, 60, 160, 85, "14 FEB 1988"),
		det(20, 100, 160, 125, "01 MAR 2019"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	fields := ExtractFields(ctx)

	for _, name := range []string{FieldDateOfBirth, FieldDateOfIssue, FieldDateOfExpiry} {
		f := fieldByName(t, fields, name)
		if f.Value != nil {
			t.Errorf("Field %q: expected refusal with two date candidates, got %q", name, *f.Value)
		}
	}
}

func TestFirstNameGenderBlockFallback(t *testing.T) {
	detections := []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(20, 60, 120, 85, "TIONGE"),
		det(20, 100, 120, 120, "MKAZI"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	fields := ExtractFields(ctx)

	first := fieldByName(t, fields, FieldFirstName)
	if first.Value == nil || *first.Value != "TIONGE" {
		t.Errorf("Expected first name above the gender word, got %v", first.Value)
	}
	middle := fieldByName(t, fields, FieldMiddleName)
	if middle.Value != nil {
		t.Errorf("Expected no middle name, got %q", *middle.Value)
	}
}

func TestIDNumberNationalityFallback(t *testing.T) {
	detections := []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(100, 58, 250, 82, "P123O45"),
		det(400, 60, 440, 80, "MW1"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	fields := ExtractFields(ctx)

	id := fieldByName(t, fields, FieldIDNumber)
	if id.Value == nil || *id.Value != "P123045" {
		t.Errorf("Expected ID left of the nationality code with O corrected, got %v", id.Value)
	}
}

func TestExtractFieldsNonNational(t *testing.T) {
	detections := []model.TextDetection{
		det(0, 0, 300, 30, "DRIVING LICENCE"),
		det(0, 40, 300, 70, "14 FEB 1988"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	for _, f := range ExtractFields(ctx) {
		if f.Value != nil {
			t.Errorf("Field %q: expected null on a non-national-ID document", f.Name)
		}
	}
}

func TestGenderRejectsNonMF(t *testing.T) {
	detections := []model.TextDetection{
		det(100, 10, 400, 40, "REPUBLIC OF MALAWI"),
		det(300, 130, 350, 150, "SEX"),
		det(300, 165, 360, 185, "MALE"),
	}
	ctx := extract.NewContext(detections, nil, nil)
	gender := fieldByName(t, ExtractFields(ctx), FieldGender)
	if gender.Value != nil {
		t.Errorf("Expected rejection of a non single-letter gender, got %q", *gender.Value)
	}
}
