package malawi

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Field names in the fixed Malawian output schema.
const (
	FieldFirstName    = "First Name"
	FieldLastName     = "Last Name"
	FieldMiddleName   = "Middle Name"
	FieldGender       = "Gender"
	FieldDateOfBirth  = "Date of Birth"
	FieldIDNumber     = "ID Number"
	FieldDateOfIssue  = "Date of Issue"
	FieldDateOfExpiry = "Date of Expiry"
)

// Schema lists the field names every Malawian extraction returns, in order.
func Schema() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldMiddleName,
		FieldGender,
		FieldDateOfBirth,
		FieldIDNumber,
		FieldDateOfIssue,
		FieldDateOfExpiry,
	}
}

// genderLeftTolerance is the pixel budget for left-edge alignment between
// the name and the Chichewa gender word printed above it.
const genderLeftTolerance = 100

// ExtractFields runs the Malawian extraction flow. Anything other than a
// national ID yields the fixed schema with every field null.
func ExtractFields(ctx *extract.Context) []model.Field {
	if Classify(ctx.Front) != classify.NationalID {
		return model.NullFields(Schema())
	}
	records := ctx.Front

	expiry := ctx.Guard(FieldDateOfExpiry, func() model.Field {
		return extractExpiry(records)
	})
	issue := ctx.Guard(FieldDateOfIssue, func() model.Field {
		return extractIssue(records)
	})
	dob := ctx.Guard(FieldDateOfBirth, func() model.Field {
		return extractBirthDate(records)
	})
	names := ctx.GuardFields([]string{FieldFirstName, FieldMiddleName}, func() []model.Field {
		return extractFirstMiddle(records)
	})
	gender := ctx.Guard(FieldGender, func() model.Field {
		return extractGender(records)
	})
	id := ctx.Guard(FieldIDNumber, func() model.Field {
		return extractIDNumber(records)
	})
	last := ctx.Guard(FieldLastName, func() model.Field {
		return extractLastName(records)
	})

	return []model.Field{names[0], last, names[1], gender, dob, id, issue, expiry}
}

func findLabel(records []layout.Record, pred func(string) bool) (layout.Record, bool) {
	for _, r := range records {
		if pred(r.Text()) {
			return r, true
		}
	}
	return layout.Record{}, false
}

// isDateValue accepts records that carry a parseable printed date.
func isDateValue(r layout.Record) bool {
	if !hasDigits(r.Text()) {
		return false
	}
	_, ok := extract.ParseDayMonthNameYear(r.Text())
	return ok
}

func dateField(name string, r layout.Record) model.Field {
	d, ok := extract.ParseDayMonthNameYear(r.Text())
	if !ok {
		return model.NullField(name)
	}
	pg := r.Polygon()
	return model.NewField(name, extract.FormatDayMonthNameYear(d), &pg, r.Confidence())
}

// threeDates is the whole-card fallback: collect every parseable date, one
// per distinct year, and require exactly three years. The earliest is the
// birth date, the latest the expiry, the remaining one the issue date.
func threeDates(records []layout.Record) (birth, issue, expiry layout.Record, ok bool) {
	byYear := make(map[int]layout.Record)
	for _, r := range records {
		if d, parsed := extract.ParseDayMonthNameYear(r.Text()); parsed {
			byYear[d.Year] = r
		}
	}
	if len(byYear) != 3 {
		return layout.Record{}, layout.Record{}, layout.Record{}, false
	}

	years := make([]int, 0, 3)
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return byYear[years[0]], byYear[years[1]], byYear[years[2]], true
}

func extractExpiry(records []layout.Record) model.Field {
	if label, ok := findLabel(records, isExpiryLabel); ok {
		if r, found := extract.NearestBelow(records, label, isDateValue); found {
			return dateField(FieldDateOfExpiry, r)
		}
	}

	// No value under the expiry label: the expiry is printed right of the
	// issue date on this layout, so look right of the issue label.
	if label, ok := findLabel(records, isIssueLabel); ok {
		lp := label.Polygon()
		for _, r := range records {
			rp := r.Polygon()
			if rp.TopY() > lp.TopY() && rp.RightX() > lp.RightX() && rp.LeftX() > lp.RightX() && isDateValue(r) {
				return dateField(FieldDateOfExpiry, r)
			}
		}
	}

	if _, _, r, ok := threeDates(records); ok {
		return dateField(FieldDateOfExpiry, r)
	}
	return model.NullField(FieldDateOfExpiry)
}

func extractIssue(records []layout.Record) model.Field {
	if label, ok := findLabel(records, isIssueLabel); ok {
		if r, found := extract.NearestBelow(records, label, isDateValue); found {
			return dateField(FieldDateOfIssue, r)
		}
	}

	// Mirror of the expiry fallback: the issue date sits left of the
	// expiry label's column.
	if label, ok := findLabel(records, isExpiryLabel); ok {
		lp := label.Polygon()
		for _, r := range records {
			rp := r.Polygon()
			if rp.TopY() < lp.TopY() && rp.RightX() < lp.RightX() && rp.LeftX() < lp.RightX() && isDateValue(r) {
				return dateField(FieldDateOfIssue, r)
			}
		}
	}

	if _, r, _, ok := threeDates(records); ok {
		return dateField(FieldDateOfIssue, r)
	}
	return model.NullField(FieldDateOfIssue)
}

func extractBirthDate(records []layout.Record) model.Field {
	if label, ok := findLabel(records, isBirthLabel); ok {
		if r, found := extract.NearestBelow(records, label, isDateValue); found {
			return dateField(FieldDateOfBirth, r)
		}
	}
	if r, _, _, ok := threeDates(records); ok {
		return dateField(FieldDateOfBirth, r)
	}
	return model.NullField(FieldDateOfBirth)
}

// extractFirstMiddle locates the given-names record and splits it into
// first and middle name on the comma or period the card prints between
// them. Returns the two fields in that order.
func extractFirstMiddle(records []layout.Record) []model.Field {
	r, ok := firstNameValue(records)
	if !ok {
		return model.NullFields([]string{FieldFirstName, FieldMiddleName})
	}

	text := r.Text()
	pg := r.Polygon()

	sep := ""
	switch {
	case strings.Contains(text, ","):
		sep = ","
	case strings.Contains(text, "."):
		sep = "."
	}

	if sep == "" {
		return []model.Field{
			model.NewField(FieldFirstName, text, &pg, r.Confidence()),
			model.NullField(FieldMiddleName),
		}
	}

	parts := strings.SplitN(text, sep, 2)
	return []model.Field{
		model.NewField(FieldFirstName, strings.TrimSpace(parts[0]), &pg, r.Confidence()),
		model.NewField(FieldMiddleName, strings.TrimSpace(parts[1]), &pg, r.Confidence()),
	}
}

func firstNameValue(records []layout.Record) (layout.Record, bool) {
	// Direct: the record below the given-names label. The label row is
	// taller than the value row on this card, so the bottom edge must
	// also sit lower.
	if label, ok := findLabel(records, isFirstNameLabel); ok {
		lp := label.Polygon()
		best := layout.Record{}
		bestDist := math.Inf(1)
		found := false
		for _, r := range records {
			rp := r.Polygon()
			if rp.TopY() <= lp.TopY() || rp.BottomY() <= lp.BottomY() || hasDigits(r.Text()) {
				continue
			}
			if d := rp.TopY() - lp.TopY(); d < bestDist {
				best, bestDist, found = r, d, true
			}
		}
		if found {
			return best, true
		}
	}

	// Fallback: the record above the Chichewa gender word, left-aligned
	// with it. The first candidate is taken without the alignment check,
	// later improvements require it.
	label, ok := findLabel(records, isGenderValueBlock)
	if !ok {
		return layout.Record{}, false
	}
	lp := label.Polygon()
	best := layout.Record{}
	bestDist := math.Inf(1)
	found := false
	for _, r := range records {
		rp := r.Polygon()
		if rp.TopY() >= lp.TopY() || hasDigits(r.Text()) {
			continue
		}
		d := lp.TopY() - rp.TopY()
		if !found {
			if rp.BottomY() < lp.BottomY() {
				best, bestDist, found = r, d, true
			}
			continue
		}
		if d < bestDist && math.Abs(rp.LeftX()-lp.LeftX()) < genderLeftTolerance {
			best, bestDist = r, d
		}
	}
	return best, found
}

func extractGender(records []layout.Record) model.Field {
	label, ok := findLabel(records, isGenderLabel)
	if !ok {
		return model.NullField(FieldGender)
	}
	r, found := extract.NearestBelow(records, label, nil)
	if !found {
		return model.NullField(FieldGender)
	}

	v := stripNonAlnum(r.Text())
	if v != "M" && v != "F" {
		return model.NullField(FieldGender)
	}
	pg := r.Polygon()
	return model.NewField(FieldGender, v, &pg, r.Confidence())
}

func extractIDNumber(records []layout.Record) model.Field {
	if label, ok := findLabel(records, isIDLabel); ok {
		if r, found := extract.NearestBelow(records, label, nil); found {
			return idField(r)
		}
	}

	// Fallback: the ID number is printed left of the MWI nationality
	// code, which itself sits right of the republic header.
	var rep layout.Record
	repFound := false
	var nat layout.Record
	natFound := false
	for _, r := range records {
		if isRepublicBlock(r.Text()) {
			rep = r
			repFound = true
		}
		if isNationalityToken(r.Text()) {
			if !repFound {
				break
			}
			if r.Polygon().RightX() > rep.Polygon().LeftX() && r.Polygon().LeftX() > rep.Polygon().LeftX() {
				nat = r
				natFound = true
				break
			}
		}
	}
	if !natFound {
		return model.NullField(FieldIDNumber)
	}

	np := nat.Polygon()
	best := layout.Record{}
	bestDist := math.Inf(1)
	found := false
	for _, r := range records {
		rp := r.Polygon()
		if rp.RightX() >= np.RightX() || rp.LeftX() >= np.LeftX() {
			continue
		}
		if d := math.Abs(rp.TopY() - np.TopY()); d < bestDist {
			best, bestDist, found = r, d, true
		}
	}
	if !found {
		return model.NullField(FieldIDNumber)
	}
	return idField(best)
}

func idField(r layout.Record) model.Field {
	// The recognizer reads the zero in ID numbers as a capital O.
	value := strings.ReplaceAll(r.Text(), "O", "0")
	pg := r.Polygon()
	return model.NewField(FieldIDNumber, value, &pg, r.Confidence())
}

func extractLastName(records []layout.Record) model.Field {
	isSingleName := func(r layout.Record) bool {
		return !hasDigits(r.Text()) && wordCount(r.Text()) == 1
	}

	if label, ok := findLabel(records, isLastNameLabel); ok {
		if r, found := extract.NearestBelow(records, label, isSingleName); found {
			pg := r.Polygon()
			return model.NewField(FieldLastName, stripNonAlnum(r.Text()), &pg, r.Confidence())
		}
	}

	// Fallback: the surname is printed directly above the given-names
	// label.
	label, ok := findLabel(records, isFirstNameLabel)
	if !ok {
		return model.NullField(FieldLastName)
	}
	lp := label.Polygon()
	best := layout.Record{}
	bestDist := math.Inf(1)
	found := false
	for _, r := range records {
		rp := r.Polygon()
		if rp.TopY() >= lp.TopY() || !isSingleName(r) {
			continue
		}
		if d := lp.TopY() - rp.TopY(); d < bestDist {
			best, bestDist, found = r, d, true
		}
	}
	if !found {
		return model.NullField(FieldLastName)
	}
	pg := best.Polygon()
	return model.NewField(FieldLastName, stripNonAlnum(best.Text()), &pg, best.Confidence())
}
