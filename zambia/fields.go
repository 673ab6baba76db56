package zambia

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Field names in the fixed Zambian output schema.
const (
	FieldFirstName   = "First Name"
	FieldMiddleName  = "Middle Name"
	FieldLastName    = "Last Name"
	FieldDateOfBirth = "Date of Birth"
	FieldGender      = "Gender"
	FieldIDNumber    = "ID Number"
)

// Schema lists the field names every Zambian extraction returns, in order.
func Schema() []string {
	return []string{
		FieldFirstName,
		FieldMiddleName,
		FieldLastName,
		FieldDateOfBirth,
		FieldGender,
		FieldIDNumber,
	}
}

const (
	// anchorWindow is how many records below the header anchor are
	// examined. Every demographic field sits within this window on the
	// card.
	anchorWindow = 11

	// nameExclusionTolerance drops name candidates printed on or below
	// the gender or date-of-birth row, with a small pixel allowance.
	nameExclusionTolerance = 5
)

// Gender token sets, matched against the letters of a record after stripping
// everything else. The w and t entries are recognizer misreads of M and F
// seen on real cards.
var (
	maleTokens   = []string{"m", "male", "w"}
	femaleTokens = []string{"f", "fem", "female", "t", "temale"}
)

// nameTerminators end the name search once a labelled field begins.
var (
	nameTerminatorsApprox = []string{"dateofbirth", "placeofbirth", "village", "district", "placeof", "ofbirth"}
	nameTerminatorsExact  = []string{"sex", "xex"}
)

var (
	// The date of birth is matched against the digits of a record only,
	// so separators never reach the pattern.
	dobPattern = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])(0?[1-9]|1[012])(19[0-9]{2}|20[0-9]{2}|[0-9]{2})$`)

	// namePattern runs against normalized text, whose spaces are already
	// stripped, so a multi-word name reads as one letter run.
	namePattern = regexp.MustCompile(`^[a-zA-Z]{3,}$`)

	// idPattern is the printed NRC number shape, e.g. 123456/10/1.
	idPattern = regexp.MustCompile(`^\d{1,6}/\d{1,2}/\d+$`)

	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z]`)
)

var backFieldNames = []string{
	FieldFirstName,
	FieldMiddleName,
	FieldLastName,
	FieldDateOfBirth,
	FieldGender,
}

// ExtractFields runs the Zambian extraction flow. The registration side is
// sorted top to bottom, anchored on the card header, and scanned for names,
// date of birth and gender in one window pass; the NRC number comes from the
// other side.
func ExtractFields(ctx *extract.Context) []model.Field {
	idNumber := ctx.Guard(FieldIDNumber, func() model.Field {
		return extractIDNumber(ctx.Front)
	})

	back := ctx.GuardFields(backFieldNames, func() []model.Field {
		records := layout.SortByY(ctx.Back)
		anchor, ok := findAnchor(records)
		if !ok {
			return model.NullFields(backFieldNames)
		}
		scan := scanWindow(ctx, records, anchor)
		names := assignNames(chooseNames(scan))
		return []model.Field{names[0], names[1], names[2], scan.dob, scan.gender}
	})

	return append(back, idNumber)
}

// findAnchor locates the "registration card" header, the most prominent text
// on the card. A bare "national" token is kept as a fallback anchor when the
// full header was not recognized.
func findAnchor(records []layout.Record) (int, bool) {
	national := -1
	for i, r := range records {
		if fuzzy.Match(r.Text(), "registrationcard", 1) {
			return i, true
		}
		if fuzzy.Match(r.Text(), "national", 0) {
			national = i
		}
	}
	if national >= 0 {
		return national, true
	}
	return 0, false
}

// windowScan carries the results of the single pass below the anchor.
type windowScan struct {
	names []layout.Record

	dob    model.Field
	dobY   float64
	hasDOB bool

	gender    model.Field
	genderY   float64
	hasGender bool
}

// scanWindow walks the records below the anchor once, collecting name
// candidates and resolving date of birth and gender along the way. Finding a
// terminator label, a date of birth or a third candidate ends the name
// search; the date of birth must sit in the left half of the image to avoid
// serial numbers printed on the right.
func scanWindow(ctx *extract.Context, records []layout.Record, anchor int) windowScan {
	scan := windowScan{
		dob:    model.NullField(FieldDateOfBirth),
		gender: model.NullField(FieldGender),
	}

	end := anchor + 1 + anchorWindow
	if end > len(records) {
		end = len(records)
	}

	nameFound := false
	for _, r := range records[anchor+1 : end] {
		text := fuzzy.Normalize(r.Text())
		if fuzzy.Match(text, "fullname", 3) {
			continue
		}
		if isNameTerminator(text) {
			nameFound = true
		}

		// A later date match overwrites an earlier one; gender below
		// keeps the first.
		if m := dobPattern.FindStringSubmatch(extract.Digits(text)); m != nil &&
			ctx.ImageWidth > 0 && r.CentX < 0.5*ctx.ImageWidth {
			pg := r.Polygon()
			scan.dob = model.NewField(FieldDateOfBirth, formatDate(m), &pg, r.Confidence())
			scan.dobY = r.CentY
			scan.hasDOB = true
			nameFound = true
		}

		if namePattern.MatchString(text) && !nameFound {
			scan.names = append(scan.names, r)
			if len(scan.names) == 3 {
				nameFound = true
			}
		}

		if !scan.hasGender {
			letters := nonLetterPattern.ReplaceAllString(text, "")
			value := ""
			if containsToken(maleTokens, letters) {
				value = "Male"
			} else if containsToken(femaleTokens, letters) {
				value = "Female"
			}
			if value != "" {
				pg := r.Polygon()
				scan.gender = model.NewField(FieldGender, value, &pg, r.Confidence())
				scan.genderY = r.CentY
				scan.hasGender = true
			}
		}
	}
	return scan
}

func isNameTerminator(text string) bool {
	for _, kw := range nameTerminatorsApprox {
		if fuzzy.Match(text, kw, 2) {
			return true
		}
	}
	for _, kw := range nameTerminatorsExact {
		if fuzzy.Match(text, kw, 0) {
			return true
		}
	}
	return false
}

func containsToken(tokens []string, s string) bool {
	for _, t := range tokens {
		if s == t {
			return true
		}
	}
	return false
}

// formatDate renders a matched date as YYYY-MM-DD, expanding a two-digit
// year by the century cutoff.
func formatDate(m []string) string {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		year = extract.Century(year)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// chooseNames orders the collected name candidates left to right and drops
// any printed on or below the gender or date-of-birth row.
func chooseNames(scan windowScan) []layout.Record {
	sorted := layout.SortByX(scan.names)

	chosen := make([]layout.Record, 0, len(sorted))
	for _, r := range sorted {
		if scan.hasGender && scan.genderY-r.CentY <= nameExclusionTolerance {
			continue
		}
		if scan.hasDOB && scan.dobY-r.CentY <= nameExclusionTolerance {
			continue
		}
		chosen = append(chosen, r)
	}
	return chosen
}

// assignNames maps one to three name candidates onto first/middle/last.
// Three candidates map left to right. With two, a multi-word candidate
// donates the middle name; two single words are read top-down when they
// overlap horizontally and left to right otherwise. A lone candidate is
// split by word count. Returned in first, middle, last order.
func assignNames(fields []layout.Record) []model.Field {
	first := model.NullField(FieldFirstName)
	middle := model.NullField(FieldMiddleName)
	last := model.NullField(FieldLastName)

	switch len(fields) {
	case 3:
		first = recordField(FieldFirstName, fields[0])
		middle = recordField(FieldMiddleName, fields[1])
		last = recordField(FieldLastName, fields[2])

	case 2:
		words1 := strings.Fields(fields[0].Text())
		words2 := strings.Fields(fields[1].Text())
		switch {
		case len(words1) >= 2:
			first = bareField(FieldFirstName, words1[0])
			middle = bareField(FieldMiddleName, words1[1])
			last = bareField(FieldLastName, words2[0])
		case len(words2) >= 2:
			first = bareField(FieldFirstName, words1[0])
			middle = bareField(FieldMiddleName, words2[0])
			last = bareField(FieldLastName, words2[1])
		default:
			p0 := fields[0].Polygon()
			p1 := fields[1].Polygon()
			stacked := p1[0].X < fields[0].CentX && fields[0].CentX < p1[1].X &&
				p0[0].X < fields[1].CentX && fields[1].CentX < p0[1].X
			if stacked {
				upper, lower := fields[0], fields[1]
				if lower.CentY < upper.CentY {
					upper, lower = lower, upper
				}
				first = recordField(FieldFirstName, upper)
				last = recordField(FieldLastName, lower)
			} else {
				pg0, pg1 := fields[0].Polygon(), fields[1].Polygon()
				first = model.NewField(FieldFirstName, words1[0], &pg0, fields[0].Confidence())
				last = model.NewField(FieldLastName, words2[0], &pg1, fields[1].Confidence())
			}
		}

	case 1:
		words := strings.Fields(fields[0].Text())
		pg := fields[0].Polygon()
		score := fields[0].Confidence()
		switch {
		case len(words) >= 3:
			first = model.NewField(FieldFirstName, words[0], &pg, score)
			middle = model.NewField(FieldMiddleName, words[1], &pg, score)
			last = model.NewField(FieldLastName, words[2], &pg, score)
		case len(words) == 2:
			first = model.NewField(FieldFirstName, words[0], &pg, score)
			last = model.NewField(FieldLastName, words[1], &pg, score)
		case len(words) == 1:
			first = model.NewField(FieldFirstName, words[0], &pg, score)
		}
	}

	return []model.Field{first, middle, last}
}

func recordField(name string, r layout.Record) model.Field {
	pg := r.Polygon()
	return model.NewField(name, r.Text(), &pg, r.Confidence())
}

// bareField carries a value recovered by splitting another candidate's text,
// which has no well-defined source polygon of its own.
func bareField(name, value string) model.Field {
	if value == "" {
		return model.NullField(name)
	}
	return model.Field{Name: name, Value: &value}
}

// extractIDNumber scans the records for the printed NRC number. Records
// matching the slashed shape are preferred; any slash-free text is kept as a
// fallback candidate. The first candidate that is nine characters long once
// slashes are removed wins.
func extractIDNumber(records []layout.Record) model.Field {
	var candidates []layout.Record
	for _, r := range records {
		if idPattern.MatchString(r.Text()) {
			candidates = append(candidates, r)
		}
	}
	for _, r := range records {
		if !strings.Contains(r.Text(), "/") {
			candidates = append(candidates, r)
		}
	}

	for _, r := range candidates {
		value := strings.ReplaceAll(r.Text(), "/", "")
		if len(value) == 9 {
			pg := r.Polygon()
			return model.NewField(FieldIDNumber, value, &pg, r.Confidence())
		}
	}
	return model.NullField(FieldIDNumber)
}
