package kenya

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Field names in the fixed Kenyan output schema.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldMiddleName  = "middle_name"
	FieldGender      = "gender"
	FieldDateOfBirth = "date_of_birth"
	FieldIDNumber    = "id_number"
)

// Schema lists the field names every Kenyan extraction returns, in order.
func Schema() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldMiddleName,
		FieldGender,
		FieldDateOfBirth,
		FieldIDNumber,
	}
}

const (
	// ID number search windows, counted in detections from the header
	// anchor. The new card carries more text between header and number.
	oldCardIDWindow = 10
	newCardIDWindow = 20

	// newCardNameScanLimit bounds the name search when no date of birth
	// was found to delimit the header block.
	newCardNameScanLimit = 15

	// middleNameYTolerance is the pixel tolerance for treating a record
	// as printed on the same row as the first name.
	middleNameYTolerance = 5

	// defaultGenderScore is reported with the fallback MALE value, which
	// has no originating detection.
	defaultGenderScore = 0.95
)

// femaleVariants are recognizer outputs observed for the FEMALE label on
// real cards. Matching is by ordered subsequence so partly garbled tokens
// still count.
var femaleVariants = []string{"femal", "fehale", "eemal", "ffmal", "fewal", "fehawe"}

var (
	idNumberPattern = regexp.MustCompile(`\d{7,}`)

	// The old card prints numeric dates with optional separators; a bare
	// four-digit year is also accepted and reported with zeroed day and
	// month. A 49xx year is a known misread of 19xx.
	oldDatePattern = regexp.MustCompile(`^(0?[0-9]|[12][0-9]|3[01])[-/.,:]?(0?[0-9]|1[012])[-/.,:]?(19[0-9]{2}|49[0-9]{2}|20[0-9]{2}|[0-9]{2})$`)
	newDatePattern = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])[-/.,]?(0?[1-9]|1[012])[-/.,]?(19[0-9]{2}|20[0-9]{2}|[0-9]{2})$`)

	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
)

// ExtractFields runs the Kenyan extraction flow: classify, probe the card
// generation, then run the matching strategy. Anything other than a national
// ID yields the fixed schema with every field null.
func ExtractFields(ctx *extract.Context) []model.Field {
	if Classify(ctx.Front) != classify.NationalID {
		return model.NullFields(Schema())
	}
	if isNewCard(ctx.Front) {
		return extractNewCard(ctx)
	}
	return extractOldCard(ctx)
}

// isNewCard probes for the new-generation card header, which the old card
// does not carry.
func isNewCard(records []layout.Record) bool {
	for _, r := range records {
		if fuzzy.Match(r.Text(), "nationalidentitycard", 4) ||
			fuzzy.Match(r.Text(), "kitambulishochataifa", 4) {
			return true
		}
	}
	return false
}

func extractOldCard(ctx *extract.Context) []model.Field {
	records := ctx.Front

	gender := ctx.Guard(FieldGender, func() model.Field {
		return extractGender(records)
	})

	idIdx, dobIdx := -1, -1
	idNumber := ctx.Guard(FieldIDNumber, func() model.Field {
		f, idx := extractIDNumber(records, oldCardIDWindow)
		idIdx = idx
		return f
	})
	dob := ctx.Guard(FieldDateOfBirth, func() model.Field {
		f, idx := extractDateOfBirth(records, idIdx)
		dobIdx = idx
		return f
	})

	names := extractNames(ctx, records, idIdx, dobIdx)

	return []model.Field{names[0], names[2], names[1], gender, dob, idNumber}
}

func extractNewCard(ctx *extract.Context) []model.Field {
	records := ctx.Front

	gender := ctx.Guard(FieldGender, func() model.Field {
		return extractGender(records)
	})
	idNumber := ctx.Guard(FieldIDNumber, func() model.Field {
		f, _ := extractIDNumber(records, newCardIDWindow)
		return f
	})

	dobIdx := -1
	dob := ctx.Guard(FieldDateOfBirth, func() model.Field {
		f, idx := extractDateOfBirthNewCard(records)
		dobIdx = idx
		return f
	})

	names := extractNamesNewCard(ctx, records, dobIdx)

	return []model.Field{names[0], names[2], names[1], gender, dob, idNumber}
}

// extractGender scans every record for a female label variant; the last
// match wins. Absence of any female variant defaults to MALE, a behavior
// inherited from the tuned heuristics and kept deliberately.
func extractGender(records []layout.Record) model.Field {
	match := -1
	for i, r := range records {
		for _, v := range femaleVariants {
			if fuzzy.Subsequence(r.Text(), v) {
				match = i
				break
			}
		}
	}
	if match >= 0 {
		pg := records[match].Polygon()
		return model.NewField(FieldGender, "FEMALE", &pg, records[match].Confidence())
	}
	return model.NewField(FieldGender, "MALE", nil, defaultGenderScore)
}

// headerIndexes locates the English and Swahili card headers. The keywords
// are truncated to their most reliably recognized cores.
func headerIndexes(records []layout.Record) (repIdx, jamIdx int) {
	repIdx, jamIdx = -1, -1
	for i, r := range records {
		if fuzzy.Match(r.Text(), "icofkenya", 2) {
			repIdx = i
		}
		if fuzzy.Match(r.Text(), "jamhuriya", 2) {
			jamIdx = i
		}
	}
	return repIdx, jamIdx
}

// extractIDNumber looks for runs of seven or more digits in a fixed window
// after the header anchor, keeps at most two candidates, and picks the one
// printed to the right of the header text. Returns the winning record index
// for use as a window delimiter by later extractors, or -1.
func extractIDNumber(records []layout.Record, window int) (model.Field, int) {
	repIdx, jamIdx := headerIndexes(records)

	start := repIdx
	if start < 0 {
		start = jamIdx
	}
	if start < 0 {
		return model.NullField(FieldIDNumber), -1
	}

	type candidate struct {
		idx   int
		value string
	}
	var candidates []candidate

	limit := start + window
	if limit > len(records) {
		limit = len(records)
	}
	for idx := start; idx < limit; idx++ {
		text := strings.ReplaceAll(records[idx].Text(), " ", "")
		if m := idNumberPattern.FindString(text); m != "" {
			candidates = append(candidates, candidate{idx: idx, value: m})
			if len(candidates) == 2 {
				break
			}
		}
	}

	chosen := -1
	value := ""
	if jamIdx >= 0 {
		edge := records[jamIdx].Polygon()[1].X
		for _, c := range candidates {
			if records[c.idx].CentX > edge {
				chosen = c.idx
				value = c.value
			}
		}
	}
	if repIdx >= 0 {
		edge := records[repIdx].Polygon()[0].X
		for _, c := range candidates {
			if records[c.idx].CentX > edge {
				chosen = c.idx
				value = c.value
			}
		}
	}

	if chosen < 0 {
		return model.NullField(FieldIDNumber), -1
	}
	pg := records[chosen].Polygon()
	return model.NewField(FieldIDNumber, value, &pg, records[chosen].Confidence()), chosen
}

// extractDateOfBirth scans forward from the record after the ID number for
// the first date-like token.
func extractDateOfBirth(records []layout.Record, idIdx int) (model.Field, int) {
	start := 0
	if idIdx >= 0 {
		start = idIdx + 1
	}
	for idx := start; idx < len(records); idx++ {
		text := strings.ReplaceAll(records[idx].Text(), " ", "")
		m := oldDatePattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		pg := records[idx].Polygon()
		return model.NewField(FieldDateOfBirth, formatDate(m), &pg, records[idx].Confidence()), idx
	}
	return model.NullField(FieldDateOfBirth), -1
}

// extractDateOfBirthNewCard picks the rightmost date-like token: the new
// layout prints the date of birth in the right-hand column, and serial
// numbers on the left can also look date-like.
func extractDateOfBirthNewCard(records []layout.Record) (model.Field, int) {
	best := -1
	bestX := math.Inf(-1)
	var bestMatch []string

	for idx, r := range records {
		text := strings.ReplaceAll(r.Text(), " ", "")
		m := newDatePattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.CentX > bestX {
			bestX = r.CentX
			best = idx
			bestMatch = m
		}
	}

	if best < 0 {
		return model.NullField(FieldDateOfBirth), -1
	}
	pg := records[best].Polygon()
	return model.NewField(FieldDateOfBirth, formatDate(bestMatch), &pg, records[best].Confidence()), best
}

// formatDate renders a matched date as YYYY-MM-DD. A bare year keeps zeroed
// day and month; two-digit years expand by the century cutoff.
func formatDate(m []string) string {
	if len(m[0]) == 4 {
		return m[0] + "-00-00"
	}
	day, month, year := m[1], m[2], m[3]
	if len(year) == 4 && strings.HasPrefix(year, "49") {
		year = "19" + year[2:]
	}
	if len(year) == 2 {
		yy, _ := strconv.Atoi(year)
		year = strconv.Itoa(extract.Century(yy))
	}
	return year + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// Tokens that disqualify a record from the name block on the old card.
var (
	nameSkipApprox = []string{"fullname", "number", "dateof", "jamhuriya", "ofkenya", "placeof"}
	nameSkipExact  = []string{"sex", "male", "female"}
)

var nameFieldNames = []string{FieldFirstName, FieldMiddleName, FieldLastName}

// extractNames derives first/middle/last name from the old card: candidate
// records between the ID number and the date of birth are grouped into
// visual lines, the longest line is taken as the full name, and its words
// split into one to three components. Returned in first, middle, last order.
func extractNames(ctx *extract.Context, records []layout.Record, idIdx, dobIdx int) []model.Field {
	return ctx.GuardFields(nameFieldNames, func() []model.Field {
		start := 0
		if idIdx >= 0 {
			start = idIdx
		}
		end := len(records)
		if dobIdx >= 0 {
			end = dobIdx
		}
		if start > end {
			start = end
		}

		var candidates []layout.Record
		for _, r := range records[start:end] {
			if skipName(r.Text()) {
				continue
			}
			if !letterPattern.MatchString(r.Text()) {
				continue
			}
			candidates = append(candidates, r)
		}

		var block []layout.Record
		blockLen := -1
		for _, line := range pairwiseLines(candidates) {
			text, _ := layout.LineText(line)
			if len(text) > blockLen {
				block = line
				blockLen = len(text)
			}
		}

		return assignNameParts(splitWords(block))
	})
}

func skipName(text string) bool {
	for _, w := range nameSkipApprox {
		if fuzzy.Match(text, w, 1) {
			return true
		}
	}
	norm := fuzzy.Normalize(text)
	for _, w := range nameSkipExact {
		if norm == w {
			return true
		}
	}
	return false
}

// pairwiseLines groups records that share a visual line with the group's
// seed record. Unlike layout.GroupLines this is not transitive, which keeps
// distant tokens from chaining into one line on skewed photos.
func pairwiseLines(records []layout.Record) [][]layout.Record {
	visited := make([]bool, len(records))
	var lines [][]layout.Record

	for i := range records {
		if visited[i] {
			continue
		}
		visited[i] = true
		line := []layout.Record{records[i]}
		for j := i + 1; j < len(records); j++ {
			if visited[j] {
				continue
			}
			if layout.SameLine(records[i], records[j]) {
				visited[j] = true
				line = append(line, records[j])
			}
		}
		lines = append(lines, line)
	}
	return lines
}

type nameWord struct {
	text string
	rec  layout.Record
}

func splitWords(line []layout.Record) []nameWord {
	var words []nameWord
	for _, r := range line {
		for _, w := range strings.Fields(r.Text()) {
			words = append(words, nameWord{text: w, rec: r})
		}
	}
	return words
}

// assignNameParts splits a word list into first/middle/last. Two words mean
// no middle name; four or more fold the interior words into the middle name.
func assignNameParts(words []nameWord) []model.Field {
	first := model.NullField(FieldFirstName)
	middle := model.NullField(FieldMiddleName)
	last := model.NullField(FieldLastName)

	switch {
	case len(words) == 0:
	case len(words) == 1:
		first = wordField(FieldFirstName, words[0])
	case len(words) == 2:
		first = wordField(FieldFirstName, words[0])
		last = wordField(FieldLastName, words[1])
	case len(words) == 3:
		first = wordField(FieldFirstName, words[0])
		middle = wordField(FieldMiddleName, words[1])
		last = wordField(FieldLastName, words[2])
	default:
		first = wordField(FieldFirstName, words[0])
		middle = joinedField(FieldMiddleName, words[1:len(words)-1])
		last = wordField(FieldLastName, words[len(words)-1])
	}

	return []model.Field{first, middle, last}
}

func wordField(name string, w nameWord) model.Field {
	pg := w.rec.Polygon()
	return model.NewField(name, w.text, &pg, w.rec.Confidence())
}

func joinedField(name string, words []nameWord) model.Field {
	parts := make([]string, 0, len(words))
	total := 0.0
	for _, w := range words {
		parts = append(parts, w.text)
		total += w.rec.Confidence()
	}
	pg := words[0].rec.Polygon()
	return model.NewField(name, strings.Join(parts, " "), &pg, total/float64(len(words)))
}

// extractNamesNewCard reads the name block of the new layout: records below
// the card title that are printed taller than the title and start left of
// it. The first such record is the last name, the second the first name,
// and a third on the same row as the first name is the middle name.
// Returned in first, middle, last order.
func extractNamesNewCard(ctx *extract.Context, records []layout.Record, dobIdx int) []model.Field {
	return ctx.GuardFields(nameFieldNames, func() []model.Field {
		end := newCardNameScanLimit
		if dobIdx >= 0 {
			end = dobIdx
		}
		if end > len(records) {
			end = len(records)
		}

		labelIdx := -1
		for i := 0; i < end; i++ {
			if fuzzy.Match(records[i].Text(), "nationalidentitycard", 4) {
				labelIdx = i
				break
			}
		}
		if labelIdx < 0 {
			return model.NullFields(nameFieldNames)
		}

		label := records[labelIdx].Polygon()
		labelHeight := label.Height()
		labelLeftX := label[0].X

		firstIdx, middleIdx, lastIdx := -1, -1, -1
		for i := labelIdx; i < end; i++ {
			norm := fuzzy.Normalize(records[i].Text())
			if norm == "jamhuriyakenya" || norm == "republicofkenya" {
				continue
			}
			rp := records[i].Polygon()
			if rp.Height() <= labelHeight || labelLeftX <= rp[0].X {
				continue
			}
			switch {
			case lastIdx < 0:
				lastIdx = i
			case firstIdx < 0:
				firstIdx = i
			default:
				if math.Abs(rp[0].Y-records[firstIdx].Polygon()[0].Y) < middleNameYTolerance {
					middleIdx = i
				}
			}
		}

		fields := model.NullFields(nameFieldNames)
		if firstIdx >= 0 {
			fields[0] = recordField(FieldFirstName, records[firstIdx])
		}
		if middleIdx >= 0 {
			fields[1] = recordField(FieldMiddleName, records[middleIdx])
		}
		if lastIdx >= 0 {
			fields[2] = recordField(FieldLastName, records[lastIdx])
		}
		return fields
	})
}

func recordField(name string, r layout.Record) model.Field {
	pg := r.Polygon()
	return model.NewField(name, r.Text(), &pg, r.Confidence())
}
