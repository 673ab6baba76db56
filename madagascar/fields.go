package madagascar

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Field names in the fixed Malagasy output schema. Only the ID number is
// ever resolved; the rest stay null so consumers receive the same keys as
// the other identity layouts.
const (
	FieldIDNumber     = "ID Number"
	FieldFirstName    = "First Name"
	FieldMiddleName   = "Middle Name"
	FieldLastName     = "Last Name"
	FieldGender       = "Gender"
	FieldDateOfBirth  = "Date of Birth"
	FieldDateOfIssue  = "Date of Issue"
	FieldDateOfExpiry = "Date of Expiry"
	FieldPlaceOfBirth = "Place of Birth"
)

// Schema lists the field names every Malagasy extraction returns, in order.
func Schema() []string {
	return []string{
		FieldIDNumber,
		FieldFirstName,
		FieldMiddleName,
		FieldLastName,
		FieldGender,
		FieldDateOfBirth,
		FieldDateOfIssue,
		FieldDateOfExpiry,
		FieldPlaceOfBirth,
	}
}

const (
	// idColumnRatio bounds the horizontal distance, as a fraction of the
	// image width, between the laharana label and a direct candidate.
	idColumnRatio = 0.35

	// Segmented fallback search window below and right of the label.
	segmentYSpanRatio = 0.30
	segmentXSpanRatio = 0.60

	// rowToleranceRatio groups number fragments printed on one row.
	rowToleranceRatio = 0.02

	// Fragment lengths accepted by the segmented fallback.
	segmentMinLength = 2
	segmentMaxLength = 6

	// idMaxLength truncates over-long reads; the printed number is at
	// most twelve characters.
	idMaxLength = 12
)

var (
	// labelPattern matches the start of a record against recognizer
	// renderings of "laharana".
	labelPattern = regexp.MustCompile(`(?i)^(lah[a-z]{2,6}|aharan[a-z]{0,4}|laha?rana[a-z/]*)`)

	// segmentedLabelPattern is the looser anchor test used by the
	// fallback, tolerating digit misreads inside the label itself.
	segmentedLabelPattern = regexp.MustCompile(`(?i)l[a4h]*a*r*a*n[a-z/]*`)

	idCandidatePattern = regexp.MustCompile(`^[A-Za-z0-9?/:\-]+$`)
)

// segmentFixer repairs number fragments before length filtering. Unlike the
// final cleanup it also drops stray punctuation the recognizer inserts
// between fragments.
var segmentFixer = strings.NewReplacer(
	"I", "1", "A", "1", "H", "4", "O", "0", "S", "3", "/", "1",
	"F", "7", "g", "9", "q", "9", "Z", "2",
	"?", "", ":", "", ".", "",
)

// ExtractFields runs the Malagasy extraction flow: resolve the laharana
// number from the front side and pad the remaining schema with nulls.
func ExtractFields(ctx *extract.Context) []model.Field {
	fields := model.NullFields(Schema())
	fields[0] = ctx.Guard(FieldIDNumber, func() model.Field {
		return extractIDNumber(ctx)
	})
	return fields
}

// extractIDNumber reads the card number printed below the laharana label.
// The nearest digit-bearing record in the label's column wins; a missing or
// three- or six-character read triggers the segmented fallback, since those
// lengths are the typical size of one fragment of a split number.
func extractIDNumber(ctx *extract.Context) model.Field {
	if len(ctx.Front) == 0 || ctx.ImageWidth <= 0 || ctx.ImageHeight <= 0 {
		return model.NullField(FieldIDNumber)
	}

	records := layout.SortByY(ctx.Front)

	value := ""
	var source layout.Record
	found := false

	if anchor, ok := findLabel(records); ok {
		xMargin := idColumnRatio * ctx.ImageWidth
		minDy := math.Inf(1)
		for _, r := range records {
			dy := r.CentY - anchor.CentY
			dx := math.Abs(r.CentX - anchor.CentX)
			if dy <= 0 || dx > xMargin {
				continue
			}
			text := strings.TrimSpace(strings.ReplaceAll(r.Text(), ".", ""))
			if isIDCandidate(text) && dy < minDy {
				minDy = dy
				value = text
				source = r
				found = true
			}
		}
	}

	// A three- or six-character read is almost always one fragment of a
	// split number, so it goes through the fallback as well.
	if value == "" || len(value) == 3 || len(value) == 6 {
		if seg, rec, ok := segmentedID(ctx); ok {
			value = seg
			source = rec
			found = true
		}
	}

	if !found || value == "" {
		return model.NullField(FieldIDNumber)
	}

	value = strings.ReplaceAll(value, " ", "")
	value = extract.CorrectDigits(value)
	if len(value) > idMaxLength {
		value = value[:idMaxLength]
	}
	pg := source.Polygon()
	return model.NewField(FieldIDNumber, value, &pg, source.Confidence())
}

// findLabel locates the laharana label, scanning top to bottom.
func findLabel(records []layout.Record) (layout.Record, bool) {
	for _, r := range records {
		if labelPattern.MatchString(strings.TrimSpace(r.Text())) {
			return r, true
		}
	}
	return layout.Record{}, false
}

// isIDCandidate accepts a token that carries at least one digit and only
// characters seen in real or misread card numbers.
func isIDCandidate(text string) bool {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(text, ".", ""), " ", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || isAlpha(cleaned) {
		return false
	}
	return idCandidatePattern.MatchString(cleaned) && hasDigit(cleaned)
}

// segmentedID reassembles a card number the recognizer split into short
// fragments. Fragments are collected from a window below and right of the
// label, grouped into rows by vertical proximity, and the widest row joined
// left to right. The leftmost fragment donates the polygon and score.
func segmentedID(ctx *extract.Context) (string, layout.Record, bool) {
	records := ctx.Front

	var anchor layout.Record
	anchorFound := false
	for _, r := range records {
		if segmentedLabelPattern.MatchString(fuzzy.Normalize(r.Text())) {
			anchor = r
			anchorFound = true
			break
		}
	}
	if !anchorFound {
		return "", layout.Record{}, false
	}

	yRef := anchor.CentY
	xMinRef := minX(anchor.Polygon())
	ySpan := segmentYSpanRatio * ctx.ImageHeight
	xSpan := segmentXSpanRatio * ctx.ImageWidth

	type segment struct {
		rec  layout.Record
		text string
	}
	var segments []segment
	for _, r := range records {
		if !(yRef < r.CentY && r.CentY < yRef+ySpan) {
			continue
		}
		if !(xMinRef < r.CentX && r.CentX < xMinRef+xSpan) {
			continue
		}
		fixed := segmentFixer.Replace(strings.ReplaceAll(strings.TrimSpace(r.Text()), " ", ""))
		if len(fixed) >= segmentMinLength && len(fixed) <= segmentMaxLength && hasDigit(fixed) {
			segments = append(segments, segment{rec: r, text: fixed})
		}
	}
	if len(segments) == 0 {
		return "", layout.Record{}, false
	}

	type row struct {
		key      float64
		segments []segment
	}
	tolerance := rowToleranceRatio * ctx.ImageHeight
	var rows []row
	for _, s := range segments {
		placed := false
		for i := range rows {
			if math.Abs(rows[i].key-s.rec.CentY) <= tolerance {
				rows[i].segments = append(rows[i].segments, s)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, row{key: s.rec.CentY, segments: []segment{s}})
		}
	}

	best := rows[0]
	for _, r := range rows[1:] {
		if len(r.segments) > len(best.segments) {
			best = r
		}
	}
	sort.SliceStable(best.segments, func(i, j int) bool {
		return best.segments[i].rec.CentX < best.segments[j].rec.CentX
	})

	var b strings.Builder
	for _, s := range best.segments {
		b.WriteString(s.text)
	}
	joined := b.String()
	if len(joined) > idMaxLength {
		joined = joined[:idMaxLength]
	}
	return joined, best.segments[0].rec, true
}

func minX(pg model.Polygon) float64 {
	m := pg[0].X
	for _, p := range pg[1:] {
		if p.X < m {
			m = p.X
		}
	}
	return m
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
