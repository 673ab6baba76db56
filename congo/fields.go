package congo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/model"
)

// Field names in the fixed Congolese output schema.
const (
	FieldFirstName    = "First Name"
	FieldLastName     = "Last Name"
	FieldDateOfBirth  = "Date of Birth"
	FieldGender       = "Gender"
	FieldPlaceOfBirth = "Place of Birth"
	FieldIDNumber     = "ID Number"
	FieldDateOfExpiry = "Date of Expiry"
)

// Schema lists the field names every Congolese extraction returns, in order.
func Schema() []string {
	return []string{
		FieldFirstName,
		FieldLastName,
		FieldDateOfBirth,
		FieldGender,
		FieldPlaceOfBirth,
		FieldIDNumber,
		FieldDateOfExpiry,
	}
}

// Extrapolation ratios fitted to the printed geometry of each card template.
// The predicted row is republic.CentY + k*(header.CentY - republic.CentY);
// the ratios are opaque template measurements, not derivable values.
const (
	nidLastNameRatio  = 2.3
	nidFirstNameRatio = 3.15
	nidGenderRatio    = 5.54
	nidPlaceRatio     = 5.1

	merchantLastNameRatio  = 5.0
	merchantFirstNameRatio = 6.5
	merchantGenderRatio    = 10.5
	merchantPlaceRatio     = 9.0
	merchantIDRatio        = 3.0

	dlLastNameRatio  = 2.0
	dlFirstNameRatio = 5.5
	dlPlaceRatio     = 5.0
	dlIDRatio        = 6.5
)

const (
	// cninLength is the printed length of the national ID number; longer
	// OCR tokens keep only the tail.
	cninLength = 13

	// dlNumberLength is the printed length of the license number.
	dlNumberLength = 11

	// genderLabelMaxLen rejects sexe-label records too long to be the
	// bare label cell.
	genderLabelMaxLen = 5

	// expiryTokenMaxLen rejects merged lines that merely contain a
	// date-like digit run.
	expiryTokenMaxLen = 12

	// birthplaceLabelSimilarity accepts heavily garbled "lieu de
	// naissance" labels the bounded edit-distance test misses.
	birthplaceLabelSimilarity = 0.6
)

var (
	// DOB fallback patterns over the concatenated document text, with
	// separators already stripped: DDMMYYYY, or DDMMYY on merchant cards.
	dobLongPattern  = regexp.MustCompile(`\d{8}`)
	dobShortPattern = regexp.MustCompile(`\d{6}`)

	expiryLongPattern  = regexp.MustCompile(`\d{2}[-./:]?\d{2}[-./:]?\d{4}`)
	expiryShortPattern = regexp.MustCompile(`\d{2}[-./:]?\d{2}[-./:]?\d{2}`)

	upperDigitPattern      = regexp.MustCompile(`^[A-Z0-9]*$`)
	nonLetterSpacePattern  = regexp.MustCompile(`[^a-zA-Z\s]`)
	lowercaseLetterPattern = regexp.MustCompile(`[a-z]`)
)

// ExtractFields runs the Congolese extraction flow. Only national identity
// cards, merchant cards and driving licenses are extracted; any other
// classification yields the fixed schema with every field null.
func ExtractFields(ctx *extract.Context) []model.Field {
	docType := Classify(ctx.Front)
	if docType != classify.NationalID && docType != classify.MerchantCard && docType != classify.DrivingLicense {
		return model.NullFields(Schema())
	}

	records := layout.SortByY(ctx.Front)
	labels := findLabels(records, docType)

	last := ctx.Guard(FieldLastName, func() model.Field {
		return extractLastName(records, labels, docType)
	})
	first := ctx.Guard(FieldFirstName, func() model.Field {
		return extractFirstName(records, labels, docType)
	})

	// Identical first and last names mean the nominal lookups landed on
	// the same record; re-resolve the last name geometrically.
	if first.Value != nil && last.Value != nil && *first.Value == *last.Value {
		if ratio, ok := lastNameRatio(docType); ok {
			if r, ok := extrapolate(records, ratio, docType); ok {
				last = recordField(FieldLastName, r)
			}
		}
	}

	dob := ctx.Guard(FieldDateOfBirth, func() model.Field {
		return extractDateOfBirth(records, labels, docType)
	})
	gender := ctx.Guard(FieldGender, func() model.Field {
		return extractGender(records, labels, docType)
	})
	pob := ctx.Guard(FieldPlaceOfBirth, func() model.Field {
		return extractPlaceOfBirth(records, labels, docType)
	})
	idNumber := ctx.Guard(FieldIDNumber, func() model.Field {
		return extractIDNumber(records, labels, docType)
	})
	expiry := ctx.Guard(FieldDateOfExpiry, func() model.Field {
		return extractExpiry(ctx.Back, docType)
	})

	return []model.Field{first, last, dob, gender, pob, idNumber, expiry}
}

// labelIndexes holds the positions of the matched field labels within the
// sorted records, or -1 where no label was found.
type labelIndexes struct {
	nom     int
	prenoms int
	dob     int
	gender  int
	pob     int
	id      int
}

// findLabels scans the sorted records once for every field label. The first
// match wins except for the birthplace label, where the last match wins; the
// CNIN label is only meaningful on national identity cards.
func findLabels(records []layout.Record, docType classify.DocType) labelIndexes {
	labels := labelIndexes{nom: -1, prenoms: -1, dob: -1, gender: -1, pob: -1, id: -1}
	for i, r := range records {
		text := r.Text()
		if labels.nom < 0 && fuzzy.Match(text, "nom", 1) {
			labels.nom = i
		}
		if labels.prenoms < 0 && fuzzy.Match(text, "prenoms", 2) {
			labels.prenoms = i
		}
		if labels.dob < 0 && fuzzy.Match(text, "datedenaissance", 4) {
			labels.dob = i
		}
		if labels.gender < 0 && fuzzy.Match(text, "sexe", 1) {
			labels.gender = i
		}
		if fuzzy.Match(text, "lieudenaissance", 2) || looksLikeBirthplaceLabel(text) {
			labels.pob = i
		}
		if docType == classify.NationalID && labels.id < 0 && fuzzy.Match(text, "cnin", 1) {
			labels.id = i
		}
	}
	return labels
}

func looksLikeBirthplaceLabel(text string) bool {
	return levenshtein.Similarity(fuzzy.Normalize(text), "lieudenaissance", nil) >= birthplaceLabelSimilarity
}

// typeHeaderKeyword is the second extrapolation anchor, printed below the
// republic header on each card type.
func typeHeaderKeyword(docType classify.DocType) string {
	switch docType {
	case classify.NationalID:
		return "cartenationaledidentite"
	case classify.MerchantCard:
		return "unitetravailprogres"
	case classify.DrivingLicense:
		return "permisdeconduire"
	}
	return ""
}

func lastNameRatio(docType classify.DocType) (float64, bool) {
	switch docType {
	case classify.NationalID:
		return nidLastNameRatio, true
	case classify.MerchantCard:
		return merchantLastNameRatio, true
	case classify.DrivingLicense:
		return dlLastNameRatio, true
	}
	return 0, false
}

func firstNameRatio(docType classify.DocType) (float64, bool) {
	switch docType {
	case classify.NationalID:
		return nidFirstNameRatio, true
	case classify.MerchantCard:
		return merchantFirstNameRatio, true
	case classify.DrivingLicense:
		return dlFirstNameRatio, true
	}
	return 0, false
}

func genderRatio(docType classify.DocType) (float64, bool) {
	switch docType {
	case classify.NationalID:
		return nidGenderRatio, true
	case classify.MerchantCard:
		return merchantGenderRatio, true
	}
	// The license template has no fitted gender position.
	return 0, false
}

func placeRatio(docType classify.DocType) (float64, bool) {
	switch docType {
	case classify.NationalID:
		return nidPlaceRatio, true
	case classify.MerchantCard:
		return merchantPlaceRatio, true
	case classify.DrivingLicense:
		return dlPlaceRatio, true
	}
	return 0, false
}

// extrapolate predicts a row from the republic and type headers and returns
// the record closest to it. When a header was not matched, the two topmost
// records stand in for the anchors.
func extrapolate(records []layout.Record, ratio float64, docType classify.DocType) (layout.Record, bool) {
	if len(records) < 2 {
		return layout.Record{}, false
	}
	keyword := typeHeaderKeyword(docType)
	republic, header := records[0], records[1]
	for _, r := range records {
		if fuzzy.Match(r.Text(), "republiqueducongo", 4) {
			republic = r
		}
		if keyword != "" && fuzzy.Match(r.Text(), keyword, 4) {
			header = r
		}
	}
	return extract.ClosestToY(records, extract.Extrapolate(republic, header, ratio))
}

func recordAt(records []layout.Record, i int) (layout.Record, bool) {
	if i < 0 || i >= len(records) {
		return layout.Record{}, false
	}
	return records[i], true
}

// extractLastName reads the record after the nom label, or the one before
// the prenoms label, falling back to extrapolation.
func extractLastName(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	if labels.nom >= 0 {
		if r, ok := recordAt(records, labels.nom+1); ok {
			return recordField(FieldLastName, r)
		}
	}
	if labels.prenoms >= 0 {
		if r, ok := recordAt(records, labels.prenoms-1); ok {
			return recordField(FieldLastName, r)
		}
	}
	if ratio, ok := lastNameRatio(docType); ok {
		if r, ok := extrapolate(records, ratio, docType); ok {
			return recordField(FieldLastName, r)
		}
	}
	return model.NullField(FieldLastName)
}

// extractFirstName reads the record after the prenoms label, or the one
// before the date-of-birth label, falling back to extrapolation.
func extractFirstName(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	if labels.prenoms >= 0 {
		if r, ok := recordAt(records, labels.prenoms+1); ok {
			return recordField(FieldFirstName, r)
		}
	}
	if labels.dob >= 0 {
		if r, ok := recordAt(records, labels.dob-1); ok {
			return recordField(FieldFirstName, r)
		}
	}
	if ratio, ok := firstNameRatio(docType); ok {
		if r, ok := extrapolate(records, ratio, docType); ok {
			return recordField(FieldFirstName, r)
		}
	}
	return model.NullField(FieldFirstName)
}

// extractDateOfBirth decodes the digit-packed token after the label, or the
// first date-like digit run anywhere in the concatenated document text. The
// token reads as day-month-year: eight digits on most cards, six with a
// century-cutoff year on merchant cards.
func extractDateOfBirth(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	if labels.dob >= 0 {
		if r, ok := recordAt(records, labels.dob+1); ok {
			token := stripDateNoise(r.Text())
			if allDigits(token) {
				if d, ok := decodeDOB(token, docType); ok {
					pg := r.Polygon()
					return model.NewField(FieldDateOfBirth, d.ISO(), &pg, r.Confidence())
				}
			}
		}
	}

	var texts []string
	for _, r := range records {
		texts = append(texts, r.Text())
	}
	joined := stripDateNoise(strings.Join(texts, " "))

	pattern := dobLongPattern
	if docType == classify.MerchantCard {
		pattern = dobShortPattern
	}
	token := pattern.FindString(joined)
	if token == "" {
		return model.NullField(FieldDateOfBirth)
	}
	d, ok := decodeDOB(token, docType)
	if !ok {
		return model.NullField(FieldDateOfBirth)
	}
	if r, ok := findSource(records, token, ".-/"); ok {
		pg := r.Polygon()
		return model.NewField(FieldDateOfBirth, d.ISO(), &pg, r.Confidence())
	}
	return bareField(FieldDateOfBirth, d.ISO())
}

func stripDateNoise(s string) string {
	return strings.NewReplacer(".", "", " ", "", "/", "").Replace(s)
}

func decodeDOB(token string, docType classify.DocType) (extract.DateMatch, bool) {
	if docType == classify.MerchantCard {
		return extract.DecodePacked6(token)
	}
	return extract.DecodePacked8(token)
}

// extractGender reads the sexe label record itself, which usually carries
// the value on the same line. An m or w anywhere in it means male, anything
// else female; over-long label records are distrusted and re-resolved by
// extrapolation where the template has a fitted gender position.
func extractGender(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	if labels.gender >= 0 {
		r := records[labels.gender]
		text := strings.ToLower(strings.ReplaceAll(r.Text(), " ", ""))
		if len(text) <= genderLabelMaxLen {
			pg := r.Polygon()
			return model.NewField(FieldGender, genderValue(text), &pg, r.Confidence())
		}
	}
	if ratio, ok := genderRatio(docType); ok {
		if r, ok := extrapolate(records, ratio, docType); ok {
			text := strings.ToLower(strings.ReplaceAll(r.Text(), " ", ""))
			pg := r.Polygon()
			return model.NewField(FieldGender, genderValue(text), &pg, r.Confidence())
		}
	}
	return model.NullField(FieldGender)
}

func genderValue(text string) string {
	if strings.ContainsAny(text, "mw") {
		return "M"
	}
	return "F"
}

// extractPlaceOfBirth reads the record after the birthplace label, falling
// back to extrapolation with non-letter characters stripped.
func extractPlaceOfBirth(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	if labels.pob >= 0 {
		if r, ok := recordAt(records, labels.pob+1); ok {
			return recordField(FieldPlaceOfBirth, r)
		}
	}
	if ratio, ok := placeRatio(docType); ok {
		if r, ok := extrapolate(records, ratio, docType); ok {
			value := nonLetterSpacePattern.ReplaceAllString(r.Text(), "")
			pg := r.Polygon()
			return model.NewField(FieldPlaceOfBirth, value, &pg, r.Confidence())
		}
	}
	return model.NullField(FieldPlaceOfBirth)
}

// extractIDNumber resolves the document number. National cards print the
// CNIN as a long mixed token, often split around a two-character suffix; it
// is searched on the bottom line first, then around the CNIN label, then in
// a whole-document token scan. License numbers come from a reverse token
// scan, with extrapolation as the last resort; merchant cards only have the
// extrapolated position.
func extractIDNumber(records []layout.Record, labels labelIndexes, docType classify.DocType) model.Field {
	value := ""

	switch docType {
	case classify.NationalID:
		if len(records) > 0 {
			value, _ = cninFromText(records[len(records)-1].Text())
		}
		if value == "" && labels.id >= 0 {
			value, _ = cninFromText(records[labels.id].Text())
		}
		if value == "" && labels.id >= 1 {
			value, _ = cninFromText(records[labels.id-1].Text())
		}
		if value == "" {
			value, _ = cninScan(records)
		}

	case classify.DrivingLicense:
		value, _ = licenseScan(records)
		if value == "" {
			if r, ok := extrapolate(records, dlIDRatio, docType); ok {
				value = tail(r.Text(), dlNumberLength)
			}
		}

	case classify.MerchantCard:
		if r, ok := extrapolate(records, merchantIDRatio, docType); ok {
			value = r.Text()
		}
	}

	if value == "" {
		return model.NullField(FieldIDNumber)
	}
	if r, ok := findSource(records, value, "-"); ok {
		pg := r.Polygon()
		return model.NewField(FieldIDNumber, value, &pg, r.Confidence())
	}
	return bareField(FieldIDNumber, value)
}

// cninFromText splits one record on dashes and spaces and looks for the
// CNIN token: longer than ten characters, not purely numeric, with a
// non-digit leading its thirteen-character tail. A trailing two-character
// token is kept as a suffix. The last qualifying token wins.
func cninFromText(text string) (string, bool) {
	var tokens []string
	for _, part := range strings.Split(text, "-") {
		tokens = append(tokens, strings.Split(part, " ")...)
	}
	if len(tokens) == 0 {
		return "", false
	}

	suffix := ""
	if len(tokens[len(tokens)-1]) == 2 {
		suffix = tokens[len(tokens)-1]
	}

	value := ""
	for _, tok := range tokens {
		if len(tok) <= 10 || allDigits(tok) {
			continue
		}
		t := tail(tok, cninLength)
		if t[0] >= '0' && t[0] <= '9' {
			continue
		}
		value = t + suffix
	}
	return value, value != ""
}

// cninScan is the whole-document fallback: every space- and dash-separated
// token, scanned bottom-up with lowercase noise removed. A two-digit token
// updates the suffix as the scan passes it.
func cninScan(records []layout.Record) (string, bool) {
	tokens := splitAll(records, "-")
	if len(tokens) == 0 {
		return "", false
	}

	suffix := ""
	if len(tokens[len(tokens)-1]) == 2 {
		suffix = tokens[len(tokens)-1]
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := lowercaseLetterPattern.ReplaceAllString(tokens[i], "")
		if len(tok) == 2 && allDigits(tok) {
			suffix = tok
			continue
		}
		if !upperDigitPattern.MatchString(tok) || len(tok) < cninLength {
			continue
		}
		if !hasDigit(tok) || !hasUpper(tok) {
			continue
		}
		t := tail(tok, cninLength)
		if t[0] >= '0' && t[0] <= '9' {
			continue
		}
		return t + suffix, true
	}
	return "", false
}

// licenseScan looks bottom-up for the license number: an upper-and-digit
// token of at least eleven characters whose eleven-character tail starts
// with a letter. Records split on spaces and colons.
func licenseScan(records []layout.Record) (string, bool) {
	tokens := splitAll(records, ":")

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := lowercaseLetterPattern.ReplaceAllString(tokens[i], "")
		if !upperDigitPattern.MatchString(tok) || len(tok) < dlNumberLength {
			continue
		}
		if !hasDigit(tok) || !hasUpper(tok) {
			continue
		}
		t := tail(tok, dlNumberLength)
		if t[0] >= '0' && t[0] <= '9' {
			continue
		}
		return t, true
	}
	return "", false
}

// splitAll joins every record text and splits on spaces plus one extra
// separator.
func splitAll(records []layout.Record, extra string) []string {
	var texts []string
	for _, r := range records {
		texts = append(texts, r.Text())
	}
	var tokens []string
	for _, part := range strings.Split(strings.Join(texts, " "), " ") {
		tokens = append(tokens, strings.Split(part, extra)...)
	}
	return tokens
}

// extractExpiry scans the back side bottom-up for a date-shaped token and
// reads it as day, month and a two-digit year in the 2000s.
func extractExpiry(back []layout.Record, docType classify.DocType) model.Field {
	records := layout.SortByY(back)

	pattern := expiryLongPattern
	if docType == classify.MerchantCard {
		pattern = expiryShortPattern
	}

	for i := len(records) - 1; i >= 0; i-- {
		text := strings.ToLower(strings.ReplaceAll(records[i].Text(), " ", ""))
		if len(text) > expiryTokenMaxLen || !pattern.MatchString(text) {
			continue
		}
		digits := extract.Digits(text)
		if len(digits) < 6 {
			continue
		}
		day, _ := strconv.Atoi(digits[0:2])
		month, _ := strconv.Atoi(digits[2:4])
		if day > 31 || month > 12 {
			continue
		}
		value := "20" + digits[len(digits)-2:] + "-" + digits[2:4] + "-" + digits[0:2]
		pg := records[i].Polygon()
		return model.NewField(FieldDateOfExpiry, value, &pg, records[i].Confidence())
	}
	return model.NullField(FieldDateOfExpiry)
}

// findSource locates the record whose text contains value, ignoring case,
// spaces and the given separator characters, so assembled values can carry
// the polygon and score of the line they came from.
func findSource(records []layout.Record, value, strip string) (layout.Record, bool) {
	needle := strings.ToLower(strings.ReplaceAll(value, " ", ""))
	for _, r := range records {
		hay := strings.ToLower(strings.ReplaceAll(r.Text(), " ", ""))
		for _, s := range strip {
			hay = strings.ReplaceAll(hay, string(s), "")
		}
		if strings.Contains(hay, needle) {
			return r, true
		}
	}
	return layout.Record{}, false
}

func recordField(name string, r layout.Record) model.Field {
	pg := r.Polygon()
	return model.NewField(name, r.Text(), &pg, r.Confidence())
}

// bareField carries a value assembled across several records, which has no
// single source polygon.
func bareField(name, value string) model.Field {
	if value == "" {
		return model.NullField(name)
	}
	return model.Field{Name: name, Value: &value}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
