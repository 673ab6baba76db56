package classify

import (
	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
)

// DocType is the resolved document type of a detection set.
type DocType int

const (
	Unresolved DocType = iota
	NationalID
	Passport
	DrivingLicense
	MerchantCard
	CertificateOfRegistration
	OtherID
)

// String returns the display name of the document type.
func (d DocType) String() string {
	switch d {
	case NationalID:
		return "National Identity Card"
	case Passport:
		return "Passport"
	case DrivingLicense:
		return "Driving License"
	case MerchantCard:
		return "Merchant Card"
	case CertificateOfRegistration:
		return "Certificate of Registration"
	case OtherID:
		return "Others"
	default:
		return "Unresolved"
	}
}

// Keyword is a single fuzzy keyphrase with its edit-distance budget.
type Keyword struct {
	Text    string
	MaxDist int
}

// Family is a set of alternative keyphrases naming the same concept, such as
// the different scripts or misspellings of a card header. A family matches if
// any of its keywords matches.
type Family []Keyword

// Matches reports whether any keyword of the family occurs in text.
func (f Family) Matches(text string) bool {
	for _, k := range f {
		if fuzzy.Match(text, k.Text, k.MaxDist) {
			return true
		}
	}
	return false
}

// Position returns the centroid X of the first record whose text matches
// the family.
func (f Family) Position(records []layout.Record) (float64, bool) {
	for _, r := range records {
		if f.Matches(r.Text()) {
			return r.CentX, true
		}
	}
	return 0, false
}

// Override redirects a matched rule to a different result when a second
// family is also present. Overrides let a broad header family yield to a more
// specific one, such as a passport header inside a national-ID rule.
type Override struct {
	Family Family
	Result DocType
}

// Positional is a tie-break between two header keyphrases that may both
// appear, such as two template versions of the same card. If the other family
// matches at a strictly smaller x-centroid than the rule family, the
// positional result wins.
type Positional struct {
	Family Family
	Result DocType
}

// Rule is one priority entry in a classification table.
type Rule struct {
	Family     Family
	Result     DocType
	Overrides  []Override
	Positional *Positional

	// MaxDetections gates the rule to detection sets of at most this many
	// records. Zero means no limit.
	MaxDetections int
}

// Table is a priority-ordered classification table. Rules are evaluated in
// order and the first matching rule decides the result; Default applies when
// nothing matches.
type Table struct {
	Rules   []Rule
	Default DocType
}

// Classify resolves the document type of a detection set. Keyword families
// are matched against the concatenated text of all records, so keyphrases
// split across adjacent detections still match; overrides and positional
// tie-breaks are then applied within the winning rule.
func (t Table) Classify(records []layout.Record) DocType {
	joined := layout.JoinText(records, "---")

	for _, rule := range t.Rules {
		if rule.MaxDetections > 0 && len(records) > rule.MaxDetections {
			continue
		}
		if !rule.Family.Matches(joined) {
			continue
		}

		result := rule.Result
		for _, ov := range rule.Overrides {
			if ov.Family.Matches(joined) {
				result = ov.Result
				break
			}
		}

		if rule.Positional != nil {
			ruleX, okRule := rule.Family.Position(records)
			otherX, okOther := rule.Positional.Family.Position(records)
			if okRule && okOther && otherX < ruleX {
				result = rule.Positional.Result
			}
		}

		return result
	}

	return t.Default
}
