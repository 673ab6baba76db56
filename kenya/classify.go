package kenya

import (
	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/layout"
)

// Keyword families observed on documents submitted through the Kenyan flow.
// Distances were tuned against real OCR output; short keywords stay at low
// budgets to avoid false positives.
var (
	rejectedKeywords = classify.Family{
		{Text: "hudumanamba", MaxDist: 1},
		{Text: "refugee", MaxDist: 1},
		{Text: "refugeeid", MaxDist: 1},
		{Text: "foreignercertificate", MaxDist: 1},
		{Text: "nationalidcard", MaxDist: 1},
	}

	registrationKeywords = classify.Family{
		{Text: "certificateofregistration", MaxDist: 1},
		{Text: "certificateofincorporation", MaxDist: 1},
	}

	passportStrongKeywords = classify.Family{
		{Text: "<<", MaxDist: 1},
		{Text: ">>", MaxDist: 1},
		{Text: "republicofindia", MaxDist: 1},
		{Text: "migrationofficer", MaxDist: 1},
	}

	passportWeakKeywords = classify.Family{
		{Text: "passport", MaxDist: 1},
	}

	nationalKeywords = classify.Family{
		{Text: "jamhuriyakenya", MaxDist: 3},
	}

	swahiliHeader = classify.Family{{Text: "jamhuriyakenya", MaxDist: 3}}
	englishHeader = classify.Family{{Text: "republicofkenya", MaxDist: 3}}
)

// passportMaxDetections caps the weak passport rule: a lone "passport" token
// only counts on sparse detection sets, since ID card backs mention passports
// in fine print.
const passportMaxDetections = 25

// Classify resolves the document type from front-side records. Huduma cards
// and foreigner documents are deliberately unresolved; the extraction flow
// only handles national IDs.
func Classify(records []layout.Record) classify.DocType {
	joined := layout.JoinText(records, "---")

	if rejectedKeywords.Matches(joined) {
		return classify.Unresolved
	}
	if registrationKeywords.Matches(joined) {
		return classify.CertificateOfRegistration
	}

	// Both header scripts present: the national ID prints the Swahili
	// header to the left of the English one.
	if jamX, ok := swahiliHeader.Position(records); ok {
		if repX, ok := englishHeader.Position(records); ok && jamX < repX {
			return classify.NationalID
		}
	}

	if passportStrongKeywords.Matches(joined) {
		return classify.Passport
	}
	if nationalKeywords.Matches(joined) {
		return classify.NationalID
	}
	if passportWeakKeywords.Matches(joined) && len(records) <= passportMaxDetections {
		return classify.Passport
	}

	return classify.Unresolved
}
