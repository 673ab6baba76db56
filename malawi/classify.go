package malawi

import (
	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/layout"
)

var (
	nationalKeywords = classify.Family{
		{Text: "republicofmalawi", MaxDist: 3},
		{Text: "citizenidentification", MaxDist: 3},
		{Text: "identification", MaxDist: 3},
		{Text: "chiphasochanzika", MaxDist: 3},
	}

	// The card back carries a machine-readable zone, so MRZ chevrons
	// alone must not classify as a passport.
	nationalBackKeywords = classify.Family{
		{Text: "nationalregistrationbureau", MaxDist: 1},
		{Text: "registrationbureau", MaxDist: 1},
	}

	passportStrongKeywords = classify.Family{
		{Text: "<<", MaxDist: 1},
		{Text: ">>", MaxDist: 1},
	}

	passportWeakKeywords = classify.Family{
		{Text: "passport", MaxDist: 1},
		{Text: "passeport", MaxDist: 1},
		{Text: "republicofsouthafrica", MaxDist: 1},
		{Text: "republicofindia", MaxDist: 1},
	}

	dlKeywords = classify.Family{
		{Text: "drivinglicence", MaxDist: 1},
		{Text: "driving", MaxDist: 1},
		{Text: "licence", MaxDist: 1},
		{Text: "cartadeconducao", MaxDist: 1},
		{Text: "permisdeconduire", MaxDist: 1},
	}
)

// Classify resolves the document type from the detection set. Passport
// evidence is checked before the national keywords because passports mention
// nationality phrases that overlap the ID card's vocabulary.
func Classify(records []layout.Record) classify.DocType {
	if len(records) == 0 {
		return classify.Unresolved
	}
	joined := layout.JoinText(records, "---")

	if passportStrongKeywords.Matches(joined) {
		if nationalBackKeywords.Matches(joined) {
			return classify.NationalID
		}
		return classify.Passport
	}
	if passportWeakKeywords.Matches(joined) {
		return classify.Passport
	}
	if nationalKeywords.Matches(joined) {
		return classify.NationalID
	}
	if dlKeywords.Matches(joined) {
		return classify.DrivingLicense
	}
	return classify.OtherID
}
