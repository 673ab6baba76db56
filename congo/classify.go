package congo

import (
	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/layout"
)

var (
	nationalFamily = classify.Family{
		{Text: "cartenationaledidentite", MaxDist: 1},
		{Text: "cartenationale", MaxDist: 1},
		{Text: "nationaledidentite", MaxDist: 1},
	}

	merchantFamily = classify.Family{
		{Text: "numerodidentificationunique", MaxDist: 3},
		{Text: "ndocument", MaxDist: 3},
		{Text: "raisonsociale", MaxDist: 3},
		{Text: "nomcommercial", MaxDist: 3},
	}

	// Student cards are recognized only to reject them.
	studentFamily = classify.Family{
		{Text: "classe", MaxDist: 1},
		{Text: "lenseignement", MaxDist: 1},
		{Text: "scolaire", MaxDist: 1},
		{Text: "education", MaxDist: 1},
		{Text: "universite", MaxDist: 1},
		{Text: "cartedidentitescolaire", MaxDist: 1},
		{Text: "cartedetudiant", MaxDist: 1},
		{Text: "candidat", MaxDist: 1},
		{Text: "grade", MaxDist: 1},
		{Text: "faculte", MaxDist: 1},
		{Text: "ecole", MaxDist: 1},
		{Text: "institut", MaxDist: 1},
		{Text: "cartescolaire", MaxDist: 1},
		{Text: "examens", MaxDist: 1},
	}

	dlFamily = classify.Family{
		{Text: "conduire", MaxDist: 1},
		{Text: "permisdeconduire", MaxDist: 1},
		{Text: "categoriesdevehicules", MaxDist: 1},
		{Text: "pourlesquelslepermisestvalable", MaxDist: 1},
		{Text: "generaldestransportsterrestres", MaxDist: 1},
	}

	passportFamily = classify.Family{
		{Text: "<<<<", MaxDist: 1},
		{Text: ">>>>", MaxDist: 1},
		{Text: "<<<", MaxDist: 1},
		{Text: "kkkk", MaxDist: 1},
		{Text: "passeport", MaxDist: 1},
		{Text: "passport", MaxDist: 1},
		{Text: "reisepass", MaxDist: 1},
		{Text: "chinese", MaxDist: 1},
	}

	passeportWord = classify.Family{{Text: "passeport", MaxDist: 1}}
	permisWord    = classify.Family{{Text: "permisdeconduire", MaxDist: 1}}

	electoralFamily = classify.Family{
		{Text: "cartedelecteur", MaxDist: 1},
		{Text: "cartedidetiteconsulaire", MaxDist: 1},
		{Text: "cartedidentitepourrefugie", MaxDist: 1},
	}
)

// table is the priority-ordered Congolese classification. Merchant and
// student headers yield to stronger passport, driving-license and electoral
// keywords when both appear on the same document.
var table = classify.Table{
	Rules: []classify.Rule{
		{Family: nationalFamily, Result: classify.NationalID},
		{Family: merchantFamily, Result: classify.MerchantCard, Overrides: []classify.Override{
			{Family: passeportWord, Result: classify.OtherID},
			{Family: permisWord, Result: classify.DrivingLicense},
			{Family: electoralFamily, Result: classify.OtherID},
		}},
		{Family: studentFamily, Result: classify.OtherID, Overrides: []classify.Override{
			{Family: passeportWord, Result: classify.OtherID},
			{Family: permisWord, Result: classify.DrivingLicense},
			{Family: electoralFamily, Result: classify.OtherID},
		}},
		{Family: dlFamily, Result: classify.DrivingLicense},
		{Family: passportFamily, Result: classify.OtherID},
	},
	Default: classify.OtherID,
}

// Classify resolves the document type of a Congolese detection set.
func Classify(records []layout.Record) classify.DocType {
	if len(records) == 0 {
		return classify.Unresolved
	}
	return table.Classify(records)
}
