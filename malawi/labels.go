package malawi

import (
	"regexp"
	"strings"

	"github.com/tsawler/idscan/fuzzy"
)

// Label predicates work on the lowercased raw text, spaces included. The
// variant lists are recognizer outputs collected from real cards; extending
// them changes which records anchor each field.

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func isExpiryLabel(text string) bool {
	t := strings.ToLower(text)
	if containsAny(t, "date", "cate", "dae", "dat", "dme") && containsAny(t, "exp", "xpiry") {
		return true
	}
	return strings.Contains(t, "exp") && strings.Contains(t, " ")
}

func isIssueLabel(text string) bool {
	t := strings.ToLower(text)
	if containsAny(t, "date", "cate", "dae", "dat") && containsAny(t, "iss", "issue") {
		return true
	}
	return strings.Contains(t, "iss") && strings.Contains(t, " ")
}

func isBirthLabel(text string) bool {
	t := strings.ToLower(text)
	if containsAny(t, "date", "cate", "dae", "dat") && containsAny(t, "birth", "bint") {
		return true
	}
	return strings.Contains(t, "birth") && strings.Contains(t, " ")
}

func isLastNameLabel(text string) bool {
	t := strings.ToLower(text)
	return containsAny(t,
		"bambo", "banbo", "bambu", "bambe",
		"surname", "sunam", "sumane", "sumame", "sumam", "surmam", "surnam")
}

// isFirstNameLabel matches the given-name label ("Maina a mwini" or "Other
// Names") while rejecting anything that also looks like the surname label,
// which shares tokens on garbled reads.
func isFirstNameLabel(text string) bool {
	t := strings.ToLower(text)
	matched := containsAny(t, "maina", "ena/", "other name", "other nane", "oter nane", "oter", "dzina") ||
		(strings.Contains(t, "other") && strings.Contains(t, "name"))
	if !matched {
		return false
	}
	return !containsAny(t, "bambo", "banbo", "bambu", "surname", "sumane", "sumame", "sumam", "surmam", "surnam")
}

func isGenderLabel(text string) bool {
	t := strings.ToLower(text)
	return t == "sex" || t == "ser" || t == "ses"
}

// isGenderValueBlock matches the Chichewa gender words printed above the
// name on some card revisions.
func isGenderValueBlock(text string) bool {
	return containsAny(strings.ToLower(text), "mwamuna", "mkazi")
}

// isIDLabel matches the identification-number label but not the citizen
// identification header, which contains the same word.
func isIDLabel(text string) bool {
	t := strings.ToLower(text)
	if !fuzzy.Match(t, "identification", 3) {
		return false
	}
	return !containsAny(t, "citizen", "citzen", "citien", "citiz", "chiphaso", "chip")
}

func isRepublicBlock(text string) bool {
	return containsAny(strings.ToLower(text), "republic", "malawi")
}

// isNationalityToken matches the MWI nationality code, including the common
// 1-for-I misread.
func isNationalityToken(text string) bool {
	t := strings.ToLower(text)
	return t == "mw1" || t == "mwi" || t == "mw"
}

var (
	digitRe    = regexp.MustCompile(`\d`)
	nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

func hasDigits(text string) bool {
	return digitRe.MatchString(text)
}

func stripNonAlnum(text string) string {
	return nonAlnumRe.ReplaceAllString(text, "")
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
