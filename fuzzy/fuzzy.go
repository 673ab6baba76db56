package fuzzy

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Match reports whether keyword occurs within text with at most maxDist
// character edits (insertions, deletions or substitutions). Both strings are
// normalized before comparison. A maxDist of zero degrades to an exact
// substring test.
func Match(text, keyword string, maxDist int) bool {
	t := Normalize(text)
	k := Normalize(keyword)
	if k == "" {
		return true
	}
	if maxDist <= 0 {
		return strings.Contains(t, k)
	}
	return approxContains(t, k, maxDist)
}

// approxContains runs a bounded edit-distance scan of keyword against every
// substring of text. The first row is zero-initialized so a match may begin
// at any position in text.
func approxContains(text, keyword string, maxDist int) bool {
	kr := []rune(keyword)
	tr := []rune(text)
	if len(kr)-len(tr) > maxDist {
		return false
	}

	prev := make([]int, len(kr)+1)
	curr := make([]int, len(kr)+1)
	for i := range prev {
		prev[i] = i
	}
	if prev[len(kr)] <= maxDist {
		return true
	}

	for _, tc := range tr {
		curr[0] = 0
		for j := 1; j <= len(kr); j++ {
			cost := 1
			if kr[j-1] == tc {
				cost = 0
			}
			curr[j] = min(min(curr[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		if curr[len(kr)] <= maxDist {
			return true
		}
		prev, curr = curr, prev
	}
	return false
}

// Subsequence reports whether every character of keyword appears in text in
// order, not necessarily contiguously. Both strings are normalized first.
func Subsequence(text, keyword string) bool {
	t := Normalize(text)
	k := Normalize(keyword)
	if k == "" {
		return true
	}
	ki := 0
	kr := []rune(k)
	for _, tc := range t {
		if tc == kr[ki] {
			ki++
			if ki == len(kr) {
				return true
			}
		}
	}
	return false
}

// Distance returns the whole-string edit distance between the normalized
// forms of a and b.
func Distance(a, b string) int {
	return levenshtein.Distance(Normalize(a), Normalize(b), nil)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
