package extract

import (
	"math"

	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
)

// FindAnchor returns the index of the first record whose text fuzzy-matches
// keyword within maxDist edits.
func FindAnchor(records []layout.Record, keyword string, maxDist int) (int, bool) {
	for i, r := range records {
		if fuzzy.Match(r.Text(), keyword, maxDist) {
			return i, true
		}
	}
	return 0, false
}

// FindAnchorAny returns the index of the first record matching any of the
// given keywords, all at the same distance budget.
func FindAnchorAny(records []layout.Record, keywords []string, maxDist int) (int, bool) {
	for i, r := range records {
		for _, k := range keywords {
			if fuzzy.Match(r.Text(), k, maxDist) {
				return i, true
			}
		}
	}
	return 0, false
}

// Extrapolate predicts a vertical position from two anchors: the target sits
// at ratio k of the distance from the first anchor to the second. The ratios
// are empirically fitted to each card template and must be treated as opaque
// constants.
func Extrapolate(a1, a2 layout.Record, k float64) float64 {
	return a1.CentY + k*(a2.CentY-a1.CentY)
}

// ClosestToY returns the record whose centroid Y is nearest to y.
func ClosestToY(records []layout.Record, y float64) (layout.Record, bool) {
	if len(records) == 0 {
		return layout.Record{}, false
	}
	best := records[0]
	bestDist := math.Abs(records[0].CentY - y)
	for _, r := range records[1:] {
		if d := math.Abs(r.CentY - y); d < bestDist {
			best = r
			bestDist = d
		}
	}
	return best, true
}

// NearestBelow returns the record closest below the label, restricted to
// candidates whose horizontal span overlaps the label's and whose top edge
// sits below the label's top edge. Ties resolve to the smallest vertical
// distance between top edges. The accept predicate, when non-nil, filters
// candidates by text.
func NearestBelow(records []layout.Record, label layout.Record, accept func(layout.Record) bool) (layout.Record, bool) {
	lp := label.Polygon()
	var best layout.Record
	bestDist := math.Inf(1)
	found := false

	for _, r := range records {
		rp := r.Polygon()
		if rp.TopY() <= lp.TopY() {
			continue
		}
		if rp.RightX() <= lp.LeftX() || lp.RightX() <= rp.LeftX() {
			continue
		}
		if accept != nil && !accept(r) {
			continue
		}
		if d := rp.TopY() - lp.TopY(); d < bestDist {
			best = r
			bestDist = d
			found = true
		}
	}
	return best, found
}

// NearestAbove is the mirror of NearestBelow: the closest horizontally
// overlapping record whose top edge sits above the label's.
func NearestAbove(records []layout.Record, label layout.Record, accept func(layout.Record) bool) (layout.Record, bool) {
	lp := label.Polygon()
	var best layout.Record
	bestDist := math.Inf(1)
	found := false

	for _, r := range records {
		rp := r.Polygon()
		if rp.TopY() >= lp.TopY() {
			continue
		}
		if rp.RightX() <= lp.LeftX() || lp.RightX() <= rp.LeftX() {
			continue
		}
		if accept != nil && !accept(r) {
			continue
		}
		if d := lp.TopY() - rp.TopY(); d < bestDist {
			best = r
			bestDist = d
			found = true
		}
	}
	return best, found
}
