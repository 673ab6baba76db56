package layout

import "strings"

// SameLine reports whether two records sit on the same visual line. The test
// projects the right-edge midpoint of the left record onto the left edge of
// the right record and vice versa; both midpoints must fall inside the other
// record's edge span. Using edge midpoints rather than centroids keeps the
// test stable on rotated or skewed card photos.
func SameLine(a, b Record) bool {
	left, right := a, b
	if b.CentX < a.CentX {
		left, right = b, a
	}

	lp := left.Polygon()
	rp := right.Polygon()

	// Vertical span of the right record's left edge, and of the left
	// record's right edge.
	if !within(lp.RightMidY(), rp[0].Y, rp[3].Y) {
		return false
	}
	return within(rp.LeftMidY(), lp[1].Y, lp[2].Y)
}

// within reports whether y falls in the closed interval spanned by a and b,
// in either order.
func within(y, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return y >= a && y <= b
}

// GroupLines partitions records into visual lines using SameLine. Membership
// is transitive: a record joins a line if it shares a line with any existing
// member. Each returned line is ordered left to right.
func GroupLines(records []Record) [][]Record {
	visited := make([]bool, len(records))
	var lines [][]Record

	for i := range records {
		if visited[i] {
			continue
		}
		visited[i] = true
		line := []Record{records[i]}

		for {
			grew := false
			for j := range records {
				if visited[j] {
					continue
				}
				for _, member := range line {
					if SameLine(member, records[j]) {
						visited[j] = true
						line = append(line, records[j])
						grew = true
						break
					}
				}
			}
			if !grew {
				break
			}
		}

		lines = append(lines, SortByX(line))
	}

	return lines
}

// LineText joins the text of a line's records left to right and returns the
// mean detection confidence.
func LineText(line []Record) (string, float64) {
	if len(line) == 0 {
		return "", 0
	}

	parts := make([]string, 0, len(line))
	total := 0.0
	for _, r := range line {
		parts = append(parts, r.Text())
		total += r.Confidence()
	}
	return strings.Join(parts, " "), total / float64(len(line))
}

// JoinText concatenates the text of all records with the given separator, in
// record order. Classifiers match keywords against this joined view.
func JoinText(records []Record, sep string) string {
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, r.Text())
	}
	return strings.Join(parts, sep)
}
