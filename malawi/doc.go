// Package malawi extracts identity fields from the Malawian national
// registration card. The layout prints every value directly below its label,
// so extraction is label-anchored: find the label by its noisy OCR variants,
// then take the nearest horizontally overlapping record below it. Date
// fields fall back to a whole-card date scan when their labels are missing.
package malawi
