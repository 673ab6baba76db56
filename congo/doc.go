// Package congo extracts identity fields from Congolese documents: national
// identity cards, merchant cards and driving licenses. The layouts share one
// geometric model, a pair of header anchors with per-field extrapolation
// ratios fitted to each card template, used whenever the direct label-index
// lookups fail. The expiry date is read from the back side by a bottom-up
// pattern scan.
package congo
