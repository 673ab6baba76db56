// Package kenya extracts identity fields from Kenyan national ID cards. Two
// card generations are in circulation with different layouts; a header probe
// selects between the old-card and new-card strategies. Records are kept in
// detection order because the heuristics below were fitted against the OCR
// engine's emission order, not reading order.
package kenya
