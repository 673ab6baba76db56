// Package madagascar extracts the card number from Malagasy national
// identity cards. Only the laharana number is printed reliably enough to
// read; the rest of the schema is returned as fixed null placeholders. The
// number is often emitted as several short fragments, so a segmented
// fallback reassembles it row by row when the direct read fails or comes
// back suspiciously short.
package madagascar
