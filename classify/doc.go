// Package classify determines the document type of an identity card from its
// OCR text. Each country defines a table of priority-ordered rules built from
// keyword families; the first family that matches decides the type, subject
// to override families and positional tie-breaks.
package classify
