package model

import (
	"fmt"
	"strings"
)

// SourceDirect marks a value read directly from the document. Tags with the
// "derived" prefix mark values estimated by an upstream process; the backend
// emits both a bare "derived" tag and method-qualified "derived:<method>"
// variants.
const (
	SourceDirect  = "direct"
	derivedPrefix = "derived"
)

// derivationNotes describes the known derivation methods for display.
// Unrecognized derived tags fall back to a generic note.
var derivationNotes = map[string]string{
	"derived:flat_last_known": "Projected flat from the last known value",
	"derived:gross_margin":    "Inferred from gross profit at the average historical gross margin",
	"derived:ebitda_bridge":   "Computed from the EBITDA bridge (gross profit, SG&A, adjustments, D&A)",
	"derived:entry_multiple":  "Computed as purchase price divided by EBITDA",
	"derived:purchase_price":  "Computed as EBITDA times the entry multiple",
}

// LookupSource resolves the provenance tag for a metric at a year position.
// Precedence: "{field}_{yearIndex}" first, then the bare "{field}" key, else
// the value is treated as directly sourced.
func LookupSource(sources map[string]string, field string, yearIndex int) string {
	if sources == nil {
		return SourceDirect
	}
	if tag, ok := sources[fmt.Sprintf("%s_%d", field, yearIndex)]; ok {
		return tag
	}
	if tag, ok := sources[field]; ok {
		return tag
	}
	return SourceDirect
}

// IsDerived reports whether a provenance tag marks an estimated value.
func IsDerived(tag string) bool {
	return strings.HasPrefix(tag, derivedPrefix)
}

// DerivationNote returns the display description for a derived tag.
func DerivationNote(tag string) string {
	if note, ok := derivationNotes[tag]; ok {
		return note
	}
	return "Estimated value, not read directly from the document"
}
