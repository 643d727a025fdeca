package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupSource(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"capex_hist_1":     "derived:flat_last_known",
		"net_revenue_hist": "inferred",
		"purchase_price":   "derived:ebitda_bridge",
	}

	tests := []struct {
		name      string
		field     string
		yearIndex int
		want      string
	}{
		{name: "year-qualified key wins", field: "capex_hist", yearIndex: 1, want: "derived:flat_last_known"},
		{name: "other year falls through to direct", field: "capex_hist", yearIndex: 0, want: SourceDirect},
		{name: "bare field key applies to every year", field: "net_revenue_hist", yearIndex: 2, want: "inferred"},
		{name: "scalar field", field: "purchase_price", yearIndex: 0, want: "derived:ebitda_bridge"},
		{name: "unknown field is direct", field: "sga_hist", yearIndex: 0, want: SourceDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LookupSource(sources, tt.field, tt.yearIndex))
		})
	}

	assert.Equal(t, SourceDirect, LookupSource(nil, "capex_hist", 1))
}

func TestLookupSourceYearQualifiedBeatsBare(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"ebitda_hist":   "inferred",
		"ebitda_hist_0": "derived:gross_margin",
	}
	assert.Equal(t, "derived:gross_margin", LookupSource(sources, "ebitda_hist", 0))
	assert.Equal(t, "inferred", LookupSource(sources, "ebitda_hist", 1))
}

func TestIsDerived(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDerived("derived"))
	assert.True(t, IsDerived("derived:flat_last_known"))
	assert.True(t, IsDerived("derived:some_future_method"))
	assert.False(t, IsDerived("direct"))
	assert.False(t, IsDerived("inferred"))
	assert.False(t, IsDerived("not_found"))
	assert.False(t, IsDerived(""))
}

func TestDerivationNote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Projected flat from the last known value", DerivationNote("derived:flat_last_known"))
	assert.Equal(t, "Computed as purchase price divided by EBITDA", DerivationNote("derived:entry_multiple"))

	// Unrecognized methods and the bare tag get the generic note.
	generic := "Estimated value, not read directly from the document"
	assert.Equal(t, generic, DerivationNote("derived"))
	assert.Equal(t, generic, DerivationNote("derived:unheard_of"))
}
