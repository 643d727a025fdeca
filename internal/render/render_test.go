package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dealdesk-cli/internal/integrity"
	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

func fp(v float64) *float64 { return &v }

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1,000"},
		{1234.5, "$1,234.5"},
		{1234.56, "$1,234.6"},
		{-535, "-$535"},
		{-1234567.8, "-$1,234,567.8"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.in), "Money(%v)", tt.in)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "6.75%", Percent(0.0675))
	assert.Equal(t, "100%", Percent(1))
	assert.Equal(t, "0%", Percent(0))
}

func TestCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "--", Cell(nil, "direct"))
	assert.Equal(t, "$1,200", Cell(fp(1200), "direct"))
	assert.Equal(t, "$1,200", Cell(fp(1200), "inferred"))
	assert.Equal(t, "$1,200 (est.)", Cell(fp(1200), "derived"))
	assert.Equal(t, "$1,200 (est.)", Cell(fp(1200), "derived:flat_last_known"))
}

func TestHistoricalTable(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		HistoricalYears: []string{"2022", "2023", "2024"},
		Financials: dealdesk.Financials{
			NetRevenueHist: []*float64{fp(10000), fp(11000), nil},
			CapexHist:      []*float64{fp(100), fp(110), fp(120)},
		},
		FieldSources: map[string]string{
			"capex_hist_2": "derived:flat_last_known",
		},
	}

	out := HistoricalTable(ext)
	assert.Contains(t, out, "2022")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "Net Revenue")
	assert.Contains(t, out, "$11,000")
	assert.Contains(t, out, "--")
	assert.Contains(t, out, "$120 (est.)")
	assert.NotContains(t, out, "$110 (est.)")
}

func TestHistoricalTableYearFallback(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		Financials: dealdesk.Financials{
			NetRevenueHist: []*float64{fp(1), fp(2), fp(3)},
		},
	}

	out := HistoricalTable(ext)
	assert.Contains(t, out, "Y1")
	assert.Contains(t, out, "Y3")
}

func TestProjectionTable(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		ProjectionYears: []string{"2025", "2026", "2027", "2028", "2029"},
		Financials: dealdesk.Financials{
			AdjEBITDAProj: []*float64{fp(1000), fp(1100), fp(1200), fp(1300), fp(1400)},
		},
	}

	out := ProjectionTable(ext)
	assert.Contains(t, out, "2029")
	assert.Contains(t, out, "Adj. EBITDA")
	assert.Contains(t, out, "$1,400")
	assert.Contains(t, out, "Mgmt Fees")
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	empty := &integrity.Report{}
	assert.Equal(t, "No integrity issues found.\n", Warnings(empty))

	withErrors := &integrity.Report{Warnings: []model.Warning{
		{Level: model.WarningError, Message: "bad row"},
		{Level: model.WarningInfo, Message: "2 auto-correction(s) and 0 derivation(s) applied."},
	}}
	out := Warnings(withErrors)
	assert.Contains(t, out, "2 integrity issue(s) found:")
	assert.Contains(t, out, "[error] bad row")
	assert.Contains(t, out, "[info] 2 auto-correction(s)")

	infoOnly := &integrity.Report{Warnings: []model.Warning{
		{Level: model.WarningInfo, Message: "notice"},
	}}
	assert.Contains(t, Warnings(infoOnly), "1 notice(s):")
}

func TestDerivationNotes(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		Financials: dealdesk.Financials{
			CapexHist:     []*float64{fp(100), fp(110), fp(120)},
			AdjEBITDAProj: []*float64{fp(1000), fp(1100), fp(1200), fp(1300), fp(1400)},
		},
		FieldSources: map[string]string{
			"capex_hist_1":    "derived:flat_last_known",
			"capex_hist_2":    "derived:flat_last_known",
			"adj_ebitda_proj": "derived:unknown_method",
		},
	}

	out := DerivationNotes(ext)
	// One line per metric even when several years are derived.
	require.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "(est.) Capex: Projected flat from the last known value")
	assert.Contains(t, out, "(est.) Adj. EBITDA: Estimated value, not read directly from the document")

	assert.Equal(t, "", DerivationNotes(&dealdesk.Extraction{}))
}
