package integrity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

func fp(v float64) *float64 { return &v }

// cleanFinancials passes every rule: complete revenue, operating income below
// EBITDA, depreciation far from EBITDA.
func cleanFinancials() dealdesk.Financials {
	return dealdesk.Financials{
		NetRevenueHist:   []*float64{fp(10000), fp(11000), fp(12000)},
		GrossProfitHist:  []*float64{fp(4000), fp(4400), fp(4800)},
		SGAHist:          []*float64{fp(3500), fp(3800), fp(4100)},
		AdjEBITDAHist:    []*float64{fp(1000), fp(1000), fp(1000)},
		DepreciationHist: []*float64{fp(200), fp(210), fp(220)},
	}
}

func errorMessages(r *Report) []string {
	var out []string
	for _, w := range r.Warnings {
		if w.Level == model.WarningError {
			out = append(out, w.Message)
		}
	}
	return out
}

func TestAnalyzeCleanExtraction(t *testing.T) {
	t.Parallel()

	report := Analyze(&dealdesk.Extraction{Financials: cleanFinancials()})
	assert.Equal(t, 0, report.Count())
	assert.False(t, report.HasErrors())
}

func TestAnalyzeNilExtraction(t *testing.T) {
	t.Parallel()

	report := Analyze(nil)
	assert.Equal(t, 0, report.Count())
}

func TestAnalyzeRevenueCompleteness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		revenue []*float64
		missing int
	}{
		{name: "all present", revenue: []*float64{fp(1), fp(2), fp(3)}, missing: 0},
		{name: "one null", revenue: []*float64{fp(1), nil, fp(3)}, missing: 1},
		{name: "all null", revenue: []*float64{nil, nil, nil}, missing: 3},
		{name: "short array counts as null", revenue: []*float64{fp(1)}, missing: 2},
		{name: "empty array", revenue: nil, missing: 3},
		{name: "fourth year ignored", revenue: []*float64{fp(1), fp(2), fp(3), nil}, missing: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fin := cleanFinancials()
			fin.NetRevenueHist = tt.revenue
			report := Analyze(&dealdesk.Extraction{Financials: fin})

			msgs := errorMessages(report)
			if tt.missing == 0 {
				assert.Empty(t, msgs)
				return
			}
			require.Len(t, msgs, 1)
			assert.Contains(t, msgs[0], "Revenue missing")
			assert.Contains(t, msgs[0], "Margins and growth rates cannot be calculated")
		})
	}

	fin := cleanFinancials()
	fin.NetRevenueHist = []*float64{fp(1), nil, nil}
	report := Analyze(&dealdesk.Extraction{Financials: fin})
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "Revenue missing for 2 of 3 historical year(s). Margins and growth rates cannot be calculated.", report.Warnings[0].Message)
}

func TestAnalyzeOperatingIncomeAboveEBITDA(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	// Year 2: 4400 - 2000 = 2400 operating income against 1000 EBITDA.
	fin.SGAHist[1] = fp(2000)

	report := Analyze(&dealdesk.Extraction{Financials: fin})
	msgs := errorMessages(report)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Year 2")
	assert.Contains(t, msgs[0], "exceeds EBITDA")
	assert.Contains(t, msgs[0], "rows may be swapped")
	assert.Contains(t, msgs[0], "$2,400")
	assert.Contains(t, msgs[0], "$1,000")
}

func TestAnalyzeOperatingIncomeSkipsNullYears(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	fin.SGAHist = []*float64{nil, nil, nil}

	report := Analyze(&dealdesk.Extraction{Financials: fin})
	assert.Empty(t, errorMessages(report))
}

func TestAnalyzeOperatingIncomeEqualToEBITDAPasses(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	// Operating income exactly equals EBITDA in year 1. The comparison is
	// strictly greater-than.
	fin.GrossProfitHist[0] = fp(4500)
	fin.SGAHist[0] = fp(3500)
	fin.AdjEBITDAHist = []*float64{fp(1000), fp(1000), fp(1000)}
	fin.DepreciationHist = []*float64{fp(200), fp(210), fp(220)}

	report := Analyze(&dealdesk.Extraction{Financials: fin})
	assert.Empty(t, errorMessages(report))
}

func TestAnalyzeDepreciationCopyError(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	fin.AdjEBITDAHist = []*float64{fp(1000), fp(1000), fp(1000)}
	fin.DepreciationHist = []*float64{fp(950), fp(2000), nil}

	report := Analyze(&dealdesk.Extraction{Financials: fin})
	msgs := errorMessages(report)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Year 1")
	assert.Contains(t, msgs[0], "within 15% of EBITDA")
	assert.Contains(t, msgs[0], "extracted twice")
}

func TestAnalyzeDepreciationToleranceBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dep   float64
		fires bool
	}{
		{name: "just inside tolerance", dep: 860, fires: true},
		{name: "exactly at tolerance", dep: 850, fires: false},
		{name: "just outside tolerance", dep: 840, fires: false},
		{name: "identical values", dep: 1000, fires: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fin := cleanFinancials()
			fin.AdjEBITDAHist = []*float64{fp(1000), nil, nil}
			fin.DepreciationHist = []*float64{fp(tt.dep), nil, nil}

			report := Analyze(&dealdesk.Extraction{Financials: fin})
			var fired bool
			for _, m := range errorMessages(report) {
				if strings.Contains(m, "within 15% of EBITDA") {
					fired = true
				}
			}
			assert.Equal(t, tt.fires, fired)
		})
	}
}

func TestAnalyzeDepreciationNegativeEBITDA(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	// Tolerance band scales with the magnitude of EBITDA, sign ignored.
	fin.AdjEBITDAHist = []*float64{fp(-1000), nil, nil}
	fin.DepreciationHist = []*float64{fp(-950), nil, nil}

	report := Analyze(&dealdesk.Extraction{Financials: fin})
	msgs := errorMessages(report)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Year 1")
}

func TestAnalyzeProvenanceSummary(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		Financials:         cleanFinancials(),
		CorrectionsApplied: []string{"a", "b"},
		DerivationsApplied: []string{"c", "d", "e"},
	}

	report := Analyze(ext)
	require.Equal(t, 1, report.Count())
	assert.Equal(t, model.WarningInfo, report.Warnings[0].Level)
	assert.Equal(t, "2 auto-correction(s) and 3 derivation(s) applied.", report.Warnings[0].Message)
	assert.False(t, report.HasErrors())
}

func TestAnalyzeProvenanceSummaryAbsentWhenClean(t *testing.T) {
	t.Parallel()

	report := Analyze(&dealdesk.Extraction{Financials: cleanFinancials()})
	assert.Empty(t, report.Warnings)
}

func TestAnalyzeWarningOrder(t *testing.T) {
	t.Parallel()

	fin := cleanFinancials()
	fin.NetRevenueHist = []*float64{nil, fp(2), fp(3)}
	fin.SGAHist[0] = fp(2000)
	fin.DepreciationHist[2] = fp(1000)

	ext := &dealdesk.Extraction{
		Financials:         fin,
		DerivationsApplied: []string{"x"},
	}

	report := Analyze(ext)
	require.Len(t, report.Warnings, 4)
	assert.Contains(t, report.Warnings[0].Message, "Revenue missing")
	assert.Contains(t, report.Warnings[1].Message, "exceeds EBITDA")
	assert.Contains(t, report.Warnings[2].Message, "within 15% of EBITDA")
	assert.Equal(t, model.WarningInfo, report.Warnings[3].Level)
	assert.True(t, report.HasErrors())
}
