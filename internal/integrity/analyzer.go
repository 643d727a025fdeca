// Package integrity checks one financial extraction for plausibility
// problems: missing figures, internally inconsistent rows, and suspected
// copy errors from the source table.
package integrity

import (
	"fmt"
	"math"

	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/internal/moneyfmt"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

// historicalYears is the number of historical columns the document format
// mandates. Absent years are still indexed.
const historicalYears = 3

// copyErrorTolerance is the relative tolerance for the depreciation/EBITDA
// copy-error heuristic. The comparison is strictly less-than.
const copyErrorTolerance = 0.15

// Report is the ordered result of one analysis pass over one extraction
// snapshot. Order of Warnings is the rendering order.
type Report struct {
	Warnings []model.Warning `json:"warnings"`
}

// Count returns the total number of warnings.
func (r *Report) Count() int {
	return len(r.Warnings)
}

// HasErrors reports whether any warning is error-level, as opposed to only
// informational notices.
func (r *Report) HasErrors() bool {
	for _, w := range r.Warnings {
		if w.Level == model.WarningError {
			return true
		}
	}
	return false
}

func (r *Report) errorf(format string, args ...any) {
	r.Warnings = append(r.Warnings, model.Warning{
		Level:   model.WarningError,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) infof(format string, args ...any) {
	r.Warnings = append(r.Warnings, model.Warning{
		Level:   model.WarningInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// at returns the value at position i, treating short arrays as null-padded.
func at(arr []*float64, i int) *float64 {
	if i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

// Analyze evaluates all integrity rules against one extraction. All rules run
// independently over the fixed 3-year historical window; null inputs skip a
// rule for that year rather than failing.
func Analyze(ext *dealdesk.Extraction) *Report {
	report := &Report{}
	if ext == nil {
		return report
	}
	fin := ext.Financials

	// Rule 1: revenue completeness.
	missing := 0
	for i := 0; i < historicalYears; i++ {
		if at(fin.NetRevenueHist, i) == nil {
			missing++
		}
	}
	if missing > 0 {
		report.errorf("Revenue missing for %d of 3 historical year(s). Margins and growth rates cannot be calculated.", missing)
	}

	// Rule 2: operating income exceeding EBITDA flags a likely row swap in
	// the source extraction.
	for i := 0; i < historicalYears; i++ {
		gp := at(fin.GrossProfitHist, i)
		sga := at(fin.SGAHist, i)
		ebitda := at(fin.AdjEBITDAHist, i)
		if gp == nil || sga == nil || ebitda == nil {
			continue
		}
		opIncome := *gp - *sga
		if opIncome > *ebitda {
			report.errorf("Year %d: operating income (%s) exceeds EBITDA (%s); the source rows may be swapped.",
				i+1, moneyfmt.Money(opIncome), moneyfmt.Money(*ebitda))
		}
	}

	// Rule 3: depreciation within 15% of EBITDA suggests a duplicated
	// column in the source table.
	for i := 0; i < historicalYears; i++ {
		dep := at(fin.DepreciationHist, i)
		ebitda := at(fin.AdjEBITDAHist, i)
		if dep == nil || ebitda == nil {
			continue
		}
		if math.Abs(*dep-*ebitda) < copyErrorTolerance*math.Abs(*ebitda) {
			report.errorf("Year %d: depreciation (%s) is within 15%% of EBITDA (%s); a column may have been extracted twice.",
				i+1, moneyfmt.Money(*dep), moneyfmt.Money(*ebitda))
		}
	}

	// Rule 4: provenance summary.
	corrections := len(ext.CorrectionsApplied)
	derivations := len(ext.DerivationsApplied)
	if corrections > 0 || derivations > 0 {
		report.infof("%d auto-correction(s) and %d derivation(s) applied.", corrections, derivations)
	}

	return report
}
