package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/sells-group/dealdesk-cli/internal/integrity"
	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

// Metric pairs a display label with its provenance field key and accessor.
type Metric struct {
	Key    string
	Label  string
	Values func(f dealdesk.Financials) []*float64
}

// HistoricalMetrics lists the historical rows in rendering order.
var HistoricalMetrics = []Metric{
	{"net_revenue_hist", "Net Revenue", func(f dealdesk.Financials) []*float64 { return f.NetRevenueHist }},
	{"gross_profit_hist", "Gross Profit", func(f dealdesk.Financials) []*float64 { return f.GrossProfitHist }},
	{"sga_hist", "SG&A", func(f dealdesk.Financials) []*float64 { return f.SGAHist }},
	{"adjustments_hist", "Adjustments", func(f dealdesk.Financials) []*float64 { return f.AdjustmentsHist }},
	{"adj_ebitda_hist", "Adj. EBITDA", func(f dealdesk.Financials) []*float64 { return f.AdjEBITDAHist }},
	{"depreciation_hist", "D&A", func(f dealdesk.Financials) []*float64 { return f.DepreciationHist }},
	{"capex_hist", "Capex", func(f dealdesk.Financials) []*float64 { return f.CapexHist }},
}

// ProjectionMetrics lists the projection rows in rendering order.
var ProjectionMetrics = []Metric{
	{"net_revenue_proj", "Net Revenue", func(f dealdesk.Financials) []*float64 { return f.NetRevenueProj }},
	{"adj_ebitda_proj", "Adj. EBITDA", func(f dealdesk.Financials) []*float64 { return f.AdjEBITDAProj }},
	{"depreciation_proj", "D&A", func(f dealdesk.Financials) []*float64 { return f.DepreciationProj }},
	{"capex_proj", "Capex", func(f dealdesk.Financials) []*float64 { return f.CapexProj }},
	{"mgmt_fees_proj", "Mgmt Fees", func(f dealdesk.Financials) []*float64 { return f.MgmtFeesProj }},
}

// Cell formats one grid value with its provenance marker.
func Cell(v *float64, tag string) string {
	if v == nil {
		return "--"
	}
	if model.IsDerived(tag) {
		return Money(*v) + " (est.)"
	}
	return Money(*v)
}

func metricTable(ext *dealdesk.Extraction, years []string, span int, metrics []Metric) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)

	header := "Metric"
	for i := 0; i < span; i++ {
		year := fmt.Sprintf("Y%d", i+1)
		if i < len(years) && years[i] != "" {
			year = years[i]
		}
		header += "\t" + year
	}
	fmt.Fprintln(w, header)

	for _, m := range metrics {
		values := m.Values(ext.Financials)
		line := m.Label
		for i := 0; i < span; i++ {
			var v *float64
			if i < len(values) {
				v = values[i]
			}
			tag := model.LookupSource(ext.FieldSources, m.Key, i)
			line += "\t" + Cell(v, tag)
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	return b.String()
}

// HistoricalTable renders the three historical columns.
func HistoricalTable(ext *dealdesk.Extraction) string {
	return metricTable(ext, ext.HistoricalYears, 3, HistoricalMetrics)
}

// ProjectionTable renders the five projection columns.
func ProjectionTable(ext *dealdesk.Extraction) string {
	return metricTable(ext, ext.ProjectionYears, 5, ProjectionMetrics)
}

// Warnings renders an integrity report as a text block. The heading reflects
// whether the findings include errors or only informational notices.
func Warnings(report *integrity.Report) string {
	if report.Count() == 0 {
		return "No integrity issues found.\n"
	}

	var b strings.Builder
	if report.HasErrors() {
		fmt.Fprintf(&b, "%d integrity issue(s) found:\n", report.Count())
	} else {
		fmt.Fprintf(&b, "%d notice(s):\n", report.Count())
	}
	for _, wrn := range report.Warnings {
		fmt.Fprintf(&b, "  [%s] %s\n", wrn.Level, wrn.Message)
	}
	return b.String()
}

// DerivationNotes renders one line per estimated field with its method
// description, for the footnote block under the grid.
func DerivationNotes(ext *dealdesk.Extraction) string {
	if len(ext.FieldSources) == 0 {
		return ""
	}

	var b strings.Builder
	seen := make(map[string]bool)
	for _, metrics := range [][]Metric{HistoricalMetrics, ProjectionMetrics} {
		for _, m := range metrics {
			span := len(m.Values(ext.Financials))
			for i := 0; i < span; i++ {
				tag := model.LookupSource(ext.FieldSources, m.Key, i)
				if !model.IsDerived(tag) || seen[m.Key] {
					continue
				}
				seen[m.Key] = true
				fmt.Fprintf(&b, "  (est.) %s: %s\n", m.Label, model.DerivationNote(tag))
			}
		}
	}
	return b.String()
}
