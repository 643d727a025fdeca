package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

func fp(v float64) *float64 { return &v }

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	ext := &dealdesk.Extraction{
		CompanyName:     "Acme Corp",
		HistoricalYears: []string{"2022", "2023", "2024"},
		Financials: dealdesk.Financials{
			NetRevenueHist: []*float64{fp(10000), fp(11000), nil},
			CapexHist:      []*float64{fp(100), fp(110), fp(120)},
			AdjEBITDAProj:  []*float64{fp(1000), fp(1100), fp(1200), fp(1300), fp(1400)},
		},
		FieldSources: map[string]string{
			"capex_hist_2": "derived:flat_last_known",
		},
	}

	path := filepath.Join(t.TempDir(), "acme.xlsx")
	require.NoError(t, WriteWorkbook(path, ext))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, "Historical", f.Sheets[0].Name)
	assert.Equal(t, "Projections", f.Sheets[1].Name)

	hist := f.Sheets[0]
	// Header, then one row per historical metric.
	require.Len(t, hist.Rows, 8)
	assert.Equal(t, "Metric", hist.Rows[0].Cells[0].Value)
	assert.Equal(t, "2022", hist.Rows[0].Cells[1].Value)
	assert.Equal(t, "Notes", hist.Rows[0].Cells[4].Value)

	revenue := hist.Rows[1]
	assert.Equal(t, "Net Revenue", revenue.Cells[0].Value)
	got, err := revenue.Cells[1].Float()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got)
	got, err = revenue.Cells[2].Float()
	require.NoError(t, err)
	assert.Equal(t, 11000.0, got)

	capex := hist.Rows[7]
	assert.Equal(t, "Capex", capex.Cells[0].Value)
	assert.Equal(t, "(est.) Projected flat from the last known value", capex.Cells[4].Value)

	proj := f.Sheets[1]
	require.Len(t, proj.Rows, 6)
	ebitda := proj.Rows[2]
	assert.Equal(t, "Adj. EBITDA", ebitda.Cells[0].Value)
	got, err = ebitda.Cells[5].Float()
	require.NoError(t, err)
	assert.Equal(t, 1400.0, got)
}

func TestWriteWorkbookNilExtraction(t *testing.T) {
	t.Parallel()

	err := WriteWorkbook(filepath.Join(t.TempDir(), "x.xlsx"), nil)
	require.Error(t, err)
}
