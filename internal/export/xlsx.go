// Package export writes an extraction's financial grid to an XLSX workbook.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/internal/render"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

// WriteWorkbook writes the historical and projection grids to path, one
// sheet each. Estimated values carry an "(est.)" suffix in a companion cell
// so the provenance survives the export.
func WriteWorkbook(path string, ext *dealdesk.Extraction) error {
	if ext == nil {
		return eris.New("export: nil extraction")
	}

	f := xlsx.NewFile()

	if err := addSheet(f, "Historical", ext, ext.HistoricalYears, 3, render.HistoricalMetrics); err != nil {
		return err
	}
	if err := addSheet(f, "Projections", ext, ext.ProjectionYears, 5, render.ProjectionMetrics); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func addSheet(f *xlsx.File, name string, ext *dealdesk.Extraction, years []string, span int, metrics []render.Metric) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	header.AddCell().Value = "Metric"
	for i := 0; i < span; i++ {
		cell := header.AddCell()
		if i < len(years) && years[i] != "" {
			cell.Value = years[i]
		}
	}
	header.AddCell().Value = "Notes"

	for _, m := range metrics {
		row := sheet.AddRow()
		row.AddCell().Value = m.Label

		values := m.Values(ext.Financials)
		note := ""
		for i := 0; i < span; i++ {
			cell := row.AddCell()
			if i >= len(values) || values[i] == nil {
				continue
			}
			cell.SetFloat(*values[i])
			tag := model.LookupSource(ext.FieldSources, m.Key, i)
			if model.IsDerived(tag) && note == "" {
				note = "(est.) " + model.DerivationNote(tag)
			}
		}
		row.AddCell().Value = note
	}

	return nil
}
