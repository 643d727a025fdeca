package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/dealdesk-cli/internal/export"
	"github.com/sells-group/dealdesk-cli/internal/integrity"
	"github.com/sells-group/dealdesk-cli/internal/render"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

var (
	analyzeOutput string
	analyzeXLSX   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <id>",
	Short: "Show extracted financials with integrity checks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseDocIDs(args)
		if err != nil {
			return err
		}

		analysis, err := newClient().Analysis(cmd.Context(), ids[0])
		if err != nil {
			return err
		}

		if analysis.Extraction == nil {
			fmt.Printf("%s: extraction %s", analysis.Filename, analysis.ExtractionStatus)
			if analysis.ExtractionError != "" {
				fmt.Printf(" (%s)", analysis.ExtractionError)
			}
			fmt.Println()
			return nil
		}

		report := integrity.Analyze(analysis.Extraction)

		switch analyzeOutput {
		case "json":
			if err := printStructured(analysis, report, json.MarshalIndent); err != nil {
				return err
			}
		case "yaml":
			if err := printStructured(analysis, report, func(v any, _, _ string) ([]byte, error) {
				return yaml.Marshal(v)
			}); err != nil {
				return err
			}
		case "text", "":
			printAnalysis(analysis, report)
		default:
			return eris.Errorf("unknown output format %q", analyzeOutput)
		}

		if analyzeXLSX != "" {
			if err := export.WriteWorkbook(analyzeXLSX, analysis.Extraction); err != nil {
				return err
			}
			fmt.Printf("workbook written to %s\n", analyzeXLSX)
		}
		return nil
	},
}

type analysisOutput struct {
	Analysis *dealdesk.AnalysisResponse `json:"analysis" yaml:"analysis"`
	Report   *integrity.Report          `json:"report" yaml:"report"`
}

func printStructured(analysis *dealdesk.AnalysisResponse, report *integrity.Report, marshal func(any, string, string) ([]byte, error)) error {
	data, err := marshal(analysisOutput{Analysis: analysis, Report: report}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal analysis")
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

func printAnalysis(analysis *dealdesk.AnalysisResponse, report *integrity.Report) {
	ext := analysis.Extraction

	name := ext.CompanyName
	if name == "" {
		name = analysis.Filename
	}
	fmt.Printf("%s\n", name)
	if ext.Industry != "" || ext.Geography != "" {
		fmt.Printf("%s / %s\n", ext.Industry, ext.Geography)
	}
	fmt.Println()

	fmt.Println("Historical:")
	fmt.Print(render.HistoricalTable(ext))
	fmt.Println()
	fmt.Println("Projections:")
	fmt.Print(render.ProjectionTable(ext))

	if notes := render.DerivationNotes(ext); notes != "" {
		fmt.Println()
		fmt.Print(notes)
	}

	fmt.Println()
	fmt.Print(render.Warnings(report))

	if len(ext.CorrectionsApplied) > 0 {
		fmt.Println()
		fmt.Println("Corrections applied upstream:")
		for _, c := range ext.CorrectionsApplied {
			fmt.Printf("  - %s\n", c)
		}
	}
	if len(ext.DerivationsApplied) > 0 {
		fmt.Println()
		fmt.Println("Derivations applied upstream:")
		for _, d := range ext.DerivationsApplied {
			fmt.Printf("  - %s\n", d)
		}
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "text", "output format: text, json, or yaml")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "also write the financial grid to this XLSX file")
	rootCmd.AddCommand(analyzeCmd)
}
