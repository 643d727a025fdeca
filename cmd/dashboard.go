package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/dealdesk-cli/internal/render"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show aggregate pipeline statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := newClient().Dashboard(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Documents:        %d total, %d OCR done, %d pending, %d failed\n",
			dash.Total, dash.Analyzed, dash.Pending, dash.Failed)
		fmt.Printf("Fully analyzed:   %d\n", dash.FullyAnalyzed)
		fmt.Printf("OCR accuracy:     %.1f%%\n", dash.Accuracy)
		fmt.Printf("Extraction conf.: %.1f%%\n", dash.AvgExtractionConfidence)
		fmt.Printf("Avg entry mult.:  %.1fx\n", dash.AvgEntryMultiple)
		fmt.Printf("Total deal value: %s\n", render.Money(dash.TotalDealValue))

		if len(dash.Recent) > 0 {
			fmt.Println()
			fmt.Println("Recent uploads:")
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  NAME\tCOMPANY\tOCR\tEXTRACTION\tUPLOADED")
			for _, d := range dash.Recent {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
					d.OriginalName, d.CompanyName, d.OCRStatus, d.ExtractionStatus, d.UploadDate)
			}
			return w.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
