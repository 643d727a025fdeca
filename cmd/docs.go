package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := newClient().Documents(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tOCR\tEXTRACTION\tUPLOADED")
		for _, d := range docs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				d.ID, d.OriginalName, d.CompanyName, d.OCRStatus, d.ExtractionStatus, d.UploadDate)
		}
		return w.Flush()
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document and its derived artifacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseDocIDs(args)
		if err != nil {
			return err
		}
		if err := newClient().Delete(cmd.Context(), ids[0]); err != nil {
			return err
		}
		fmt.Printf("document %d deleted\n", ids[0])
		return nil
	},
}

var docsReExtractCmd = &cobra.Command{
	Use:   "re-extract <id>",
	Short: "Re-run extraction on a document with completed OCR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseDocIDs(args)
		if err != nil {
			return err
		}
		if err := newClient().ReExtract(cmd.Context(), ids[0]); err != nil {
			return err
		}
		fmt.Printf("re-extraction started for document %d; run `dealdesk watch %d` to track it\n", ids[0], ids[0])
		return nil
	},
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRmCmd)
	docsCmd.AddCommand(docsReExtractCmd)
	rootCmd.AddCommand(docsCmd)
}
