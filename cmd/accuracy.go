package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var accuracyCmd = &cobra.Command{
	Use:   "accuracy <id>",
	Short: "Compare a completed extraction against ground truth",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseDocIDs(args)
		if err != nil {
			return err
		}

		acc, err := newClient().Accuracy(cmd.Context(), ids[0])
		if err != nil {
			return err
		}

		fmt.Printf("Accuracy: %.1f%% (%d/%d fields correct, %d wrong)\n",
			acc.AccuracyScore, acc.FieldsCorrect, acc.FieldsChecked, acc.FieldsWrong)

		fields := make([]string, 0, len(acc.FieldAccuracy))
		for name := range acc.FieldAccuracy {
			fields = append(fields, name)
		}
		sort.Strings(fields)

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tSTATUS\tERROR")
		for _, name := range fields {
			fa := acc.FieldAccuracy[name]
			detail := fa.ErrorPct
			if fa.Error != "" {
				detail = fa.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, fa.Status, detail)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if len(acc.CorrectionsApplied) > 0 {
			fmt.Println()
			fmt.Println("Corrections applied upstream:")
			for _, c := range acc.CorrectionsApplied {
				fmt.Printf("  - %s\n", c)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accuracyCmd)
}
