package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/dealdesk-cli/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show locally recorded stage transitions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		filter := store.EventFilter{Limit: historyLimit}
		if len(args) == 1 {
			ids, err := parseDocIDs(args)
			if err != nil {
				return err
			}
			filter.DocumentID = ids[0]
		}

		events, err := st.ListEvents(ctx, filter)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("no recorded transitions")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OBSERVED\tDOC\tSTAGE\tOUTCOME")
		for _, ev := range events {
			outcome := ev.Outcome
			if outcome == "" && !ev.Terminal {
				outcome = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
				ev.ObservedAt.Format("2006-01-02 15:04:05"), ev.DocumentID, ev.Label, outcome)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of events to show")
	rootCmd.AddCommand(historyCmd)
}
