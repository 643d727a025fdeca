package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <id>...",
	Short: "Track uploaded documents until the pipeline finishes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ids, err := parseDocIDs(args)
		if err != nil {
			return err
		}

		client := newClient()

		st, err := openStore(ctx)
		if err != nil {
			zap.L().Warn("audit log unavailable", zap.Error(err))
			return watchDocuments(ctx, client, nil, ids)
		}
		defer st.Close()

		return watchDocuments(ctx, client, storeRecorder{st}, ids)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
