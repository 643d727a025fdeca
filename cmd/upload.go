package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var uploadNoWatch bool

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload documents and track them through the pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := newClient()

		resp, err := client.Upload(ctx, args)
		if err != nil {
			return err
		}
		if len(resp.Uploaded) == 0 {
			fmt.Println("no files accepted")
			return nil
		}

		ids := make([]int64, 0, len(resp.Uploaded))
		for _, doc := range resp.Uploaded {
			fmt.Printf("accepted: %s (document %d, %d bytes)\n", doc.OriginalName, doc.ID, doc.Size)
			ids = append(ids, doc.ID)
		}

		if uploadNoWatch {
			return nil
		}

		st, err := openStore(ctx)
		if err != nil {
			// The audit log is best-effort; watching proceeds without it.
			zap.L().Warn("audit log unavailable", zap.Error(err))
			return watchDocuments(ctx, client, nil, ids)
		}
		defer st.Close()

		return watchDocuments(ctx, client, storeRecorder{st}, ids)
	},
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadNoWatch, "no-watch", false, "exit after upload instead of tracking progress")
	rootCmd.AddCommand(uploadCmd)
}
