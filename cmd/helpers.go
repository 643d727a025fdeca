package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/internal/poller"
	"github.com/sells-group/dealdesk-cli/internal/store"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

func newClient() dealdesk.Client {
	return dealdesk.NewClient(cfg.API.BaseURL, dealdesk.WithRateLimit(cfg.API.RateLimit))
}

// openStore opens the configured audit-log backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// storeRecorder adapts the audit-log store to the poller's Recorder hook.
type storeRecorder struct {
	st store.Store
}

func (r storeRecorder) RecordTransition(ctx context.Context, docID int64, stage poller.Stage) error {
	return r.st.RecordEvent(ctx, model.WatchEvent{
		DocumentID: docID,
		Label:      stage.Label,
		Terminal:   stage.Terminal,
		Outcome:    string(stage.Outcome),
	})
}

func parseDocIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, eris.Errorf("invalid document id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// watchDocuments polls every given document until terminal, printing stage
// transitions and refreshing the aggregate view once per terminal document.
func watchDocuments(ctx context.Context, client dealdesk.Client, rec poller.Recorder, ids []int64) error {
	mgr := poller.NewManager(client, poller.Options{
		Interval: time.Duration(cfg.Poll.IntervalSecs) * time.Second,
		OnUpdate: func(docID int64, stage poller.Stage) {
			fmt.Printf("document %d: %s\n", docID, stage.Label)
		},
		OnTerminal: func(docID int64, stage poller.Stage) {
			refreshDashboard(ctx, client)
		},
		Recorder: rec,
	})
	defer mgr.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		sub := mgr.Watch(ctx, id)
		g.Go(func() error {
			select {
			case <-sub.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// refreshDashboard fetches and prints the aggregate stats line. Failures are
// logged only; a stale aggregate view is not worth failing a watch over.
func refreshDashboard(ctx context.Context, client dealdesk.Client) {
	dash, err := client.Dashboard(ctx)
	if err != nil {
		zap.L().Warn("dashboard refresh failed", zap.Error(err))
		return
	}
	fmt.Printf("dashboard: %d total, %d analyzed, %d pending, %d failed\n",
		dash.Total, dash.Analyzed, dash.Pending, dash.Failed)
}
