package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/dealdesk-cli/internal/integrity"
	"github.com/sells-group/dealdesk-cli/internal/model"
	"github.com/sells-group/dealdesk-cli/internal/poller"
	"github.com/sells-group/dealdesk-cli/internal/store"
	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the review service",
	Long:  "Serves document stage and review endpoints so dashboards can consume derived stages and integrity findings without reimplementing them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := newClient()

		st, err := openStore(ctx)
		if err != nil {
			zap.L().Warn("audit log unavailable", zap.Error(err))
			st = nil
		} else {
			defer st.Close()
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/api/documents/{id}/stage", func(w http.ResponseWriter, req *http.Request) {
			docID, ok := docIDParam(w, req)
			if !ok {
				return
			}
			status, err := client.Status(req.Context(), docID)
			if err != nil {
				writeError(w, http.StatusBadGateway, err)
				return
			}
			stage := poller.DeriveStage(status)
			writeJSON(w, http.StatusOK, map[string]any{
				"document_id": docID,
				"stage":       stage,
			})
		})

		r.Get("/api/documents/{id}/review", func(w http.ResponseWriter, req *http.Request) {
			docID, ok := docIDParam(w, req)
			if !ok {
				return
			}
			analysis, err := client.Analysis(req.Context(), docID)
			if err != nil {
				writeError(w, http.StatusBadGateway, err)
				return
			}
			report := integrity.Analyze(analysis.Extraction)
			writeJSON(w, http.StatusOK, reviewResponse{
				Analysis:  analysis,
				Warnings:  report.Warnings,
				WarnCount: report.Count(),
				HasErrors: report.HasErrors(),
			})
		})

		r.Get("/api/summary", func(w http.ResponseWriter, req *http.Request) {
			dash, err := client.Dashboard(req.Context())
			if err != nil {
				writeError(w, http.StatusBadGateway, err)
				return
			}
			summary := summaryResponse{Dashboard: dash}
			if st != nil {
				events, err := st.ListEvents(req.Context(), store.EventFilter{Limit: 20})
				if err != nil {
					zap.L().Warn("list watch events", zap.Error(err))
				} else {
					summary.RecentTransitions = events
				}
			}
			writeJSON(w, http.StatusOK, summary)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting review service", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

type reviewResponse struct {
	Analysis  *dealdesk.AnalysisResponse `json:"analysis"`
	Warnings  []model.Warning            `json:"warnings"`
	WarnCount int                        `json:"warning_count"`
	HasErrors bool                       `json:"has_errors"`
}

type summaryResponse struct {
	Dashboard         *dealdesk.DashboardResponse `json:"dashboard"`
	RecentTransitions []model.WatchEvent          `json:"recent_transitions,omitempty"`
}

func docIDParam(w http.ResponseWriter, req *http.Request) (int64, bool) {
	docID, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.New("invalid document id"))
		return 0, false
	}
	return docID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
