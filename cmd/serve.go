package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brandpulse/audience-cli/internal/enrich"
	"github.com/brandpulse/audience-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for enrichment requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("POST /enrich", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Segment map[string]any `json:"segment"`
				Region  string         `json:"region"`
				Years   []int          `json:"years"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if len(req.Segment) == 0 {
				http.Error(w, `{"error":"segment is required"}`, http.StatusBadRequest)
				return
			}

			profile := model.NormalizeSegment(req.Segment)
			years := req.Years
			if len(years) < 2 {
				years = effectiveYears()
			}

			requestID := uuid.NewString()

			// Run enrichment asynchronously.
			go func() {
				enriched := env.Pipeline.EnrichSegment(ctx, profile, req.Region, years)
				zap.L().Info("webhook enrichment complete",
					zap.String("request_id", requestID),
					zap.String("audience", enriched.Name),
					zap.Bool("enriched", len(enriched.Demographics) > 0),
				)
				if summary := enrich.Summary(enriched); summary != "" {
					zap.L().Info("enrichment summary",
						zap.String("request_id", requestID),
						zap.String("summary", summary))
				}
			}()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{
				"status":     "accepted",
				"request_id": requestID,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("webhook server listening", zap.Int("port", port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			zap.L().Info("shutting down webhook server")
			return srv.Shutdown(cmd.Context())
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve: listen")
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
