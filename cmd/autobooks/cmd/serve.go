package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/midwestsb/autobooks/internal/transport/httpapi"
	"github.com/midwestsb/autobooks/internal/transport/httpapi/handler"
)

// serveCmd runs the long-lived service: scheduled passes plus the HTTP
// job-trigger API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline service with scheduled passes and HTTP triggers",
	Long: `Start the long-running service.

The scheduler polls the transaction store and runs a pass whenever enough
Pending work accumulates. The HTTP API exposes health probes and on-demand
classify/retry triggers for back-office tooling.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		exitOnError(err, "failed to initialize")
		defer a.close()

		router := httpapi.NewRouter(httpapi.Config{
			Logger:        a.log,
			JobsHandler:   handler.NewJobsHandler(a.pipeline, a.log),
			HealthHandler: handler.NewHealthHandler(a.db),
		})

		server := &http.Server{
			Addr:         ":" + a.cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			if err := a.pipeline.RunScheduled(ctx); err != nil {
				a.log.WithError(err).Error("scheduler stopped")
			}
		}()

		go func() {
			a.log.Info("HTTP server listening", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Error("HTTP server failed")
				stop()
			}
		}()

		<-ctx.Done()
		a.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.log.WithError(err).Error("HTTP server shutdown failed")
		}
	},
}
