// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-hub/internal/observability"
	"github.com/pdiddy/scholar-hub/internal/server"
	"github.com/pdiddy/scholar-hub/internal/synthesis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the aggregation pipeline over HTTP: POST /api/v1/search,
POST /api/v1/synthesize, POST /api/v1/export/{format}, plus /healthz and
Prometheus /metrics. The server shuts down gracefully on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	logger := observability.NewLogger(cfg.Logging)
	metrics := observability.NewMetrics()
	pipeline := buildPipeline(cfg, logger, metrics)
	synth := synthesis.Synthesizer{MaxKeyPoints: cfg.Synthesis.MaxKeyPoints}

	srv := server.NewServer(cfg.Server, pipeline, synth, logger, metrics)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func init() {
	serveCmd.Flags().String("host", "", "bind address (overrides config)")
	serveCmd.Flags().Int("port", 0, "HTTP port (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
