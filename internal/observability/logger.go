// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability wires structured logging and metrics for scholar-hub.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// NewLogger builds a zerolog logger from config. Unknown levels fall back
// to info; unknown outputs fall back to stderr.
func NewLogger(cfg types.LoggingConfig) zerolog.Logger {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		out = os.Stdout
	default:
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	if strings.ToLower(cfg.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level := parseLevel(cfg.Level)
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithSearch scopes a logger to one aggregation run.
func WithSearch(logger zerolog.Logger, query string, maxResults int) zerolog.Logger {
	return logger.With().
		Str("query", query).
		Int("max_results", maxResults).
		Logger()
}
