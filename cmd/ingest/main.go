package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pucktrack/nhl-ingest/internal/app"
	"github.com/pucktrack/nhl-ingest/internal/config"
	"github.com/pucktrack/nhl-ingest/internal/observability"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	db, err := app.OpenDB(cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(cfg, db, logger)
	report, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion run aborted", "error", err)
		os.Exit(1)
	}

	// Per-record failures are isolated and reported; they do not fail the run.
	logger.InfoContext(ctx, "ingestion run finished",
		"failures", len(report.Failures()),
		"conflicts", len(report.Conflicts()),
		"dangling_refs", len(report.DanglingRefs()),
	)
}
