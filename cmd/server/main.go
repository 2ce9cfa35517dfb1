package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/claimboard/claimboard/internal/blob"
	"github.com/claimboard/claimboard/internal/config"
	"github.com/claimboard/claimboard/internal/logging"
	"github.com/claimboard/claimboard/internal/snapshot"
	"github.com/claimboard/claimboard/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"store_path", cfg.Store.Path,
		"metrics_window_days", cfg.Metrics.WindowDays,
	)

	// Open the embedded blob store. A failed open degrades to in-memory
	// operation: the dashboard stays usable, history is simply not durable.
	var blobs blob.Store
	badgerStore, err := blob.OpenBadger(cfg.Store.Path, slog.Default())
	if err != nil {
		slog.Warn("opening blob store failed, continuing without persistence", "error", err)
		blobs = blob.NewMemory()
	} else {
		blobs = badgerStore
	}
	defer blobs.Close()

	// Load persisted snapshots
	store := snapshot.New(blobs, slog.Default())
	slog.Info("snapshot store ready", "versions", store.Len())

	// Create server with config
	server := web.NewServer(store, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
