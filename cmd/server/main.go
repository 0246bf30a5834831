// Package main runs the Incident Lens query server: it loads the incident
// datasets into memory and serves the read-only query API until SIGINT or
// SIGTERM.
//
// Import Path: incidentlens.io/lens/cmd/server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/app"
	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "incident-lens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting Incident Lens",
		zap.String("version", app.Version),
		zap.String("data_source", cfg.Data.Source),
		zap.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer application.Shutdown()

	// Start performs the first dataset load; the API only opens afterwards.
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}
	logSnapshot(application.Store.Snapshot())

	return serve(ctx, newHTTPServer(cfg.Server, application.Router), cfg.Server.ShutdownTimeout)
}

func newHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// serve runs srv until ctx is done, then drains in-flight queries for at
// most drain.
func serve(ctx context.Context, srv *http.Server, drain time.Duration) error {
	errCh := make(chan error, 1)
	go func() { //nolint:naked-goroutine // main server goroutine is exempt
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("Query API listening", zap.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Stopping Incident Lens, draining in-flight queries", zap.Duration("timeout", drain))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("drain queries: %w", err)
	}
	logger.Info("Incident Lens stopped")
	return nil
}

func logSnapshot(snap *store.Snapshot) {
	fields := make([]zap.Field, 0, len(store.AllDatasets())+1)
	for _, d := range store.AllDatasets() {
		fields = append(fields, zap.Int(string(d), snap.Rows(d)))
	}
	fields = append(fields, zap.Time("loaded_at", snap.LoadedAt()))
	logger.Info("Serving snapshot", fields...)
}
