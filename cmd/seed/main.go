// Package main copies the CSV exports in data.dir into PostgreSQL tables, so
// the server can run with data.source=postgres.
//
// Each dataset table is replaced wholesale. Datasets whose CSV file is
// missing are skipped with a warning.
//
// Import Path: incidentlens.io/lens/cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/loader"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
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

	ctx := context.Background()

	dst, err := loader.OpenPostgresSource(ctx, cfg.Database, cfg.Data)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dst.Close()

	logger.Info("Starting data seeding...", zap.String("dir", cfg.Data.Dir))

	seeded, err := seed(ctx, loader.NewCSVSource(cfg.Data.Dir, cfg.Data), dst, store.AllDatasets())
	if err != nil {
		return err
	}

	logger.Info("Data seeding completed successfully", zap.Int("datasets", seeded))
	return nil
}

type tableReader interface {
	ReadTable(ctx context.Context, d store.Dataset) (store.Table, error)
}

type tableWriter interface {
	WriteTable(ctx context.Context, d store.Dataset, t store.Table) (int64, error)
}

// seed copies every dataset from src to dst and returns how many were
// written. A missing source file is skipped; any other failure stops the run.
func seed(ctx context.Context, src tableReader, dst tableWriter, datasets []store.Dataset) (int, error) {
	seeded := 0
	for _, d := range datasets {
		t, err := src.ReadTable(ctx, d)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Dataset file not found, skipping", zap.String("dataset", d.String()))
			continue
		}
		if err != nil {
			return seeded, fmt.Errorf("read %s: %w", d, err)
		}

		n, err := dst.WriteTable(ctx, d, t)
		if err != nil {
			return seeded, fmt.Errorf("write %s: %w", d, err)
		}
		logger.Info("Dataset seeded",
			zap.String("dataset", d.String()),
			zap.Int64("rows", n),
		)
		seeded++
	}
	return seeded, nil
}
