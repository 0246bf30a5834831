package modules

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/api/handlers"
	"incidentlens.io/lens/internal/loader"
	"incidentlens.io/lens/internal/pkg/logger"
)

// DatasetModule owns the table source and the loader that publishes
// snapshots into the shared store.
type DatasetModule struct {
	infra  *Infrastructure
	source loader.Source
	loader *loader.Loader
}

// NewDatasetModule opens the configured table source.
func NewDatasetModule(ctx context.Context, infra *Infrastructure) (*DatasetModule, error) {
	src, err := loader.NewSource(ctx, infra.Config)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", infra.Config.Data.Source, err)
	}
	return &DatasetModule{
		infra:  infra,
		source: src,
		loader: loader.New(src, infra.Store, infra.Pools, infra.Dispatcher, infra.Config.Data.LoadTimeout),
	}, nil
}

// Name implements Module.
func (m *DatasetModule) Name() string { return "dataset" }

// ContributeServerDeps implements ServerDepsContributor.
func (m *DatasetModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	deps.Reloader = m.loader
}

// Start loads the first snapshot and schedules periodic reloads. A failed
// dataset does not stop startup; it is served empty until a reload reads it.
func (m *DatasetModule) Start(ctx context.Context) error {
	report := m.loader.Load(ctx)
	if len(report.Failed) > 0 {
		logger.Warn("Started with unavailable datasets", zap.Strings("datasets", report.Failed))
	}
	if err := m.loader.StartPeriodicReload(m.infra.Config.Data.ReloadInterval); err != nil {
		return fmt.Errorf("schedule periodic reload: %w", err)
	}
	return nil
}

// Shutdown implements Module.
func (m *DatasetModule) Shutdown(context.Context) error {
	return m.source.Close()
}
