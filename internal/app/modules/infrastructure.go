package modules

import (
	"context"
	"fmt"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/metrics"
	"incidentlens.io/lens/internal/pkg/worker"
	"incidentlens.io/lens/internal/store"
)

// Infrastructure holds shared cross-cutting dependencies for all modules.
// It is a provider, not a Module.
type Infrastructure struct {
	Config     *config.Config
	Pools      *worker.Pools
	Dispatcher *domain.EventDispatcher
	Metrics    *metrics.Metrics
	Store      *store.Store
}

// NewInfrastructure initializes worker pools, the event dispatcher, the
// metrics registry and an empty store.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	poolCfg := worker.DefaultPoolConfig()
	if cfg.Worker.LoaderPoolSize > 0 {
		poolCfg.LoaderPoolSize = cfg.Worker.LoaderPoolSize
	}
	pools, err := worker.NewPools(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	dispatcher := domain.NewEventDispatcher()
	m := metrics.New()
	m.Subscribe(dispatcher)
	if err := m.RegisterPools(pools); err != nil {
		pools.Shutdown()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	return &Infrastructure{
		Config:     cfg,
		Pools:      pools,
		Dispatcher: dispatcher,
		Metrics:    m,
		Store:      store.New(nil),
	}, nil
}

// Close releases infra resources in reverse dependency order.
func (i *Infrastructure) Close() {
	if i == nil {
		return
	}
	if i.Pools != nil {
		i.Pools.Shutdown()
	}
}
