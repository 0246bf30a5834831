// Package app is the composition root: it wires configuration, the dataset
// loader, the query services and the HTTP router. Bootstrap stays
// orchestration-only.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/handlers"
	"incidentlens.io/lens/internal/app/modules"
	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/metrics"
	"incidentlens.io/lens/internal/pkg/worker"
	"incidentlens.io/lens/internal/store"
)

// Version is reported by the root banner. Release builds set it with
// -ldflags "-X incidentlens.io/lens/internal/app.Version=...".
var Version = "dev"

// Application holds composed application dependencies.
type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Store   *store.Store
	Pools   *worker.Pools
	Metrics *metrics.Metrics
	Modules []modules.Module
}

// Bootstrap initializes all dependencies using module-oriented manual DI.
// It opens the table source but loads nothing; Start does the first load.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	infra, err := modules.NewInfrastructure(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	datasetModule, err := modules.NewDatasetModule(ctx, infra)
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("init dataset module: %w", err)
	}

	allModules := []modules.Module{datasetModule}
	server := handlers.NewServer(modules.NewServerDeps(infra, Version, allModules))

	return &Application{
		Config:  cfg,
		Router:  newRouter(cfg, server, infra.Metrics),
		Store:   infra.Store,
		Pools:   infra.Pools,
		Metrics: infra.Metrics,
		Modules: allModules,
	}, nil
}
