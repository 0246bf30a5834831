package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/pkg/logger"
)

// Start runs every module's startup work in order.
func (a *Application) Start(ctx context.Context) error {
	for _, mod := range a.Modules {
		if mod == nil {
			continue
		}
		if err := mod.Start(ctx); err != nil {
			return fmt.Errorf("start %s module: %w", mod.Name(), err)
		}
		logger.Info("Module started", zap.String("module", mod.Name()))
	}
	return nil
}

// Shutdown gracefully shuts down all application components.
func (a *Application) Shutdown() {
	shutdownCtx := context.Background()

	// Pools first: the periodic reload must stop before its source closes.
	if a.Pools != nil {
		a.Pools.Shutdown()
	}

	for _, mod := range a.Modules {
		if mod == nil {
			continue
		}
		if err := mod.Shutdown(shutdownCtx); err != nil {
			logger.Warn("module shutdown returned error",
				zap.String("module", mod.Name()),
				zap.Error(err),
			)
		}
	}
}
