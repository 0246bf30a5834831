package loader

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/pkg/worker"
)

var (
	errAllDatasetsFailed = errors.New("no dataset could be read")
	errReloadInterrupted = errors.New("reload interrupted before every dataset was read")
)

// StartPeriodicReload reloads every interval on the background pool until
// the pools shut down. A non-positive interval disables it.
func (l *Loader) StartPeriodicReload(interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	logger.Info("Periodic reload enabled", zap.Duration("interval", interval))
	return l.pools.SubmitDetached(worker.PoolBackground, func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Debug("Periodic reload stopped")
				return
			case <-ticker.C:
				if _, err := l.Reload(ctx); err != nil {
					logger.Warn("Periodic reload failed", zap.Error(err))
				}
			}
		}
	})
}
