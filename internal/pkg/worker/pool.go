// Package worker provides goroutine pool management.
//
// Naked goroutines are avoided in service code: concurrent work goes
// through a Pool with context propagation.
//
// Import Path: incidentlens.io/lens/internal/pkg/worker
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"incidentlens.io/lens/internal/pkg/logger"
)

// Pool names accepted by SubmitDetached.
const (
	PoolLoader     = "loader"
	PoolBackground = "background"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	name string
}

// Pools is the Worker pool collection.
type Pools struct {
	// Loader runs one dataset read per task.
	Loader *Pool
	// Background runs long-lived service tasks such as the reload ticker.
	Background *Pool

	// serviceCtx is the service lifecycle context for detached tasks
	serviceCtx    context.Context
	serviceCancel context.CancelFunc

	shutdownTimeout time.Duration
}

// PoolConfig contains Worker Pool configuration.
type PoolConfig struct {
	LoaderPoolSize     int
	BackgroundPoolSize int
	ShutdownTimeout    time.Duration
}

// DefaultPoolConfig returns default configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		LoaderPoolSize:     5,
		BackgroundPoolSize: 2,
		ShutdownTimeout:    30 * time.Second,
	}
}

// NewPools creates Worker pool collection.
func NewPools(ctx context.Context, cfg PoolConfig) (*Pools, error) {
	// Create service lifecycle context for detached tasks
	serviceCtx, serviceCancel := context.WithCancel(ctx)

	// Unified panic recovery
	panicHandler := func(p interface{}) {
		logger.Error("Worker panic recovered",
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	loaderAnts, err := ants.NewPool(cfg.LoaderPoolSize,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		serviceCancel()
		return nil, err
	}

	backgroundAnts, err := ants.NewPool(cfg.BackgroundPoolSize,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(time.Minute),
	)
	if err != nil {
		loaderAnts.Release()
		serviceCancel()
		return nil, err
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Pools{
		Loader:          &Pool{pool: loaderAnts, name: PoolLoader},
		Background:      &Pool{pool: backgroundAnts, name: PoolBackground},
		serviceCtx:      serviceCtx,
		serviceCancel:   serviceCancel,
		shutdownTimeout: timeout,
	}, nil
}

// Name returns the pool name.
func (p *Pool) Name() string { return p.name }

// Submit submits a context-aware task.
// The task receives the caller's context and SHOULD check ctx.Done() at blocking points.
// If context is already cancelled, returns ctx.Err() immediately without submitting.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	// Fast path: check if context is already cancelled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := p.pool.Submit(func() {
		// Check context again inside worker (may have been cancelled while queued)
		select {
		case <-ctx.Done():
			logger.Debug("Task skipped: context cancelled",
				zap.String("pool", p.name),
				zap.Error(ctx.Err()),
			)
			return
		default:
		}
		task(ctx)
	})
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// SubmitDetached submits a detached background task.
// Detached tasks use the service lifecycle context instead of a request context.
// Use this for long-running background work that should survive request cancellation
// but still respect graceful shutdown.
func (p *Pools) SubmitDetached(poolName string, task Task) error {
	var pool *Pool
	switch poolName {
	case PoolLoader:
		pool = p.Loader
	case PoolBackground:
		pool = p.Background
	default:
		pool = p.Background
	}

	err := pool.pool.Submit(func() {
		// Check service context
		select {
		case <-p.serviceCtx.Done():
			logger.Debug("Detached task skipped: service shutting down",
				zap.String("pool", pool.name),
			)
			return
		default:
		}
		task(p.serviceCtx)
	})
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Shutdown gracefully shuts down all pools with a timeout.
// Cancels service context first, then waits for running tasks.
func (p *Pools) Shutdown() {
	// Signal all detached tasks to stop
	p.serviceCancel()

	if err := p.Loader.pool.ReleaseTimeout(p.shutdownTimeout); err != nil {
		logger.Warn("Loader pool shutdown timeout", zap.Error(err))
	}
	if err := p.Background.pool.ReleaseTimeout(p.shutdownTimeout); err != nil {
		logger.Warn("Background pool shutdown timeout", zap.Error(err))
	}
}

// Stats is a point-in-time view of one pool.
type Stats struct {
	Running int `json:"running"`
	Free    int `json:"free"`
	Cap     int `json:"cap"`
}

// Metrics returns pool metrics for observability, keyed by pool name.
func (p *Pools) Metrics() map[string]Stats {
	return map[string]Stats{
		PoolLoader:     p.Loader.stats(),
		PoolBackground: p.Background.stats(),
	}
}

func (p *Pool) stats() Stats {
	return Stats{
		Running: p.pool.Running(),
		Free:    p.pool.Free(),
		Cap:     p.pool.Cap(),
	}
}
