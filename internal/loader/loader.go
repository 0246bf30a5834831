package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"incidentlens.io/lens/internal/domain"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/pkg/worker"
	"incidentlens.io/lens/internal/store"
)

const eventSource = "loader"

// Report summarizes one snapshot build.
type Report struct {
	Rows       map[string]int `json:"rows"`
	Failed     []string       `json:"failed"`
	Duration   time.Duration  `json:"-"`
	DurationMS int64          `json:"duration_ms"`
	LoadedAt   time.Time      `json:"loaded_at"`
}

// Loader builds snapshots from a Source and publishes them to a Store.
type Loader struct {
	src        Source
	st         *store.Store
	pools      *worker.Pools
	dispatcher *domain.EventDispatcher
	timeout    time.Duration

	// mu serializes builds so two reloads never race to publish.
	mu sync.Mutex
}

// New creates a Loader. dispatcher may be nil; timeout <= 0 means no limit.
func New(src Source, st *store.Store, pools *worker.Pools, dispatcher *domain.EventDispatcher, timeout time.Duration) *Loader {
	return &Loader{
		src:        src,
		st:         st,
		pools:      pools,
		dispatcher: dispatcher,
		timeout:    timeout,
	}
}

// Load builds a snapshot and publishes it even when every dataset failed,
// so the service starts with empty tables rather than not at all.
func (l *Loader) Load(ctx context.Context) Report {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, report, _ := l.build(ctx)
	l.publish(ctx, snap, report)
	return report
}

// Reload builds a new snapshot and swaps it in. The current snapshot is
// kept, and a DATASET_RELOAD_FAILED error returned, when no dataset could be
// read or when the build was cut short by cancellation or the load timeout.
func (l *Loader) Reload(ctx context.Context) (Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, report, interrupted := l.build(ctx)
	if interrupted != nil {
		l.dispatch(context.WithoutCancel(ctx), domain.EventReloadRejected, snapshotPayload(report))
		logger.Warn("Reload rejected: build interrupted, keeping current snapshot",
			zap.Strings("failed", report.Failed),
			zap.Error(interrupted),
		)
		return report, apperrors.ErrReloadFailedf(fmt.Errorf("%w: %w", errReloadInterrupted, interrupted))
	}
	if len(report.Failed) == len(store.AllDatasets()) {
		l.dispatch(ctx, domain.EventReloadRejected, snapshotPayload(report))
		logger.Warn("Reload rejected: no dataset could be read, keeping current snapshot",
			zap.Strings("failed", report.Failed),
		)
		return report, apperrors.ErrReloadFailedf(errAllDatasetsFailed)
	}
	l.publish(ctx, snap, report)
	return report, nil
}

// build reads every dataset concurrently on the loader pool. A dataset
// that fails is logged and left empty. interrupted is non-nil when the
// context ended before every read finished, in which case the snapshot is
// incomplete.
func (l *Loader) build(ctx context.Context) (snap *store.Snapshot, report Report, interrupted error) {
	start := time.Now()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	type result struct {
		dataset store.Dataset
		table   store.Table
		err     error
	}

	datasets := store.AllDatasets()
	results := make([]result, len(datasets))
	var wg sync.WaitGroup
	for i, d := range datasets {
		i, d := i, d
		results[i].dataset = d
		wg.Add(1)
		// The pool skips tasks whose context is already done, which would
		// leave wg waiting; cancellation is observed by ReadTable instead.
		err := l.pools.Loader.Submit(context.WithoutCancel(ctx), func(context.Context) {
			defer wg.Done()
			results[i].table, results[i].err = l.src.ReadTable(ctx, d)
		})
		if err != nil {
			results[i].err = err
			wg.Done()
		}
	}
	wg.Wait()
	interrupted = ctx.Err()

	tables := make(map[store.Dataset]store.Table, len(datasets))
	report = Report{Rows: make(map[string]int, len(datasets)), Failed: []string{}}
	for _, r := range results {
		if r.err != nil {
			if interrupted == nil && isContextError(r.err) {
				interrupted = r.err
			}
			logger.Warn("Dataset unavailable, serving it empty",
				zap.String("dataset", r.dataset.String()),
				zap.String("source", l.src.Name()),
				zap.Error(r.err),
			)
			report.Failed = append(report.Failed, r.dataset.String())
			l.dispatch(ctx, domain.EventDatasetLoadFailed, domain.DatasetFailurePayload{
				Dataset: r.dataset.String(),
				Reason:  r.err.Error(),
			})
			tables[r.dataset] = store.Table{}
			continue
		}
		tables[r.dataset] = r.table
	}
	sort.Strings(report.Failed)

	snap = store.NewSnapshot(tables)
	for d, n := range snap.RowCounts() {
		report.Rows[d.String()] = n
	}
	report.LoadedAt = snap.LoadedAt()
	report.Duration = time.Since(start)
	report.DurationMS = report.Duration.Milliseconds()
	return snap, report, interrupted
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (l *Loader) publish(ctx context.Context, snap *store.Snapshot, report Report) {
	l.st.Publish(snap)
	logger.Info("Snapshot published",
		zap.String("source", l.src.Name()),
		zap.Any("rows", report.Rows),
		zap.Strings("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	l.dispatch(ctx, domain.EventSnapshotPublished, snapshotPayload(report))
}

func snapshotPayload(r Report) domain.SnapshotPayload {
	return domain.SnapshotPayload{Rows: r.Rows, Failed: r.Failed, Duration: r.Duration}
}

type payload interface {
	ToJSON() ([]byte, error)
}

// dispatch emits a lifecycle event. Handler failures are logged by the
// dispatcher and never fail a load.
func (l *Loader) dispatch(ctx context.Context, typ domain.EventType, p payload) {
	if l.dispatcher == nil {
		return
	}
	b, err := p.ToJSON()
	if err != nil {
		logger.Error("Encode lifecycle event", zap.String("event_type", string(typ)), zap.Error(err))
		return
	}
	id, _ := uuid.NewV7()
	_ = l.dispatcher.Dispatch(ctx, &domain.DomainEvent{
		EventID:   id.String(),
		EventType: typ,
		Source:    eventSource,
		Payload:   b,
		CreatedAt: time.Now().UTC(),
	})
}
