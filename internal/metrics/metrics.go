// Package metrics exposes Prometheus collectors for HTTP traffic, dataset
// loading and the worker pools.
//
// Collectors live on a private registry so tests can build independent
// instances.
//
// Import Path: incidentlens.io/lens/internal/metrics
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/pkg/worker"
)

const namespace = "incident_lens"

// Reload results.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	datasetRows     *prometheus.GaugeVec
	datasetFailures *prometheus.CounterVec
	reloads         *prometheus.CounterVec
	reloadDuration  prometheus.Summary
	lastReload      prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.datasetRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dataset_rows",
		Help:      "Rows held in the current snapshot per dataset",
	}, []string{"dataset"})
	m.datasetFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_load_failures_total",
		Help:      "Dataset loads that degraded to an empty table",
	}, []string{"dataset"})
	m.reloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_reloads_total",
		Help:      "Snapshot reloads by result",
	}, []string{"result"})
	m.reloadDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: namespace,
		Name:      "snapshot_build_duration_seconds",
		Help:      "Time spent reading and normalizing all datasets",
	})
	m.lastReload = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_last_published_timestamp_seconds",
		Help:      "Unix timestamp of the last published snapshot",
	})

	m.registry.MustRegister(
		m.httpRequests, m.httpDuration,
		m.datasetRows, m.datasetFailures,
		m.reloads, m.reloadDuration, m.lastReload,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RegisterPools exports the running and capacity figures of each pool.
func (m *Metrics) RegisterPools(pools *worker.Pools) error {
	for _, name := range []string{worker.PoolLoader, worker.PoolBackground} {
		name := name
		running := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "running",
			Help:        "Tasks currently running in the pool",
			ConstLabels: prometheus.Labels{"pool": name},
		}, func() float64 { return float64(pools.Metrics()[name].Running) })
		capacity := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "worker",
			Name:        "capacity",
			Help:        "Pool capacity",
			ConstLabels: prometheus.Labels{"pool": name},
		}, func() float64 { return float64(pools.Metrics()[name].Cap) })
		if err := m.registry.Register(running); err != nil {
			return fmt.Errorf("register %s pool gauge: %w", name, err)
		}
		if err := m.registry.Register(capacity); err != nil {
			return fmt.Errorf("register %s pool gauge: %w", name, err)
		}
	}
	return nil
}

// Subscribe registers handlers that keep the dataset collectors in step
// with snapshot lifecycle events.
func (m *Metrics) Subscribe(d *domain.EventDispatcher) {
	d.Register(domain.EventSnapshotPublished, m.onSnapshotPublished)
	d.Register(domain.EventReloadRejected, m.onReloadRejected)
	d.Register(domain.EventDatasetLoadFailed, m.onDatasetLoadFailed)
}

func (m *Metrics) onSnapshotPublished(_ context.Context, event *domain.DomainEvent) error {
	var p domain.SnapshotPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("decode snapshot payload: %w", err)
	}
	for dataset, n := range p.Rows {
		m.datasetRows.WithLabelValues(dataset).Set(float64(n))
	}
	m.reloads.WithLabelValues(ResultSuccess).Inc()
	m.reloadDuration.Observe(p.Duration.Seconds())
	m.lastReload.Set(float64(event.CreatedAt.Unix()))
	return nil
}

func (m *Metrics) onReloadRejected(_ context.Context, event *domain.DomainEvent) error {
	var p domain.SnapshotPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("decode snapshot payload: %w", err)
	}
	m.reloads.WithLabelValues(ResultRejected).Inc()
	m.reloadDuration.Observe(p.Duration.Seconds())
	return nil
}

func (m *Metrics) onDatasetLoadFailed(_ context.Context, event *domain.DomainEvent) error {
	var p domain.DatasetFailurePayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("decode dataset failure payload: %w", err)
	}
	m.datasetFailures.WithLabelValues(p.Dataset).Inc()
	return nil
}
