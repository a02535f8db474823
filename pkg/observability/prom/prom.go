// Package prom implements the observability hooks with Prometheus metrics.
//
// hamcount is a batch tool, so metrics are not scraped: the CLI writes them
// to a node_exporter textfile after each command.
//
//	m := prom.New()
//	m.Install()
//	defer m.WriteToTextfile("/var/lib/node_exporter/hamcount.prom")
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/hamcount/pkg/observability"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// Metrics holds the hamcount collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	SolvesTotal     *prometheus.CounterVec
	SolveDuration   *prometheus.HistogramVec
	ModelVariables  *prometheus.GaugeVec
	ModelClauses    *prometheus.GaugeVec
	SeparationWidth *prometheus.GaugeVec

	OrdersTotal   *prometheus.CounterVec
	OrderDuration *prometheus.HistogramVec
	CountsTotal   *prometheus.CounterVec
	CountDuration *prometheus.HistogramVec

	CacheRequests *prometheus.CounterVec
	CacheBytes    *prometheus.CounterVec
}

var durationBuckets = []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600, 3600}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{registry: r}
	f := promauto.With(r)

	m.SolvesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamcount_separation_solves_total",
			Help: "Separation model solves by oracle backend and outcome",
		},
		[]string{"backend", "status"},
	)
	m.SolveDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamcount_separation_solve_duration_seconds",
			Help:    "Wall time of separation model solves",
			Buckets: durationBuckets,
		},
		[]string{"backend"},
	)
	m.ModelVariables = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hamcount_separation_model_variables",
			Help: "Variables in the most recent separation model",
		},
		[]string{"backend"},
	)
	m.ModelClauses = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hamcount_separation_model_clauses",
			Help: "Hard and soft clauses in the most recent separation model",
		},
		[]string{"backend"},
	)
	m.SeparationWidth = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hamcount_order_width",
			Help: "Vertex separation of the most recent order",
		},
		[]string{"strategy"},
	)

	m.OrdersTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamcount_orders_total",
			Help: "Vertex orders computed by strategy and outcome",
		},
		[]string{"strategy", "status"},
	)
	m.OrderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamcount_order_duration_seconds",
			Help:    "Wall time of vertex ordering",
			Buckets: durationBuckets,
		},
		[]string{"strategy"},
	)
	m.CountsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamcount_counts_total",
			Help: "Engine counts by mode and outcome",
		},
		[]string{"mode", "status"},
	)
	m.CountDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamcount_count_duration_seconds",
			Help:    "Wall time of engine counts",
			Buckets: durationBuckets,
		},
		[]string{"mode"},
	)

	m.CacheRequests = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamcount_cache_requests_total",
			Help: "Cache lookups by key type and result",
		},
		[]string{"key_type", "result"}, // hit, miss
	)
	m.CacheBytes = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamcount_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type",
		},
		[]string{"key_type"},
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Install registers m as the solver, count and cache hooks.
func (m *Metrics) Install() {
	observability.SetSolverHooks(m)
	observability.SetCountHooks(m)
	observability.SetCacheHooks(m)
}

// WriteToTextfile writes all metrics in the text exposition format,
// atomically replacing path.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	if code := hcerrors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

// OnSolveStart implements observability.SolverHooks.
func (m *Metrics) OnSolveStart(_ context.Context, backend string, _, variables, clauses int) {
	m.ModelVariables.WithLabelValues(backend).Set(float64(variables))
	m.ModelClauses.WithLabelValues(backend).Set(float64(clauses))
}

// OnSolveComplete implements observability.SolverHooks.
func (m *Metrics) OnSolveComplete(_ context.Context, backend string, _ int, d time.Duration, err error) {
	m.SolvesTotal.WithLabelValues(backend, status(err)).Inc()
	m.SolveDuration.WithLabelValues(backend).Observe(d.Seconds())
}

// OnOrderStart implements observability.CountHooks.
func (m *Metrics) OnOrderStart(context.Context, string, int) {}

// OnOrderComplete implements observability.CountHooks.
func (m *Metrics) OnOrderComplete(_ context.Context, strategy string, width int, d time.Duration, err error) {
	m.OrdersTotal.WithLabelValues(strategy, status(err)).Inc()
	m.OrderDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if err == nil && width >= 0 {
		m.SeparationWidth.WithLabelValues(strategy).Set(float64(width))
	}
}

// OnCountStart implements observability.CountHooks.
func (m *Metrics) OnCountStart(context.Context, string, int, int) {}

// OnCountComplete implements observability.CountHooks.
func (m *Metrics) OnCountComplete(_ context.Context, mode string, d time.Duration, err error) {
	m.CountsTotal.WithLabelValues(mode, status(err)).Inc()
	m.CountDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.SolverHooks = (*Metrics)(nil)
	_ observability.CountHooks  = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)
