package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "topicnet"

// PrometheusHooks implements every hook interface on top of a Prometheus
// registry. Use [PrometheusHooks.Handler] to expose the collected metrics.
type PrometheusHooks struct {
	registry *prometheus.Registry

	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	RowsTotal     *prometheus.CounterVec

	FilterEventsTotal   *prometheus.CounterVec
	FilterEventDuration *prometheus.HistogramVec
	VisibleEntities     prometheus.Gauge

	CacheOpsTotal  *prometheus.CounterVec
	CacheSetBytes  *prometheus.HistogramVec
	HTTPFetchTotal *prometheus.CounterVec
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ FilterHooks   = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)

// NewPrometheusHooks registers all collectors with reg.
// A nil reg creates a fresh registry.
func NewPrometheusHooks(reg *prometheus.Registry) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &PrometheusHooks{
		registry: reg,
		StageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by stage and status",
		}, []string{"stage", "status"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		RowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Input rows by outcome",
		}, []string{"outcome"}),
		FilterEventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_events_total",
			Help:      "Selection events handled by kind and resulting state",
		}, []string{"kind", "state"}),
		FilterEventDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_event_duration_seconds",
			Help:      "Visibility recomputation latency in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"kind"}),
		VisibleEntities: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_entities",
			Help:      "Entities visible after the last selection event",
		}),
		CacheOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and result",
		}, []string{"key_type", "result"}),
		CacheSetBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_set_bytes",
			Help:      "Size of cache writes in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		}, []string{"key_type"}),
		HTTPFetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_fetch_total",
			Help:      "Outgoing dataset fetches by host and status",
		}, []string{"host", "status"}),
	}
}

// Registry returns the underlying Prometheus registry.
func (p *PrometheusHooks) Registry() *prometheus.Registry { return p.registry }

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Install registers p as the global hook implementation for every category.
func (p *PrometheusHooks) Install() {
	Install(Hooks{Pipeline: p, Filter: p, Cache: p, HTTP: p})
}

func (p *PrometheusHooks) stage(name string, d time.Duration, err error) {
	p.StageTotal.WithLabelValues(name, status(err)).Inc()
	p.StageDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnLoadStart(context.Context, string) {}

func (p *PrometheusHooks) OnLoadComplete(_ context.Context, _ string, rows, skipped int, d time.Duration, err error) {
	p.stage("load", d, err)
	p.RowsTotal.WithLabelValues("accepted").Add(float64(rows - skipped))
	p.RowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

func (p *PrometheusHooks) OnLayoutStart(context.Context, int) {}

func (p *PrometheusHooks) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	p.stage("layout", d, err)
}

func (p *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.stage("render", d, err)
}

func (p *PrometheusHooks) OnTransition(_ context.Context, kind, state string, visible int, d time.Duration) {
	p.FilterEventsTotal.WithLabelValues(kind, state).Inc()
	p.FilterEventDuration.WithLabelValues(kind).Observe(d.Seconds())
	p.VisibleEntities.Set(float64(visible))
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	p.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (p *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, _ time.Duration) {
	p.HTTPFetchTotal.WithLabelValues(host, http.StatusText(statusCode)).Inc()
}

func (p *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	p.HTTPFetchTotal.WithLabelValues(host, "error").Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
