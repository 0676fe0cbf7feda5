// Package observability provides hooks for metrics and logging.
//
// Libraries in this module never import a metrics backend directly. They call
// the registered hooks, which default to no-ops; main (or the serve command)
// swaps in a real implementation such as [PrometheusHooks] at startup.
//
// # Usage
//
// Install hooks at application startup:
//
//	prom := observability.NewPrometheusHooks(prometheus.NewRegistry())
//	observability.Install(observability.Hooks{Pipeline: prom, Filter: prom})
//
// or, for Prometheus, prom.Install() to cover every source.
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... ingest ...
//	observability.Pipeline().OnLoadComplete(ctx, source, rows, skipped, duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the load, layout and render stages.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, rows, skipped int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, iterations int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Filter Hooks
// =============================================================================

// FilterHooks receives one event per visibility transition.
type FilterHooks interface {
	// OnTransition records a handled selection event, the state it left the
	// graph in and how many entities remain visible.
	OnTransition(ctx context.Context, kind, state string, visible int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Registry
// =============================================================================

// Hooks bundles one implementation per event source.
type Hooks struct {
	Pipeline PipelineHooks
	Filter   FilterHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnLoadStart(context.Context, string)                                    {}
func (Noop) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (Noop) OnLayoutStart(context.Context, int)                                     {}
func (Noop) OnLayoutComplete(context.Context, int, time.Duration, error)            {}
func (Noop) OnRenderStart(context.Context, []string)                                {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (Noop) OnTransition(context.Context, string, string, int, time.Duration)       {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Install replaces the registered hooks in one step. Nil fields are
// filled with [Noop], so callers can install only what they observe.
func Install(h Hooks) {
	if h.Pipeline == nil {
		h.Pipeline = Noop{}
	}
	if h.Filter == nil {
		h.Filter = Noop{}
	}
	if h.Cache == nil {
		h.Cache = Noop{}
	}
	if h.HTTP == nil {
		h.HTTP = Noop{}
	}
	current.Store(&h)
}

// Reset restores the no-op hooks.
func Reset() { Install(Hooks{}) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Filter returns the registered filter hooks.
func Filter() FilterHooks { return current.Load().Filter }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().HTTP }
