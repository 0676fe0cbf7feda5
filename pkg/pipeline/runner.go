package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/ingest"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, loader and logger; it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Loader *ingest.Loader
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Loader: ingest.NewLoader(c, keyer, logger),
		Logger: logger,
	}
}

// Execute runs the complete load → layout → select → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	loaded, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	ds := r.PrepareDataset(loaded.Dataset, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows = loaded.Rows
	result.Stats.Skipped = loaded.Skipped
	result.CacheInfo.LoadHit = loadHit

	logger.Info("built network",
		"nodes", ds.Graph.NodeCount(),
		"edges", ds.Graph.EdgeCount(),
		"topics", ds.Topics.Len(),
		"skipped", loaded.Skipped,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"iterations", opts.Iterations,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Select
	view := NewView(ds, l.Positions(), opts.LayoutConfig())
	if opts.Event != nil {
		if err := view.Dispatch(ctx, *opts.Event); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		logger.Info("applied selection",
			"event", opts.Event.String(),
			"state", view.Controller.State(),
			"visible", ds.Graph.VisibleCount())
	}
	result.Layout = view.Layout()
	result.State = view.Controller.State()

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	result.Dataset = ds
	result.DatasetHash = hashDataset(ds)
	result.Stats.NodeCount = ds.Graph.NodeCount()
	result.Stats.EdgeCount = ds.Graph.EdgeCount()
	result.Stats.TopicCount = ds.Topics.Len()
	result.Stats.VisibleCount = ds.Graph.VisibleCount()
	return result, nil
}

// View loads and lays out a network and returns it ready for interactive
// selection. Formats are not validated since nothing is rendered.
func (r *Runner) View(ctx context.Context, opts Options) (*View, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loaded, _, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	ds := r.PrepareDataset(loaded.Dataset, opts)

	l, _, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	v := NewView(ds, l.Positions(), opts.LayoutConfig())
	v.Rows, v.Skipped = loaded.Rows, loaded.Skipped
	return v, nil
}

// LoadWithCacheInfo reads and builds the dataset, reusing a cached build of
// identical content and decode options. It reports whether the build came
// from cache. Fetching a remote source goes through the loader's own cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*Loaded, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	loaded, hit, err := r.load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLoadComplete(ctx, opts.Source, loaded.Rows, loaded.Skipped, time.Since(start), nil)
	return loaded, hit, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*Loaded, error) {
	loaded, _, err := r.LoadWithCacheInfo(ctx, opts)
	return loaded, err
}

func (r *Runner) load(ctx context.Context, opts Options) (*Loaded, bool, error) {
	loader := *r.Loader
	loader.Refresh = opts.Refresh
	loader.Logger = opts.Logger

	src, err := loader.Open(ctx, opts.Source)
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.DatasetKey(src.Hash(), opts.DatasetKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if loaded, err := UnmarshalLoaded(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeDataset)
				return loaded, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeDataset)
	}

	batch, err := ingest.Decode(bytes.NewReader(src.Data), opts.DecodeOptions())
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("decoded dataset", "source", opts.Source, "summary", batch.Summary())
	loaded := &Loaded{Dataset: batch.Build(), Rows: batch.Rows, Skipped: batch.Skipped}

	if data, err := loaded.Marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeDataset, len(data))
		}
	}
	return loaded, false, nil
}

// PrepareDataset crops the dataset to its largest connected component when
// opts.LargestComponent is set. The topic registry is kept whole so the
// legend still lists every topic of the source.
func (r *Runner) PrepareDataset(ds topicgraph.Dataset, opts Options) topicgraph.Dataset {
	if !opts.LargestComponent {
		return ds
	}
	cropped := ds.Graph.LargestComponent()
	r.Logger.Debug("cropped to largest component",
		"original_nodes", ds.Graph.NodeCount(),
		"kept_nodes", cropped.NodeCount())
	return topicgraph.Dataset{Graph: cropped, Topics: ds.Topics}
}

// LayoutWithCacheInfo annotates ds with colors and sizes and computes its
// positions, reusing cached positions for an identical graph and settings.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ds topicgraph.Dataset, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}

	Annotate(ds, opts)

	cacheKey := r.Keyer.LayoutKey(hashDataset(ds), opts.LayoutKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)

	l, err := ComputeLayout(ctx, ds, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, ds topicgraph.Dataset, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The key covers the full layout, hidden flags included.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func hashDataset(ds topicgraph.Dataset) string {
	data, err := graph.MarshalGraph(ds)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
