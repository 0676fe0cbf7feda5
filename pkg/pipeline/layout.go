package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/layout"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Annotate derives color and size for every entity using the configured
// size range.
func Annotate(ds topicgraph.Dataset, opts Options) {
	opts.SetLayoutDefaults()
	attr.Annotate(ds.Graph, opts.SizeRange())
}

// ComputeLayout positions an annotated dataset without caching.
func ComputeLayout(ctx context.Context, ds topicgraph.Dataset, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()
	cfg := opts.LayoutConfig()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, ds.Graph.NodeCount())
	start := time.Now()

	pos, err := layout.Compute(ctx, ds.Graph, cfg)
	hooks.OnLayoutComplete(ctx, cfg.Iterations, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.NewLayout(ds, pos, cfg), nil
}
