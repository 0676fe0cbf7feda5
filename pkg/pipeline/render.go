package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats without
// caching. Formats are rendered concurrently from a single DOT source.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(l, NodelinkOptions(opts))

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			var data []byte
			var err error
			if format == FormatJSON {
				data, err = graph.MarshalLayout(l)
			} else {
				data, err = nodelink.Render(ctx, dot, format)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// NodelinkOptions maps pipeline options onto DOT generation options.
func NodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Labels: opts.Labels, Legend: opts.Legend}
}
