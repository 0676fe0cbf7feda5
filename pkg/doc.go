// Package pkg provides the core libraries for topicnet network exploration.
//
// # Overview
//
// Topicnet turns a CSV of institution/topic links into an interactive
// network: entities become nodes colored by topic and sized by degree,
// relations become undirected edges, and a small state machine decides which
// nodes are visible after each selection gesture. The pkg directory is
// organized into three areas:
//
//  1. Domain - [ingest], [topicgraph], [attr], [layout], [filter]
//  2. Output - [graph], [render], [render/nodelink]
//  3. Infrastructure - [pipeline], [cache], [httputil], [errors], [observability]
//
// # Architecture
//
// The typical data flow through topicnet:
//
//	CSV (local path or http(s) URL)
//	         ↓
//	    [ingest] package (decode rows, normalize, skip malformed)
//	         ↓
//	    [topicgraph] package (entities, relations, topic registry)
//	         ↓
//	    [attr] package (colors, sizes, legend)
//	         ↓
//	    [layout] package (force-directed positions)
//	         ↓
//	    [filter] package (visibility after clicks)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	f, _ := os.Open("links.csv")
//	batch, _ := ingest.Decode(f, ingest.Options{})
//	ds := batch.Build()
//
//	attr.Annotate(ds.Graph, attr.DefaultSizeRange())
//	pos, _ := layout.Compute(ctx, ds.Graph, layout.DefaultConfig())
//
//	ctrl := filter.New(ds.Graph)
//	ctrl.Dispatch(filter.Click("i1"))  // i1 and its neighbors stay visible
//
//	l := graph.NewLayout(ds, pos, layout.DefaultConfig())
//	svg, _ := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//
// The [pipeline] package wires these stages together with caching and is
// what the CLI and HTTP server use.
//
// # Main Packages
//
// [ingest] - Source loading (local files and cached HTTP fetches), header
// resolution against configurable column names, and row normalization.
// Malformed rows are counted, never fatal.
//
// [topicgraph] - The in-memory model: an undirected graph of keyed entities
// with first-write-wins attributes and a registry of topic names.
//
// [attr] - Derived attributes. Colors come from a fixed topic palette, sizes
// scale linearly with degree, and the legend lists topics by numeric ID.
//
// [layout] - Deterministic force-directed placement inside a fixed frame.
//
// [filter] - The visibility state machine driven by node clicks, node
// double-clicks, background clicks and legend row clicks.
//
// [graph] - JSON serialization for built networks and computed layouts.
//
// [render/nodelink] - Graphviz rendering of a layout with pinned positions.
//
// [render] - Format conversion from SVG to PDF and PNG.
//
// [cache] - File, Redis and MongoDB cache backends behind one interface.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/filter/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [ingest]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/ingest
// [topicgraph]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/topicgraph
// [attr]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/attr
// [layout]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/layout
// [filter]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/filter
// [graph]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/topicnet/pkg/observability
package pkg
