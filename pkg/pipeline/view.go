package pipeline

import (
	"context"

	"github.com/matzehuels/topicnet/pkg/filter"
	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/layout"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// View is a laid out network with a filter controller attached. Positions
// are fixed; only visibility changes as events are dispatched.
//
// A View is not safe for concurrent use. Callers serving several clients
// must serialize access.
type View struct {
	Dataset    topicgraph.Dataset
	Positions  layout.Positions
	Config     layout.Config
	Controller *filter.Controller

	// Rows and Skipped are copied from the load stage when known.
	Rows    int
	Skipped int
}

// NewView wraps an annotated dataset and its positions.
func NewView(ds topicgraph.Dataset, pos layout.Positions, cfg layout.Config) *View {
	return &View{
		Dataset:    ds,
		Positions:  pos,
		Config:     cfg,
		Controller: filter.New(ds.Graph),
	}
}

// ViewFromLayout rebuilds a view from a serialized layout, restoring the
// stored visibility. The controller starts Unfiltered regardless.
func ViewFromLayout(l graph.Layout) (*View, error) {
	ds, pos, err := l.Dataset()
	if err != nil {
		return nil, err
	}
	return NewView(ds, pos, l.Config()), nil
}

// Dispatch routes ev to the filter controller.
func (v *View) Dispatch(ctx context.Context, ev filter.Event) error {
	return v.Controller.DispatchContext(ctx, ev)
}

// Layout exports the current view, hidden flags included.
func (v *View) Layout() graph.Layout {
	return graph.NewLayout(v.Dataset, v.Positions, v.Config)
}

// DOT returns the Graphviz source of the current view.
func (v *View) DOT(opts nodelink.Options) string {
	return nodelink.ToDOT(v.Layout(), opts)
}
