package filter

import (
	"context"
	"time"

	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/observability"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

type handler func(c *Controller, ev Event)

// dispatch maps each event kind to its transition.
var dispatch = map[EventKind]handler{
	NodeClick:       func(c *Controller, ev Event) { c.OnNodeClick(ev.NodeID) },
	NodeDoubleClick: func(c *Controller, ev Event) { c.OnNodeDoubleClick(ev.NodeID) },
	StageClick:      func(c *Controller, _ Event) { c.OnStageClick() },
	LegendRowClick:  func(c *Controller, ev Event) { c.OnLegendRowClick(ev.TopicID) },
}

// Controller drives the Visible flag of every entity in a graph.
//
// Each transition recomputes visibility for all entities from scratch; the
// controller keeps no history beyond the last selection, which it only
// reports through [Controller.State] and [Controller.Selection].
//
// A Controller is not safe for concurrent use. Callers that receive events
// from several goroutines must serialize calls to it.
type Controller struct {
	graph *topicgraph.Graph
	state State
	last  Event
}

// New returns a controller over g. The graph is not reset; call
// [Controller.OnStageClick] to start from a known state.
func New(g *topicgraph.Graph) *Controller {
	return &Controller{graph: g, state: Unfiltered, last: Stage()}
}

// Dispatch routes ev to its transition. Unknown kinds return an
// INVALID_INPUT error and leave visibility untouched.
func (c *Controller) Dispatch(ev Event) error {
	return c.DispatchContext(context.Background(), ev)
}

// DispatchContext is [Controller.Dispatch] with a context passed to the
// observability hooks.
func (c *Controller) DispatchContext(ctx context.Context, ev Event) error {
	h, ok := dispatch[ev.Kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown event kind %v", ev.Kind)
	}
	start := time.Now()
	h(c, ev)
	observability.Filter().OnTransition(ctx, ev.Kind.String(), c.state.String(), c.graph.VisibleCount(), time.Since(start))
	return nil
}

// OnNodeClick shows id and its neighbors and hides everything else.
// An unknown id resets the graph to fully visible.
func (c *Controller) OnNodeClick(id string) {
	c.last = Click(id)
	if !c.graph.Has(id) {
		c.reset()
		return
	}
	for _, other := range c.graph.IDs() {
		c.graph.SetVisible(other, other == id || c.graph.AreNeighbors(id, other))
	}
	c.state = NeighborIsolated
}

// OnNodeDoubleClick shows every entity sharing id's topic. Visibility is
// reset first, so the result does not depend on the prior state. An unknown
// id isolates the unknown topic.
func (c *Controller) OnNodeDoubleClick(id string) {
	c.last = DoubleClick(id)
	c.reset()
	topic := topicgraph.UnknownTopic
	if e, ok := c.graph.Entity(id); ok {
		topic = e.TopicID
	}
	c.isolateTopic(topic)
}

// OnStageClick makes every entity visible.
func (c *Controller) OnStageClick() {
	c.last = Stage()
	c.reset()
}

// OnLegendRowClick shows every entity whose topic equals topicID. There is no
// reset first; since every entity is assigned explicitly the outcome is the
// same.
func (c *Controller) OnLegendRowClick(topicID string) {
	c.last = Legend(topicID)
	c.isolateTopic(topicID)
}

// State returns the effective state after the last event.
func (c *Controller) State() State { return c.state }

// Selection returns the last event handled.
func (c *Controller) Selection() Event { return c.last }

// Visible returns the IDs of visible entities in insertion order.
func (c *Controller) Visible() []string {
	var out []string
	for _, e := range c.graph.Entities() {
		if e.Visible {
			out = append(out, e.ID)
		}
	}
	return out
}

// IsVisible reports whether id is currently visible.
func (c *Controller) IsVisible(id string) bool {
	e, ok := c.graph.Entity(id)
	return ok && e.Visible
}

func (c *Controller) reset() {
	for _, id := range c.graph.IDs() {
		c.graph.SetVisible(id, true)
	}
	c.state = Unfiltered
}

func (c *Controller) isolateTopic(topicID string) {
	for _, e := range c.graph.Entities() {
		c.graph.SetVisible(e.ID, e.TopicID == topicID)
	}
	c.state = TopicIsolated
}
