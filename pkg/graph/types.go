package graph

import (
	"fmt"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/layout"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// =============================================================================
// Graph - Bipartite Network Serialization
// =============================================================================

// Graph is the canonical serialization format for a built dataset.
// Nodes and edges keep the insertion order of the source rows, so that a
// re-imported graph produces the same circular seed and the same layout.
type Graph struct {
	Nodes  []Node  `json:"nodes" bson:"nodes"`
	Edges  []Edge  `json:"edges" bson:"edges"`
	Topics []Topic `json:"topics" bson:"topics"`
}

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Node is shared by [Graph] and [Layout]. Appearance and position fields
// are only populated in layouts.
type Node struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Topic  string  `json:"topic" bson:"topic"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty"`
	Size   float64 `json:"size,omitempty" bson:"size,omitempty"`
	X      float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y      float64 `json:"y,omitempty" bson:"y,omitempty"`
	Hidden bool    `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is an undirected relation. From is the endpoint that was seen first.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Topic is a registry entry.
type Topic struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// =============================================================================
// Dataset ↔ Graph Conversion
// =============================================================================

// FromDataset converts a dataset to its serialization format.
// Topics are listed in registry order.
func FromDataset(ds topicgraph.Dataset) Graph {
	entities := ds.Graph.Entities()
	relations := ds.Graph.Relations()

	out := Graph{
		Nodes:  make([]Node, len(entities)),
		Edges:  make([]Edge, len(relations)),
		Topics: topicsFrom(ds.Topics),
	}
	for i, e := range entities {
		out.Nodes[i] = Node{ID: e.ID, Label: e.Label, Topic: e.TopicID}
	}
	for i, r := range relations {
		out.Edges[i] = Edge{From: r.A, To: r.B}
	}
	return out
}

// ToDataset rebuilds a dataset from its serialization format.
// Duplicate nodes and edges collapse the same way they do during ingestion.
// Returns an error if an edge references an unknown node.
func ToDataset(gj Graph) (topicgraph.Dataset, error) {
	return buildDataset(gj.Nodes, gj.Edges, gj.Topics)
}

func topicsFrom(reg *topicgraph.Registry) []Topic {
	sorted := reg.Sorted()
	out := make([]Topic, len(sorted))
	for i, t := range sorted {
		out[i] = Topic{ID: t.ID, Name: t.Name}
	}
	return out
}

func buildDataset(nodes []Node, edges []Edge, topics []Topic) (topicgraph.Dataset, error) {
	g := topicgraph.New()
	reg := topicgraph.NewRegistry()

	for _, t := range topics {
		reg.Register(t.ID, t.Name)
	}
	for _, n := range nodes {
		if n.ID == "" {
			return topicgraph.Dataset{}, fmt.Errorf("node: %w", topicgraph.ErrInvalidEntityID)
		}
		topic := n.Topic
		if topic == "" {
			topic = topicgraph.UnknownTopic
		}
		g.UpsertEntity(n.ID, topic, n.Label)
	}
	for _, e := range edges {
		if _, err := g.UpsertRelation(e.From, e.To); err != nil {
			return topicgraph.Dataset{}, fmt.Errorf("add edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return topicgraph.Dataset{Graph: g, Topics: reg}, nil
}

// =============================================================================
// Layout - Positioned, Annotated Network
// =============================================================================

// Layout is the serialization format consumed by renderers and the browser
// client. Every node carries its derived color and size, its position in
// the Width x Height frame and whether the current filter hides it.
type Layout struct {
	Width      float64          `json:"width" bson:"width"`
	Height     float64          `json:"height" bson:"height"`
	Iterations int              `json:"iterations" bson:"iterations"`
	Nodes      []Node           `json:"nodes" bson:"nodes"`
	Edges      []Edge           `json:"edges" bson:"edges"`
	Topics     []Topic          `json:"topics,omitempty" bson:"topics,omitempty"`
	Legend     []attr.LegendRow `json:"legend,omitempty" bson:"legend,omitempty"`
}

// NewLayout captures an annotated dataset and its positions. Visibility is
// read from the entities at call time, so calling NewLayout after a filter
// transition exports the filtered view.
func NewLayout(ds topicgraph.Dataset, pos layout.Positions, cfg layout.Config) Layout {
	entities := ds.Graph.Entities()
	relations := ds.Graph.Relations()

	l := Layout{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Iterations: cfg.Iterations,
		Nodes:      make([]Node, len(entities)),
		Edges:      make([]Edge, len(relations)),
		Topics:     topicsFrom(ds.Topics),
		Legend:     attr.Legend(ds.Topics),
	}
	for i, e := range entities {
		p := pos[e.ID]
		l.Nodes[i] = Node{
			ID:     e.ID,
			Label:  e.Label,
			Topic:  e.TopicID,
			Color:  e.Color,
			Size:   e.Size,
			X:      p.X,
			Y:      p.Y,
			Hidden: !e.Visible,
		}
	}
	for i, r := range relations {
		l.Edges[i] = Edge{From: r.A, To: r.B}
	}
	return l
}

// Dataset rebuilds the annotated dataset and positions stored in l.
// Colors, sizes and visibility are restored as serialized.
func (l Layout) Dataset() (topicgraph.Dataset, layout.Positions, error) {
	ds, err := buildDataset(l.Nodes, l.Edges, l.Topics)
	if err != nil {
		return topicgraph.Dataset{}, nil, err
	}
	for _, n := range l.Nodes {
		ds.Graph.SetAppearance(n.ID, n.Color, n.Size)
		ds.Graph.SetVisible(n.ID, !n.Hidden)
	}
	return ds, l.Positions(), nil
}

// Positions returns the node coordinates stored in l.
func (l Layout) Positions() layout.Positions {
	pos := make(layout.Positions, len(l.Nodes))
	for _, n := range l.Nodes {
		pos[n.ID] = layout.Point{X: n.X, Y: n.Y}
	}
	return pos
}

// Config returns the frame recorded in l.
func (l Layout) Config() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Iterations = l.Width, l.Height, l.Iterations
	return cfg
}

// HiddenCount returns the number of nodes hidden by the filter.
func (l Layout) HiddenCount() int {
	n := 0
	for _, node := range l.Nodes {
		if node.Hidden {
			n++
		}
	}
	return n
}
