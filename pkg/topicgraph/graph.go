package topicgraph

import (
	"errors"
	"slices"
)

// UnknownTopic is the sentinel topic ID for entities whose topic is missing
// or unknown. It is also the topic assumed when a selection references an
// entity that is not in the graph.
const UnknownTopic = "-1"

var (
	// ErrInvalidEntityID is returned when an entity ID is empty.
	ErrInvalidEntityID = errors.New("entity ID must not be empty")

	// ErrUnknownEntity is returned by [Graph.UpsertRelation] when either
	// endpoint has not been added with [Graph.UpsertEntity].
	ErrUnknownEntity = errors.New("unknown entity")
)

// Entity is a node of the bipartite graph.
//
// ID, TopicID and Label are fixed by the first row that mentions the key.
// Color and Size are derived once after ingestion. Visible is the only field
// that changes afterwards, and only through the visibility filter.
type Entity struct {
	ID      string
	TopicID string
	Label   string
	Color   string
	Size    float64
	Visible bool
}

// DisplayLabel returns the label if set, otherwise the ID.
func (e Entity) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// Relation is an undirected edge between two distinct entities.
// A and B keep the orientation of the first row that introduced the pair.
type Relation struct {
	A string
	B string
}

// Other returns the endpoint opposite to id.
func (r Relation) Other(id string) string {
	if r.A == id {
		return r.B
	}
	return r.A
}

// Graph is an undirected, unweighted graph of entities keyed by ID.
//
// Iteration order everywhere is insertion order so that layouts, exports and
// tests are deterministic. The zero value is not usable; call [New].
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	entities  map[string]*Entity
	order     []string
	adjacency map[string]map[string]struct{}
	relations []Relation
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		entities:  make(map[string]*Entity),
		adjacency: make(map[string]map[string]struct{}),
	}
}

// UpsertEntity adds an entity if its ID is unknown and reports whether it
// was created. Existing entities are left untouched, so the first-seen topic
// and label win. New entities start visible.
func (g *Graph) UpsertEntity(id, topicID, label string) bool {
	if id == "" {
		return false
	}
	if _, ok := g.entities[id]; ok {
		return false
	}
	g.entities[id] = &Entity{
		ID:      id,
		TopicID: topicID,
		Label:   label,
		Visible: true,
	}
	g.order = append(g.order, id)
	g.adjacency[id] = make(map[string]struct{})
	return true
}

// UpsertRelation adds an undirected edge between a and b and reports whether
// it was created. Duplicate pairs in either orientation and self-pairs are
// ignored. Both endpoints must already exist.
func (g *Graph) UpsertRelation(a, b string) (bool, error) {
	if a == "" || b == "" {
		return false, ErrInvalidEntityID
	}
	if _, ok := g.entities[a]; !ok {
		return false, ErrUnknownEntity
	}
	if _, ok := g.entities[b]; !ok {
		return false, ErrUnknownEntity
	}
	if a == b {
		return false, nil
	}
	if _, ok := g.adjacency[a][b]; ok {
		return false, nil
	}
	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
	g.relations = append(g.relations, Relation{A: a, B: b})
	return true, nil
}

// Has reports whether an entity with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.entities[id]
	return ok
}

// Entity returns a copy of the entity with the given ID.
func (g *Graph) Entity(id string) (Entity, bool) {
	e, ok := g.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns copies of all entities in insertion order.
func (g *Graph) Entities() []Entity {
	out := make([]Entity, len(g.order))
	for i, id := range g.order {
		out[i] = *g.entities[id]
	}
	return out
}

// IDs returns all entity IDs in insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Relations returns a copy of all relations in insertion order.
func (g *Graph) Relations() []Relation { return slices.Clone(g.relations) }

// NodeCount returns the number of entities.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of distinct relations.
func (g *Graph) EdgeCount() int { return len(g.relations) }

// AreNeighbors reports whether a and b share a relation.
func (g *Graph) AreNeighbors(a, b string) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// Neighbors returns the IDs adjacent to id, sorted for stable output.
// Returns nil for unknown IDs.
func (g *Graph) Neighbors(id string) []string {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(adj))
	for n := range adj {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of distinct neighbors of id, or 0 if unknown.
func (g *Graph) Degree(id string) int { return len(g.adjacency[id]) }

// DegreeRange returns the smallest and largest degree in the graph.
// ok is false for an empty graph.
func (g *Graph) DegreeRange() (minDegree, maxDegree int, ok bool) {
	if len(g.order) == 0 {
		return 0, 0, false
	}
	minDegree = g.Degree(g.order[0])
	maxDegree = minDegree
	for _, id := range g.order[1:] {
		d := g.Degree(id)
		minDegree = min(minDegree, d)
		maxDegree = max(maxDegree, d)
	}
	return minDegree, maxDegree, true
}

// SetAppearance stores derived color and size for id.
// Unknown IDs are ignored.
func (g *Graph) SetAppearance(id, color string, size float64) {
	if e, ok := g.entities[id]; ok {
		e.Color = color
		e.Size = size
	}
}

// SetVisible sets the visibility flag for id. Unknown IDs are ignored.
// Only the visibility filter should call this after ingestion.
func (g *Graph) SetVisible(id string, visible bool) {
	if e, ok := g.entities[id]; ok {
		e.Visible = visible
	}
}

// VisibleCount returns the number of visible entities.
func (g *Graph) VisibleCount() int {
	n := 0
	for _, e := range g.entities {
		if e.Visible {
			n++
		}
	}
	return n
}
