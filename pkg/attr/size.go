package attr

import "github.com/matzehuels/topicnet/pkg/topicgraph"

const (
	DefaultMinSize = 2.0
	DefaultMaxSize = 15.0
)

// SizeRange bounds derived node sizes.
type SizeRange struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// DefaultSizeRange returns the 2..15 range used by the browser renderer.
func DefaultSizeRange() SizeRange {
	return SizeRange{Min: DefaultMinSize, Max: DefaultMaxSize}
}

// Valid reports whether the range is usable.
func (r SizeRange) Valid() bool {
	return r.Min > 0 && r.Max >= r.Min
}

// SizeOf maps degree linearly from [minDeg, maxDeg] onto r.
//
// When every node has the same degree the range is degenerate and every node
// gets r.Min. The result is always clamped to r.
func SizeOf(degree, minDeg, maxDeg int, r SizeRange) float64 {
	if maxDeg <= minDeg {
		return r.Min
	}
	t := float64(degree-minDeg) / float64(maxDeg-minDeg)
	size := r.Min + t*(r.Max-r.Min)
	return max(r.Min, min(r.Max, size))
}

// Annotate derives color and size for every entity of g.
// An empty graph is left untouched.
func Annotate(g *topicgraph.Graph, r SizeRange) {
	minDeg, maxDeg, ok := g.DegreeRange()
	if !ok {
		return
	}
	for _, e := range g.Entities() {
		g.SetAppearance(e.ID, ColorOf(e.TopicID), SizeOf(g.Degree(e.ID), minDeg, maxDeg, r))
	}
}
