package layout

import (
	"context"
	"math"

	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Defaults match the browser renderer: an 800x600 frame refined for 600
// iterations.
const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultIterations = 600
	DefaultPadding    = 40.0
	DefaultGravity    = 0.1
)

// Point is a 2D position in frame coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps entity IDs to points.
type Positions map[string]Point

// Config controls the frame and the refinement pass.
type Config struct {
	Width      float64
	Height     float64
	Iterations int
	Padding    float64
	// Gravity pulls every node toward the frame center so that
	// disconnected components stay in view.
	Gravity float64
}

// DefaultConfig returns the default frame and iteration count.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Iterations: DefaultIterations,
		Padding:    DefaultPadding,
		Gravity:    DefaultGravity,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Iterations < 0 {
		c.Iterations = 0
	}
	if c.Padding <= 0 {
		c.Padding = d.Padding
	}
	if c.Gravity <= 0 {
		c.Gravity = d.Gravity
	}
	return c
}

// Compute seeds a circular placement and refines it with [ForceDirected].
func Compute(ctx context.Context, g *topicgraph.Graph, cfg Config) (Positions, error) {
	cfg = cfg.withDefaults()
	return ForceDirected(ctx, g, Circular(g.IDs(), cfg), cfg)
}

// Circular places ids evenly on a circle centered in the frame, in the
// given order, starting at angle zero.
func Circular(ids []string, cfg Config) Positions {
	cfg = cfg.withDefaults()
	out := make(Positions, len(ids))
	if len(ids) == 0 {
		return out
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	radius := math.Max(math.Min(cx, cy)-cfg.Padding, 1)
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		a := float64(i) * step
		out[id] = Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return out
}

// Bounds returns the bounding box of p. ok is false for an empty map.
func (p Positions) Bounds() (minPt, maxPt Point, ok bool) {
	if len(p) == 0 {
		return Point{}, Point{}, false
	}
	minPt = Point{X: math.MaxFloat64, Y: math.MaxFloat64}
	maxPt = Point{X: -math.MaxFloat64, Y: -math.MaxFloat64}
	for _, pt := range p {
		minPt.X = math.Min(minPt.X, pt.X)
		minPt.Y = math.Min(minPt.Y, pt.Y)
		maxPt.X = math.Max(maxPt.X, pt.X)
		maxPt.Y = math.Max(maxPt.Y, pt.Y)
	}
	return minPt, maxPt, true
}

// fit scales positions uniformly into the padded frame and centers them.
func fit(p Positions, cfg Config) Positions {
	lo, hi, ok := p.Bounds()
	if !ok {
		return p
	}
	rangeX := math.Max(hi.X-lo.X, 0.01)
	rangeY := math.Max(hi.Y-lo.Y, 0.01)
	targetW := cfg.Width - 2*cfg.Padding
	targetH := cfg.Height - 2*cfg.Padding
	scale := math.Min(targetW/rangeX, targetH/rangeY)

	offX := cfg.Padding + (targetW-rangeX*scale)/2
	offY := cfg.Padding + (targetH-rangeY*scale)/2

	out := make(Positions, len(p))
	for id, pt := range p {
		out[id] = Point{
			X: offX + (pt.X-lo.X)*scale,
			Y: offY + (pt.Y-lo.Y)*scale,
		}
	}
	return out
}
