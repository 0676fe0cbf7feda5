package layout

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

const minDistance = 0.01

// ForceDirected refines seed with a Fruchterman-Reingold pass: every pair of
// nodes repels, every relation attracts, and a weak gravity pulls toward the
// center. Displacement is capped by a temperature that cools linearly to
// zero. The result is scaled into the padded frame.
//
// The pass is deterministic for a given seed. Repulsion is computed in
// parallel, one goroutine per chunk of nodes; each node's force is summed in
// a fixed order so scheduling does not affect the result. ctx is checked
// between iterations.
//
// Nodes missing from seed start at the frame center.
func ForceDirected(ctx context.Context, g *topicgraph.Graph, seed Positions, cfg Config) (Positions, error) {
	cfg = cfg.withDefaults()
	ids := g.IDs()
	n := len(ids)
	if n == 0 {
		return Positions{}, nil
	}
	if n == 1 {
		return Positions{ids[0]: {X: cfg.Width / 2, Y: cfg.Height / 2}}, nil
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	pos := make([]Point, n)
	for i, id := range ids {
		if pt, ok := seed[id]; ok {
			pos[i] = pt
		} else {
			pos[i] = Point{X: cfg.Width / 2, Y: cfg.Height / 2}
		}
	}
	edges := make([][2]int, 0, g.EdgeCount())
	for _, r := range g.Relations() {
		edges = append(edges, [2]int{index[r.A], index[r.B]})
	}

	k := math.Sqrt(cfg.Width * cfg.Height / float64(n))
	t0 := cfg.Width / 10
	center := Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	disp := make([]Point, n)

	workers := min(runtime.GOMAXPROCS(0), n)
	chunk := (n + workers - 1) / workers

	for iter := range cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eg := new(errgroup.Group)
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			eg.Go(func() error {
				repel(pos, disp, lo, hi, k)
				return nil
			})
		}
		_ = eg.Wait()

		for _, e := range edges {
			a, b := e[0], e[1]
			dx := pos[a].X - pos[b].X
			dy := pos[a].Y - pos[b].Y
			d := math.Max(math.Hypot(dx, dy), minDistance)
			f := d * d / k
			fx, fy := dx/d*f, dy/d*f
			disp[a].X -= fx
			disp[a].Y -= fy
			disp[b].X += fx
			disp[b].Y += fy
		}

		temp := t0 * (1 - float64(iter)/float64(cfg.Iterations))
		for i := range pos {
			disp[i].X += cfg.Gravity * (center.X - pos[i].X)
			disp[i].Y += cfg.Gravity * (center.Y - pos[i].Y)

			mag := math.Hypot(disp[i].X, disp[i].Y)
			if mag > 0 {
				step := math.Min(mag, temp)
				pos[i].X += disp[i].X / mag * step
				pos[i].Y += disp[i].Y / mag * step
			}
		}
	}

	out := make(Positions, n)
	for i, id := range ids {
		out[id] = pos[i]
	}
	return fit(out, cfg), nil
}

// repel resets disp[lo:hi] and accumulates the repulsion on each node in
// that range from every other node.
func repel(pos, disp []Point, lo, hi int, k float64) {
	k2 := k * k
	for i := lo; i < hi; i++ {
		var fx, fy float64
		for j := range pos {
			if i == j {
				continue
			}
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			d := math.Hypot(dx, dy)
			if d < minDistance {
				// Coincident nodes: push apart along a direction derived
				// from the index pair so the result stays deterministic.
				a := float64(i*31+j) * 0.618
				dx, dy, d = math.Cos(a)*minDistance, math.Sin(a)*minDistance, minDistance
			}
			f := k2 / d
			fx += dx / d * f
			fy += dy / d * f
		}
		disp[i] = Point{X: fx, Y: fy}
	}
}
