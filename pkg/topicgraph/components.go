package topicgraph

// Components returns the connected components of g, each in insertion
// order, ordered by the position of their first entity.
func (g *Graph) Components() [][]string {
	seen := make(map[string]bool, len(g.order))
	var comps [][]string
	for _, start := range g.order {
		if seen[start] {
			continue
		}
		seen[start] = true
		members := map[string]bool{start: true}
		queue := []string{start}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for n := range g.adjacency[id] {
				if !seen[n] {
					seen[n] = true
					members[n] = true
					queue = append(queue, n)
				}
			}
		}
		comp := make([]string, 0, len(members))
		for _, id := range g.order {
			if members[id] {
				comp = append(comp, id)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// LargestComponent returns a new graph holding only the largest connected
// component of g. Ties go to the component seen first. Entity attributes and
// relation orientation are preserved.
func (g *Graph) LargestComponent() *Graph {
	var best []string
	for _, c := range g.Components() {
		if len(c) > len(best) {
			best = c
		}
	}
	keep := make(map[string]bool, len(best))
	for _, id := range best {
		keep[id] = true
	}

	out := New()
	for _, id := range best {
		e := g.entities[id]
		out.UpsertEntity(e.ID, e.TopicID, e.Label)
		out.SetAppearance(e.ID, e.Color, e.Size)
		out.SetVisible(e.ID, e.Visible)
	}
	for _, r := range g.relations {
		if keep[r.A] && keep[r.B] {
			_, _ = out.UpsertRelation(r.A, r.B)
		}
	}
	return out
}
