package nodelink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/topicnet/pkg/graph"
)

// pointsPerUnit converts sizes (pixel radii in the browser renderer) to
// Graphviz inches.
const pointsPerUnit = 72.0

// legendGap separates the legend from the right edge of the frame.
const legendGap = 24.0

// Options configures node-link diagram generation.
type Options struct {
	// Labels draws each node's display label next to its circle.
	Labels bool
	// Legend appends a topic legend to the right of the frame.
	Legend bool
	// EdgeColor overrides the default light gray edge color.
	EdgeColor string
}

// DefaultEdgeColor is used when Options.EdgeColor is empty.
const DefaultEdgeColor = "#cccccc"

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// computed position. Hidden nodes, and every edge touching one, are
// omitted. The frame's y axis points down; DOT's points up, so y is
// flipped.
func ToDOT(l graph.Layout, opts Options) string {
	edgeColor := opts.EdgeColor
	if edgeColor == "" {
		edgeColor = DefaultEdgeColor
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, penwidth=0, label=\"\", fontsize=10];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=0.5];\n", edgeColor)
	buf.WriteString("\n")

	hidden := make(map[string]bool)
	for _, n := range l.Nodes {
		if n.Hidden {
			hidden[n.ID] = true
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, l.Height, opts.Labels), ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if hidden[e.From] || hidden[e.To] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	if opts.Legend && len(l.Legend) > 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  \"__legend__\" [shape=plaintext, style=\"\", fixedsize=false, pos=\"%.2f,%.2f!\", label=%s];\n",
			l.Width+legendGap, l.Height, legendLabel(l))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node, height float64, labels bool) []string {
	width := 2 * n.Size / pointsPerUnit
	attrs := []string{
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X, height-n.Y),
		fmt.Sprintf("width=%.4f", width),
		fmt.Sprintf("fillcolor=%q", n.Color),
		fmt.Sprintf("tooltip=%q", n.DisplayLabel()),
	}
	if labels {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.DisplayLabel()))
	}
	return attrs
}

// legendLabel builds an HTML-like table label: one swatch and name per
// topic, in legend order.
func legendLabel(l graph.Layout) string {
	var b strings.Builder
	b.WriteString(`<<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="2">`)
	for _, row := range l.Legend {
		fmt.Fprintf(&b, `<TR><TD BGCOLOR="%s" WIDTH="12" HEIGHT="12" FIXEDSIZE="TRUE"></TD><TD ALIGN="LEFT">%s</TD></TR>`,
			row.Color, html.EscapeString(row.Name))
	}
	b.WriteString(`</TABLE>>`)
	return b.String()
}
