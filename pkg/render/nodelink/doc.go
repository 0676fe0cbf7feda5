// Package nodelink renders topic networks as node-link diagrams.
//
// # Overview
//
// Nodes appear as filled circles colored by topic and sized by degree,
// placed exactly where pkg/layout put them. Graphviz is only used as a
// drawing backend: every node is pinned (pos="x,y!") and the neato engine
// is selected so no layout is recomputed.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Legend: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # Visibility
//
// Nodes flagged hidden in the layout are left out of the DOT source along
// with every incident edge, so the rendered view matches the current filter
// state.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
