// Package render provides output format handling for topic network views.
//
// # Overview
//
// The [nodelink] subpackage turns a positioned, annotated network into
// Graphviz DOT and renders it to SVG in-process. This package holds the
// format names shared by the CLI, the pipeline and the HTTP server, plus the
// generic SVG conversion used for raster and print output:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (librsvg), which must be on
// PATH. SVG output has no external requirements.
package render
