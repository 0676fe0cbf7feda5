package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/topicnet/pkg/attr"
	"github.com/matzehuels/topicnet/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		Width:  800,
		Height: 600,
		Nodes: []graph.Node{
			{ID: "i1", Label: "Sciences Po", Topic: "3", Color: "#e4e1c0", Size: 15, X: 100, Y: 50},
			{ID: "s9", Topic: "7", Color: "#123456", Size: 2, X: 300, Y: 500},
			{ID: "s4", Topic: "7", Color: "#123456", Size: 2, X: 400, Y: 300, Hidden: true},
		},
		Edges: []graph.Edge{
			{From: "i1", To: "s9"},
			{From: "i1", To: "s4"},
		},
		Legend: []attr.LegendRow{
			{TopicID: "3", Name: "Law & Politics", Color: "#e4e1c0"},
			{TopicID: "7", Name: "Elections", Color: "#123456"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"i1" [pos="100.00,550.00!"`,
		`"s9" [pos="300.00,100.00!"`,
		`fillcolor="#e4e1c0"`,
		`"i1" -- "s9";`,
		`color="#cccccc"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTOmitsHiddenNodes(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})

	if strings.Contains(dot, `"s4"`) {
		t.Errorf("hidden node or its edges rendered:\n%s", dot)
	}
	if strings.Count(dot, " -- ") != 1 {
		t.Errorf("want exactly one edge:\n%s", dot)
	}
}

func TestToDOTSizes(t *testing.T) {
	dot := ToDOT(sampleLayout(), Options{})
	// radius 15 -> diameter 30pt -> 0.4167in
	if !strings.Contains(dot, "width=0.4167") {
		t.Errorf("large node width missing:\n%s", dot)
	}
	if !strings.Contains(dot, "width=0.0556") {
		t.Errorf("small node width missing:\n%s", dot)
	}
}

func TestToDOTOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name:    "Defaults",
			opts:    Options{},
			notWant: []string{"xlabel=", "__legend__"},
		},
		{
			name: "Labels",
			opts: Options{Labels: true},
			want: []string{`xlabel="Sciences Po"`, `xlabel="s9"`},
		},
		{
			name: "Legend",
			opts: Options{Legend: true},
			want: []string{"__legend__", `pos="824.00,600.00!"`, "Law &amp; Politics", `BGCOLOR="#123456"`},
		},
		{
			name: "EdgeColor",
			opts: Options{EdgeColor: "#ff0000"},
			want: []string{`color="#ff0000"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(sampleLayout(), tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("unexpected %q", w)
				}
			}
		})
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.Layout{Width: 800, Height: 600}, Options{Legend: true})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("malformed empty DOT:\n%s", dot)
	}
	if strings.Contains(dot, "__legend__") {
		t.Error("empty legend should not be drawn")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleLayout(), Options{Legend: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	if _, err := Render(context.Background(), "graph G {}", "gif"); err == nil {
		t.Error("Render() should reject unknown formats")
	}
}
