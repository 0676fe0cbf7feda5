package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/render/nodelink"
)

func ExampleToDOT() {
	l := graph.Layout{
		Width:  200,
		Height: 100,
		Nodes: []graph.Node{
			{ID: "a", Topic: "1", Color: "#4c4b40", Size: 9, X: 20, Y: 20},
			{ID: "b", Topic: "2", Color: "#989680", Size: 9, X: 180, Y: 80},
			{ID: "c", Topic: "2", Color: "#989680", Size: 2, X: 100, Y: 50, Hidden: true},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}, {From: "a", To: "c"}},
	}

	dot := nodelink.ToDOT(l, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, " -- ") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "a" -- "b";
}
