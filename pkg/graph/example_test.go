package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

func ExampleWriteGraph() {
	b := topicgraph.NewBuilder()
	b.Add(topicgraph.Record{
		From: topicgraph.EntityDescriptor{Key: "i1", TopicID: "3", TopicName: "Law", Label: "Sciences Po"},
		To:   topicgraph.EntityDescriptor{Key: "s9", TopicID: "7", TopicName: "Elections"},
	})

	var buf bytes.Buffer
	if err := graph.WriteGraph(b.Dataset(), &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "i1",
	//       "label": "Sciences Po",
	//       "topic": "3"
	//     },
	//     {
	//       "id": "s9",
	//       "topic": "7"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "i1",
	//       "to": "s9"
	//     }
	//   ],
	//   "topics": [
	//     {
	//       "id": "3",
	//       "name": "Law"
	//     },
	//     {
	//       "id": "7",
	//       "name": "Elections"
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"nodes": [
			{"id": "i1", "topic": "3"},
			{"id": "s9", "topic": "7"}
		],
		"edges": [
			{"from": "i1", "to": "s9"}
		]
	}`

	ds, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", ds.Graph.NodeCount())
	fmt.Println("Edges:", ds.Graph.EdgeCount())
	fmt.Println("Neighbors of i1:", ds.Graph.Neighbors("i1"))
	// Output:
	// Nodes: 2
	// Edges: 1
	// Neighbors of i1: [s9]
}
