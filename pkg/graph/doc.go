// Package graph provides the JSON wire format for topic networks and their
// layouts.
//
// The package sits at the serialization boundary between the in-memory
// model and external consumers (files, API responses, caches, the browser
// renderer):
//
//   - [Graph]: nodes, edges and topics of a built dataset
//   - [Layout]: the same network annotated with color, size, position and
//     the current visibility of every node, plus the topic legend
//
// Use [FromDataset]/[ToDataset] and [NewLayout]/[Layout.Dataset] to convert
// between the wire types and pkg/topicgraph.
//
// # Graph Serialization
//
//	{
//	  "nodes": [{"id": "i1", "label": "Sciences Po", "topic": "3"}],
//	  "edges": [{"from": "i1", "to": "s9"}],
//	  "topics": [{"id": "3", "name": "Law"}]
//	}
//
// Common operations:
//
//	ds, _ := graph.ReadGraphFile("net.graph.json")  // File → Dataset
//	graph.WriteGraphFile(ds, "out.graph.json")      // Dataset → File
//	data, _ := graph.MarshalGraph(ds)               // Dataset → []byte
//
// # Files
//
// Write*File functions go through a temporary file in the target directory
// and rename it into place, so readers never see a half-written file. Read
// failures are RESOURCE_UNAVAILABLE and malformed content is INVALID_FORMAT
// (see pkg/errors).
package graph
