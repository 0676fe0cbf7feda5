// Package topicgraph provides the in-memory model behind topicnet: an
// undirected graph of keyed entities and a registry of topic names.
//
// # Overview
//
// Each input row names two entities and the topic each one belongs to.
// [Builder] folds rows into a [Graph] and a [Registry]:
//
//   - one entity per distinct key; the first row that mentions a key fixes
//     its topic and label
//   - one relation per distinct unordered pair; repeats and self-pairs are
//     no-ops
//   - one topic name per topic ID; the first name wins
//
// Degree is the number of distinct neighbors, never the number of rows.
//
// # Basic Usage
//
//	b := topicgraph.NewBuilder()
//	b.Add(topicgraph.Record{
//	    From: topicgraph.EntityDescriptor{Key: "i1", TopicID: "3", TopicName: "Law", Label: "Sciences Po"},
//	    To:   topicgraph.EntityDescriptor{Key: "s9", TopicID: "7", TopicName: "Elections", Label: "Voting"},
//	})
//	ds := b.Dataset()
//	ds.Graph.Degree("i1")    // 1
//	ds.Topics.Sorted()       // [{3 Law} {7 Elections}]
//
// # Visibility
//
// Every entity carries a Visible flag that starts true. After ingestion it
// is the only mutable field and is driven by package filter.
//
// # Concurrency
//
// Graph and Registry are not safe for concurrent mutation. Callers that
// share a graph across goroutines must serialize access.
package topicgraph
