// Package attr derives presentation attributes for a topic graph.
//
// Colors are a pure function of the topic ID ([ColorOf]); sizes scale
// linearly with degree between the smallest and largest degree present
// ([SizeOf]). [Annotate] applies both to a graph after ingestion, and
// [Legend] produces the sorted topic legend.
package attr
