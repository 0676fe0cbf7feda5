// Package filter implements the visibility state machine behind node and
// legend selection.
//
// Four gestures are supported:
//
//	NodeClick(id)        visible = id and its neighbors (unknown id: reset)
//	NodeDoubleClick(id)  reset, then visible = entities with id's topic
//	StageClick           reset
//	LegendRowClick(t)    visible = entities with topic t
//
// Every transition is a full recomputation over all entities, so the
// result depends only on the event and the graph, never on earlier events.
// Presentation layers read [topicgraph.Entity.Visible] after each call.
package filter
