package filter

import "fmt"

// EventKind identifies one of the four selection gestures.
type EventKind int

const (
	// NodeClick isolates a node and its neighbors.
	NodeClick EventKind = iota + 1
	// NodeDoubleClick isolates every node sharing the clicked node's topic.
	NodeDoubleClick
	// StageClick is a click on the empty background; it clears the filter.
	StageClick
	// LegendRowClick isolates every node of the selected topic.
	LegendRowClick
)

var kindNames = map[EventKind]string{
	NodeClick:       "node_click",
	NodeDoubleClick: "node_double_click",
	StageClick:      "stage_click",
	LegendRowClick:  "legend_row_click",
}

func (k EventKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEventKind resolves the name returned by [EventKind.String].
func ParseEventKind(s string) (EventKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Event is a single user selection. NodeID is used by node events, TopicID by
// legend events; StageClick carries neither.
type Event struct {
	Kind    EventKind
	NodeID  string
	TopicID string
}

// String returns a canonical form such as "node_click:i1" or
// "stage_click", suitable for logs and cache keys.
func (e Event) String() string {
	switch e.Kind {
	case NodeClick, NodeDoubleClick:
		return e.Kind.String() + ":" + e.NodeID
	case LegendRowClick:
		return e.Kind.String() + ":" + e.TopicID
	default:
		return e.Kind.String()
	}
}

// Click returns a NodeClick event for id.
func Click(id string) Event { return Event{Kind: NodeClick, NodeID: id} }

// DoubleClick returns a NodeDoubleClick event for id.
func DoubleClick(id string) Event { return Event{Kind: NodeDoubleClick, NodeID: id} }

// Stage returns a StageClick event.
func Stage() Event { return Event{Kind: StageClick} }

// Legend returns a LegendRowClick event for topicID.
func Legend(topicID string) Event { return Event{Kind: LegendRowClick, TopicID: topicID} }

// State is the effective visibility state after the last event.
type State int

const (
	// Unfiltered means every entity is visible.
	Unfiltered State = iota
	// NeighborIsolated means only a node and its neighbors are visible.
	NeighborIsolated
	// TopicIsolated means only entities of one topic are visible.
	TopicIsolated
)

func (s State) String() string {
	switch s {
	case Unfiltered:
		return "unfiltered"
	case NeighborIsolated:
		return "neighbor_isolated"
	case TopicIsolated:
		return "topic_isolated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
