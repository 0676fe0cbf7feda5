package attr

import "github.com/matzehuels/topicnet/pkg/topicgraph"

// LegendRow is one entry of the topic legend.
type LegendRow struct {
	TopicID string `json:"topic_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Legend lists every registered topic in sorted order with its swatch color.
func Legend(reg *topicgraph.Registry) []LegendRow {
	topics := reg.Sorted()
	rows := make([]LegendRow, len(topics))
	for i, t := range topics {
		rows[i] = LegendRow{TopicID: t.ID, Name: t.Name, Color: ColorOf(t.ID)}
	}
	return rows
}
