package topicgraph

import (
	"testing"
)

func rec(from, fromTopic, to, toTopic string) Record {
	return Record{
		From: EntityDescriptor{Key: from, TopicID: fromTopic, TopicName: "t" + fromTopic, Label: from},
		To:   EntityDescriptor{Key: to, TopicID: toTopic, TopicName: "t" + toTopic, Label: to},
	}
}

func TestBuilderCounts(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantNodes int
		wantEdges int
	}{
		{
			name:      "Empty",
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:      "Single",
			records:   []Record{rec("a", "1", "b", "2")},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "DuplicateRows",
			records: []Record{
				rec("a", "1", "b", "2"),
				rec("a", "1", "b", "2"),
				rec("b", "2", "a", "1"),
			},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "SharedKeyAcrossColumns",
			records: []Record{
				rec("a", "1", "b", "2"),
				rec("b", "2", "c", "3"),
				rec("c", "3", "a", "1"),
			},
			wantNodes: 3,
			wantEdges: 3,
		},
		{
			name:      "SelfLoop",
			records:   []Record{rec("a", "1", "a", "1")},
			wantNodes: 1,
			wantEdges: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.AddAll(tt.records)
			ds := b.Dataset()

			if got := ds.Graph.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := ds.Graph.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestBuilderFirstSeenAttributes(t *testing.T) {
	b := NewBuilder()
	b.Add(Record{
		From: EntityDescriptor{Key: "a", TopicID: "1", TopicName: "One", Label: "first"},
		To:   EntityDescriptor{Key: "b", TopicID: "2", TopicName: "Two", Label: "B"},
	})
	b.Add(Record{
		From: EntityDescriptor{Key: "a", TopicID: "9", TopicName: "Nine", Label: "second"},
		To:   EntityDescriptor{Key: "c", TopicID: "2", TopicName: "Renamed", Label: "C"},
	})
	ds := b.Dataset()

	a, _ := ds.Graph.Entity("a")
	if a.Label != "first" || a.TopicID != "1" {
		t.Errorf("entity a = %+v, want first-seen attributes", a)
	}
	if ds.Graph.Degree("a") != 2 {
		t.Errorf("Degree(a) = %d, want 2: later rows must still add edges", ds.Graph.Degree("a"))
	}
	if name, _ := ds.Topics.Name("2"); name != "Two" {
		t.Errorf("topic 2 = %q, want Two", name)
	}
	if name, _ := ds.Topics.Name("9"); name != "Nine" {
		t.Errorf("topic 9 = %q, want Nine", name)
	}
}

func TestBuilderRegistersToTopicFirst(t *testing.T) {
	b := NewBuilder()
	b.Add(Record{
		From: EntityDescriptor{Key: "a", TopicID: "5", TopicName: "from-name"},
		To:   EntityDescriptor{Key: "b", TopicID: "5", TopicName: "to-name"},
	})
	if name, _ := b.Dataset().Topics.Name("5"); name != "to-name" {
		t.Errorf("topic 5 = %q, want to-name", name)
	}
}
