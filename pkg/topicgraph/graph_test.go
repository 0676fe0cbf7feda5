package topicgraph

import (
	"errors"
	"slices"
	"testing"
)

func TestUpsertEntity(t *testing.T) {
	g := New()

	if !g.UpsertEntity("a", "1", "first") {
		t.Fatal("first upsert should create the entity")
	}
	if g.UpsertEntity("a", "2", "second") {
		t.Error("second upsert should not create a duplicate")
	}
	if g.UpsertEntity("", "1", "empty") {
		t.Error("empty ID should be rejected")
	}

	e, ok := g.Entity("a")
	if !ok {
		t.Fatal("entity a not found")
	}
	if e.Label != "first" || e.TopicID != "1" {
		t.Errorf("entity = %+v, want first-seen label and topic", e)
	}
	if !e.Visible {
		t.Error("new entities should be visible")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}

func TestUpsertRelation(t *testing.T) {
	tests := []struct {
		name      string
		a, b      string
		wantAdded bool
		wantErr   error
	}{
		{"new pair", "a", "b", true, nil},
		{"same pair", "a", "b", false, nil},
		{"reversed pair", "b", "a", false, nil},
		{"self pair", "a", "a", false, nil},
		{"unknown target", "a", "zzz", false, ErrUnknownEntity},
		{"unknown source", "zzz", "a", false, ErrUnknownEntity},
		{"empty id", "", "a", false, ErrInvalidEntityID},
		{"second pair", "a", "c", true, nil},
	}

	g := New()
	g.UpsertEntity("a", "1", "A")
	g.UpsertEntity("b", "2", "B")
	g.UpsertEntity("c", "2", "C")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := g.UpsertRelation(tt.a, tt.b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if added != tt.wantAdded {
				t.Errorf("added = %v, want %v", added, tt.wantAdded)
			}
		})
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if g.Degree("a") != 2 {
		t.Errorf("Degree(a) = %d, want 2", g.Degree("a"))
	}
	if !g.AreNeighbors("b", "a") {
		t.Error("relations should be undirected")
	}
}

func TestNeighbors(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.UpsertEntity(id, "1", id)
	}
	g.UpsertRelation("a", "c")
	g.UpsertRelation("b", "a")

	if got := g.Neighbors("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Neighbors(a) = %v, want [b c]", got)
	}
	if got := g.Neighbors("d"); len(got) != 0 {
		t.Errorf("Neighbors(d) = %v, want empty", got)
	}
	if got := g.Neighbors("missing"); got != nil {
		t.Errorf("Neighbors(missing) = %v, want nil", got)
	}
}

func TestDegreeRange(t *testing.T) {
	g := New()
	if _, _, ok := g.DegreeRange(); ok {
		t.Error("empty graph should report ok=false")
	}

	g.UpsertEntity("a", "1", "")
	g.UpsertEntity("b", "1", "")
	g.UpsertEntity("c", "1", "")
	g.UpsertEntity("lonely", "1", "")
	g.UpsertRelation("a", "b")
	g.UpsertRelation("a", "c")

	lo, hi, ok := g.DegreeRange()
	if !ok || lo != 0 || hi != 2 {
		t.Errorf("DegreeRange = (%d, %d, %v), want (0, 2, true)", lo, hi, ok)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "a", "m"} {
		g.UpsertEntity(id, "1", "")
	}
	if got := g.IDs(); !slices.Equal(got, []string{"z", "a", "m"}) {
		t.Errorf("IDs = %v, want insertion order", got)
	}

	entities := g.Entities()
	entities[0].Label = "mutated"
	if e, _ := g.Entity("z"); e.Label == "mutated" {
		t.Error("Entities should return copies")
	}
}

func TestSetVisibleAndAppearance(t *testing.T) {
	g := New()
	g.UpsertEntity("a", "1", "")
	g.UpsertEntity("b", "1", "")

	g.SetVisible("a", false)
	g.SetVisible("missing", false)
	g.SetAppearance("b", "#123456", 7.5)

	if g.VisibleCount() != 1 {
		t.Errorf("VisibleCount = %d, want 1", g.VisibleCount())
	}
	b, _ := g.Entity("b")
	if b.Color != "#123456" || b.Size != 7.5 {
		t.Errorf("appearance = (%s, %v)", b.Color, b.Size)
	}
}

func TestRelationOther(t *testing.T) {
	r := Relation{A: "x", B: "y"}
	if r.Other("x") != "y" || r.Other("y") != "x" {
		t.Errorf("Other returned wrong endpoint for %+v", r)
	}
}
