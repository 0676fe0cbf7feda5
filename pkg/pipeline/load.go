package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/topicnet/pkg/graph"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Loaded is the outcome of the load stage.
type Loaded struct {
	Dataset topicgraph.Dataset
	// Rows counts data rows read; Skipped counts malformed ones among them.
	Rows    int
	Skipped int
}

// loadedJSON is the cached form of [Loaded].
type loadedJSON struct {
	Rows    int         `json:"rows"`
	Skipped int         `json:"skipped"`
	Graph   graph.Graph `json:"graph"`
}

// Marshal serializes l for the dataset cache.
func (l *Loaded) Marshal() ([]byte, error) {
	return json.Marshal(loadedJSON{
		Rows:    l.Rows,
		Skipped: l.Skipped,
		Graph:   graph.FromDataset(l.Dataset),
	})
}

// UnmarshalLoaded restores a [Loaded] written by [Loaded.Marshal].
func UnmarshalLoaded(data []byte) (*Loaded, error) {
	var lj loadedJSON
	if err := json.Unmarshal(data, &lj); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	ds, err := graph.ToDataset(lj.Graph)
	if err != nil {
		return nil, err
	}
	return &Loaded{Dataset: ds, Rows: lj.Rows, Skipped: lj.Skipped}, nil
}
