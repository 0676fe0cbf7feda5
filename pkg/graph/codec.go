package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

// Graph and layout files share one encoding: two-space indented JSON with a
// trailing newline, so files diff cleanly and match what the server sends.

// =============================================================================
// Graph Files
// =============================================================================

// MarshalGraph encodes a dataset in the graph wire format.
func MarshalGraph(ds topicgraph.Dataset) ([]byte, error) {
	return marshal(FromDataset(ds))
}

// WriteGraph encodes a dataset to w.
func WriteGraph(ds topicgraph.Dataset, w io.Writer) error {
	return encode(w, FromDataset(ds))
}

// WriteGraphFile replaces path with the encoded dataset. A failed write
// leaves any previous file in place.
func WriteGraphFile(ds topicgraph.Dataset, path string) error {
	data, err := MarshalGraph(ds)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// UnmarshalGraph decodes the wire format without rebuilding the dataset.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return g, nil
}

// ReadGraph decodes a graph from r and rebuilds the dataset. Edges that
// name a node missing from the node list are an error.
func ReadGraph(r io.Reader) (topicgraph.Dataset, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return topicgraph.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return ToDataset(g)
}

// ReadGraphFile reads and rebuilds the dataset stored at path.
func ReadGraphFile(path string) (topicgraph.Dataset, error) {
	data, err := readFile(path)
	if err != nil {
		return topicgraph.Dataset{}, err
	}
	return ReadGraph(bytes.NewReader(data))
}

// =============================================================================
// Layout Files
// =============================================================================

// MarshalLayout encodes a layout in the wire format.
func MarshalLayout(l Layout) ([]byte, error) {
	return marshal(l)
}

// UnmarshalLayout decodes a layout and checks its frame. A graph file has
// no frame, which is reported as such rather than as an empty layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	switch {
	case l.Width == 0 && l.Height == 0 && len(l.Nodes) > 0:
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "not a layout: no frame (graph files need 'layout' first)")
	case l.Width <= 0 || l.Height <= 0:
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout frame must be positive, got %gx%g", l.Width, l.Height)
	}
	return l, nil
}

// WriteLayoutFile replaces path with the encoded layout.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// ReadLayoutFile reads and validates the layout stored at path.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := readFile(path)
	if err != nil {
		return Layout{}, err
	}
	return UnmarshalLayout(data)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceUnavailable, err, "read %s", path)
	}
	return data, nil
}

// writeFile writes through a temporary sibling and renames it over path.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
