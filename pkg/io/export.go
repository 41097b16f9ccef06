package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/doctree/pkg/graph"
)

type document struct {
	Meta  graph.Metadata `json:"meta,omitempty"`
	Nodes []node         `json:"nodes"`
	Edges []edge         `json:"edges"`
}

type node struct {
	ID    int            `json:"id"`
	Label string         `json:"label"`
	Root  bool           `json:"root,omitempty"`
	Meta  graph.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteJSON encodes a graph as indented JSON and writes it to w.
// Nodes are written in ID order and edges in the graph's edge order, so the
// output is stable for a given graph. It can be read back with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	nodes, edges := g.Nodes(), g.Edges()
	out := document{
		Meta:  g.Meta(),
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, n := range nodes {
		out.Nodes[i] = node{ID: n.ID, Label: n.Label, Root: n.Root, Meta: n.Meta}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return WriteJSON(g, f)
}
