package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/doctree/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": 0, "label": "Varieties", "root": true}, {"id": 1, "label": "Tangent cones"}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// ReadJSON returns an error if the JSON is malformed, a node ID is negative
// or repeated, or an edge references an unknown node. Errors are wrapped with
// the offending node or edge; use errors.Is with the graph package's
// sentinel errors to inspect them. Cycles are accepted.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New(data.Meta)
	for _, n := range data.Nodes {
		if err := g.AddNode(graph.Node{ID: n.ID, Label: n.Label, Root: n.Root, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(graph.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
