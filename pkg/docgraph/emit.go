package docgraph

import (
	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/graph"
)

// ToGraph converts a resolved NodeSet into the emitted graph.
//
// Each node becomes a graph node labeled with its title and carrying the
// record's descriptive fields as metadata. Each parent relation p of n
// becomes an edge p → n. A node is decorated as a root when it is the focal
// node, or, in full-graph mode, when it has no prerequisites.
//
// An edge whose endpoint is missing from ns is reported as an internal
// error; [Resolve] and [Extract] never produce one.
func ToGraph(ns *NodeSet) (*graph.Graph, error) {
	focal, hasFocal := ns.Focal()

	meta := graph.Metadata{}
	if hasFocal {
		meta["focus"] = ns.Title(focal)
	}
	g := graph.New(meta)

	for _, n := range ns.Nodes() {
		rec := ns.Record(n)
		root := n.ParentCount() == 0
		if hasFocal {
			root = n.ID == focal
		}
		if err := g.AddNode(graph.Node{
			ID:    n.ID,
			Label: rec.Title,
			Root:  root,
			Meta:  rec.Meta(),
		}); err != nil {
			return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInternal, err, "node %d", n.ID)
		}
	}

	for _, n := range ns.Nodes() {
		for _, p := range n.Parents() {
			if err := g.AddEdge(graph.Edge{From: p, To: n.ID}); err != nil {
				return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInternal, err, "edge %d -> %d", p, n.ID)
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, doctreeerrors.Wrap(doctreeerrors.ErrCodeInternal, err, "validate graph")
	}
	return g, nil
}
