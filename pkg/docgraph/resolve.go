package docgraph

import (
	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// Resolve builds the full dependency graph over ns.
//
// Every dependency title of every node is looked up in ns's title index and
// the matching node becomes a parent. A title that names no node in ns
// aborts resolution with an UnresolvedDependency error; there is no partial
// result. On success the number of parent relations equals the total size
// of the retained records' dependency sets.
//
// ns itself is left untouched.
func Resolve(ns *NodeSet) (*NodeSet, error) {
	out := ns.derive()
	for _, n := range ns.Nodes() {
		node := out.admit(n.ID)
		rec := ns.Record(n)
		for _, dep := range rec.Dependencies {
			id, ok := ns.Lookup(dep)
			if !ok {
				return nil, doctreeerrors.UnresolvedDependency(rec.Title, dep)
			}
			node.addParent(id)
		}
	}
	return out, nil
}
