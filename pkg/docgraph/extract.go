package docgraph

import (
	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
)

// visit is a breadth-first queue entry.
type visit struct {
	id    int
	depth int
}

// Extract builds the neighborhood of the focal node: the documents reachable
// by following dependency references at most maxDepth hops.
//
// The traversal is breadth-first from (focal, 0). A dequeued node at a depth
// below maxDepth has its dependency titles resolved against ns (with the
// same UnresolvedDependency failure as [Resolve]), gains those parents, and
// enqueues each of them at depth+1. Only the dependency direction is
// followed; dependents of the focal node are never added.
//
// Every node is enqueued at most once. In a cyclic corpus a node reached
// again is not re-expanded, while the edge that reached it is still
// recorded on the node being expanded. Cycles are therefore finite and not
// an error.
//
// The result keeps ns's node IDs. Nodes at exactly maxDepth appear without
// the parents they would have had if expanded. ns itself is left untouched.
func Extract(ns *NodeSet, focal, maxDepth int) (*NodeSet, error) {
	if maxDepth < 0 {
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "depth must not be negative: %d", maxDepth)
	}
	if _, ok := ns.Node(focal); !ok {
		return nil, doctreeerrors.New(doctreeerrors.ErrCodeInvalidInput, "focal node %d is not in the node set", focal)
	}

	out := ns.derive()
	visited := map[int]bool{focal: true}
	queue := []visit{{id: focal}}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		node := out.admit(v.id)
		if v.depth >= maxDepth {
			continue
		}

		rec := ns.Record(node)
		for _, dep := range rec.Dependencies {
			id, ok := ns.Lookup(dep)
			if !ok {
				return nil, doctreeerrors.UnresolvedDependency(rec.Title, dep)
			}
			node.addParent(id)
			if !visited[id] {
				visited[id] = true
				queue = append(queue, visit{id: id, depth: v.depth + 1})
			}
		}
	}
	return out, nil
}

// Build runs the resolution stage that matches ns: [Extract] around the
// focal node when one was requested, [Resolve] over the whole set otherwise.
// maxDepth is ignored in full-graph mode.
func Build(ns *NodeSet, maxDepth int) (*NodeSet, error) {
	if focal, ok := ns.Focal(); ok {
		return Extract(ns, focal, maxDepth)
	}
	return Resolve(ns)
}
