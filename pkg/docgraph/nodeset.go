package docgraph

import (
	"maps"
	"slices"

	"github.com/matzehuels/doctree/pkg/metadata"
)

// Node is a document admitted into the working graph.
//
// Record indexes the owning NodeSet's arena of immutable metadata records.
// Parents holds the IDs of the node's resolved prerequisites; it is filled
// in by [Resolve] or [Extract] and never changes afterwards.
type Node struct {
	ID     int
	Record int

	parents map[int]struct{}
}

// Parents returns the IDs of the node's prerequisites in ascending order.
func (n *Node) Parents() []int {
	return slices.Sorted(maps.Keys(n.parents))
}

// ParentCount returns the number of resolved prerequisites.
func (n *Node) ParentCount() int { return len(n.parents) }

func (n *Node) addParent(id int) {
	if n.parents == nil {
		n.parents = make(map[int]struct{})
	}
	n.parents[id] = struct{}{}
}

// NodeSet is the working set of admitted documents.
//
// Records live in an arena indexed by admission order; a node's ID equals
// its arena index, so IDs are contiguous from 0 at admission. When a focal
// document was requested it was admitted first and has ID 0.
//
// A NodeSet produced by [Extract] holds a subset of the arena's nodes but
// keeps their original IDs.
//
// A NodeSet is owned by one pipeline stage at a time. [Resolve] and
// [Extract] do not modify their input; they return a new NodeSet that
// shares the read-only arena.
type NodeSet struct {
	records []metadata.Record
	titles  map[string]int
	nodes   map[int]*Node
	focal   bool
}

func newNodeSet(records []metadata.Record, focal bool) *NodeSet {
	ns := &NodeSet{
		records: records,
		titles:  make(map[string]int, len(records)),
		nodes:   make(map[int]*Node, len(records)),
		focal:   focal,
	}
	for i, r := range records {
		ns.titles[r.Title] = i
		ns.nodes[i] = &Node{ID: i, Record: i}
	}
	return ns
}

// derive returns an empty NodeSet sharing ns's arena and title index.
func (ns *NodeSet) derive() *NodeSet {
	return &NodeSet{
		records: ns.records,
		titles:  ns.titles,
		nodes:   make(map[int]*Node),
		focal:   ns.focal,
	}
}

// admit returns the node for id in ns, creating it if needed.
func (ns *NodeSet) admit(id int) *Node {
	n, ok := ns.nodes[id]
	if !ok {
		n = &Node{ID: id, Record: id}
		ns.nodes[id] = n
	}
	return n
}

// Len returns the number of nodes in the set.
func (ns *NodeSet) Len() int { return len(ns.nodes) }

// Focal returns the focal node ID (always 0) and true if a focal document
// was requested.
func (ns *NodeSet) Focal() (int, bool) {
	if !ns.focal {
		return 0, false
	}
	return 0, true
}

// Node returns the node with the given ID.
func (ns *NodeSet) Node(id int) (*Node, bool) {
	n, ok := ns.nodes[id]
	return n, ok
}

// Nodes returns the nodes ordered by ID.
func (ns *NodeSet) Nodes() []*Node {
	ids := slices.Sorted(maps.Keys(ns.nodes))
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = ns.nodes[id]
	}
	return out
}

// Record returns the metadata record of node n.
func (ns *NodeSet) Record(n *Node) metadata.Record {
	return ns.records[n.Record]
}

// Title returns the title of the node with the given ID, or "" if the ID is
// outside the arena.
func (ns *NodeSet) Title(id int) string {
	if id < 0 || id >= len(ns.records) {
		return ""
	}
	return ns.records[id].Title
}

// Lookup returns the ID of the node titled title. Titles of arena records
// whose node is not part of ns do not resolve.
func (ns *NodeSet) Lookup(title string) (int, bool) {
	id, ok := ns.titles[title]
	if !ok {
		return 0, false
	}
	if _, present := ns.nodes[id]; !present {
		return 0, false
	}
	return id, true
}

// EdgeCount returns the total number of parent relations in the set.
func (ns *NodeSet) EdgeCount() int {
	total := 0
	for _, n := range ns.nodes {
		total += len(n.parents)
	}
	return total
}
