package graph

import (
	"cmp"
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// negative. Node IDs are non-negative integers assigned at admission.
	ErrInvalidNodeID = errors.New("node ID must not be negative")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Node metadata carries the descriptive document fields (date, description,
// tags, source). Metadata maps are never nil after AddNode.
type Metadata map[string]any

// Node is a vertex of the document graph.
type Node struct {
	ID    int      // Node identifier, unique within the graph
	Label string   // Display label (the document title)
	Root  bool     // Decorated as a root: the focal document, or a document with no prerequisites
	Meta  Metadata // Descriptive metadata (never nil after AddNode)
}

// Edge is a directed prerequisite relation: From is a dependency of To.
type Edge struct {
	From int
	To   int
}

// Graph is a labeled directed graph of documents.
//
// Unlike a DAG, Graph accepts cycles: documents may reference each other
// and no cycle-breaking is applied. Use [Graph.FindCycle] to report them.
// Parallel edges are collapsed, matching the strict digraph output.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[int]*Node
	edges    map[Edge]struct{}
	outgoing map[int][]int // nodeID -> dependent IDs
	incoming map[int][]int // nodeID -> prerequisite IDs
	meta     Metadata
}

// New creates an empty Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[int]*Node),
		edges:    make(map[Edge]struct{}),
		outgoing: make(map[int][]int),
		incoming: make(map[int][]int),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the ID is negative, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID < 0 {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Adding an edge that already exists is a no-op.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if _, dup := g.edges[e]; dup {
		return nil
	}
	g.edges[e] = struct{}{}
	g.outgoing[e.From] = insertSorted(g.outgoing[e.From], e.To)
	g.incoming[e.To] = insertSorted(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by ID.
// The returned slice contains pointers to the actual node structs.
func (g *Graph) Nodes() []*Node {
	ids := slices.Sorted(maps.Keys(g.nodes))
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns all edges ordered by (To, From), which groups each node's
// prerequisites together.
func (g *Graph) Edges() []Edge {
	edges := slices.Collect(maps.Keys(g.edges))
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := cmp.Compare(a.To, b.To); c != 0 {
			return c
		}
		return cmp.Compare(a.From, b.From)
	})
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs of documents that depend on id, in ascending order.
// The returned slice should not be modified.
func (g *Graph) Children(id int) []int { return g.outgoing[id] }

// Parents returns the IDs of id's prerequisites, in ascending order.
// The returned slice should not be modified.
func (g *Graph) Parents(id int) []int { return g.incoming[id] }

// InDegree returns the number of prerequisites of the node.
func (g *Graph) InDegree(id int) int { return len(g.incoming[id]) }

// OutDegree returns the number of dependents of the node.
func (g *Graph) OutDegree(id int) int { return len(g.outgoing[id]) }

// Sources returns nodes with no incoming edges, ordered by ID.
// These are documents without prerequisites.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, n := range g.Nodes() {
		if len(g.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, ordered by ID.
// These are documents nothing else depends on.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, n := range g.Nodes() {
		if len(g.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Roots returns the nodes decorated as roots, ordered by ID.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.Nodes() {
		if n.Root {
			roots = append(roots, n)
		}
	}
	return roots
}

// Validate checks that every edge connects existing nodes.
// Returns ErrInvalidEdgeEndpoint otherwise. Cycles are not an error.
func (g *Graph) Validate() error {
	for e := range g.edges {
		_, okS := g.nodes[e.From]
		_, okD := g.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	return nil
}

// FindCycle returns the node IDs of one directed cycle, in edge order, or
// nil if the graph is acyclic. The search is deterministic: nodes and
// neighbors are visited in ascending ID order.
//
// Cycle detection runs in O(N+E) time using depth-first search with
// white/gray/black coloring.
func (g *Graph) FindCycle() []int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(g.nodes))
	var stack []int
	var cycle []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = slices.Clone(stack[start:])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}

func insertSorted(s []int, v int) []int {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}
	return slices.Insert(s, i, v)
}
