package graph

import (
	"errors"
	"slices"
	"testing"
)

func newTestGraph(t *testing.T, n int, edges ...Edge) *Graph {
	t.Helper()
	g := New(nil)
	for i := range n {
		if err := g.AddNode(Node{ID: i}); err != nil {
			t.Fatalf("AddNode(%d): %v", i, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(nil)

	if err := g.AddNode(Node{ID: 0, Label: "A"}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddNode(Node{ID: 0, Label: "B"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(duplicate) error = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.AddNode(Node{ID: -1}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(-1) error = %v, want ErrInvalidNodeID", err)
	}

	n, ok := g.Node(0)
	if !ok {
		t.Fatal("Node(0) not found")
	}
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
	if n.Label != "A" {
		t.Errorf("Label = %q, want A", n.Label)
	}
}

func TestAddEdge(t *testing.T) {
	g := newTestGraph(t, 2)

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"valid", Edge{From: 0, To: 1}, nil},
		{"duplicate is ignored", Edge{From: 0, To: 1}, nil},
		{"self loop", Edge{From: 1, To: 1}, nil},
		{"unknown source", Edge{From: 5, To: 1}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: 0, To: 5}, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) error = %v, want %v", tt.edge, err, tt.want)
			}
		})
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestOrdering(t *testing.T) {
	g := New(nil)
	for _, id := range []int{3, 0, 2, 1} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: 3, To: 2})
	_ = g.AddEdge(Edge{From: 0, To: 2})
	_ = g.AddEdge(Edge{From: 1, To: 0})

	var ids []int
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if !slices.Equal(ids, []int{0, 1, 2, 3}) {
		t.Errorf("Nodes() order = %v", ids)
	}

	want := []Edge{{From: 1, To: 0}, {From: 0, To: 2}, {From: 3, To: 2}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := g.Parents(2); !slices.Equal(got, []int{0, 3}) {
		t.Errorf("Parents(2) = %v, want [0 3]", got)
	}
}

func TestSourcesSinksRoots(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: 0, Root: true})
	_ = g.AddNode(Node{ID: 1})
	_ = g.AddNode(Node{ID: 2})
	_ = g.AddEdge(Edge{From: 0, To: 1})

	if got := len(g.Sources()); got != 2 {
		t.Errorf("len(Sources()) = %d, want 2", got)
	}
	if got := len(g.Sinks()); got != 2 {
		t.Errorf("len(Sinks()) = %d, want 2", got)
	}
	roots := g.Roots()
	if len(roots) != 1 || roots[0].ID != 0 {
		t.Errorf("Roots() = %v, want [0]", roots)
	}
	if g.InDegree(1) != 1 || g.OutDegree(0) != 1 {
		t.Errorf("degrees: in(1)=%d out(0)=%d", g.InDegree(1), g.OutDegree(0))
	}
}

func TestValidate(t *testing.T) {
	g := newTestGraph(t, 2, Edge{From: 0, To: 1})
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// Corrupt the edge set directly to simulate a dangling endpoint.
	g.edges[Edge{From: 0, To: 9}] = struct{}{}
	if err := g.Validate(); !errors.Is(err, ErrInvalidEdgeEndpoint) {
		t.Errorf("Validate() error = %v, want ErrInvalidEdgeEndpoint", err)
	}
}

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []Edge
		want  []int
	}{
		{"empty", 0, nil, nil},
		{"chain", 3, []Edge{{0, 1}, {1, 2}}, nil},
		{"diamond", 4, []Edge{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, nil},
		{"two cycle", 2, []Edge{{0, 1}, {1, 0}}, []int{0, 1}},
		{"self loop", 1, []Edge{{0, 0}}, []int{0}},
		{"cycle behind tail", 4, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 1}}, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t, tt.n, tt.edges...)
			if got := g.FindCycle(); !slices.Equal(got, tt.want) {
				t.Errorf("FindCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}
