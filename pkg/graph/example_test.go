package graph_test

import (
	"fmt"

	"github.com/matzehuels/doctree/pkg/graph"
)

func ExampleGraph_basic() {
	// Varieties is a prerequisite of Tangent cones and Blow-ups.
	g := graph.New(nil)
	_ = g.AddNode(graph.Node{ID: 0, Label: "Varieties", Root: true})
	_ = g.AddNode(graph.Node{ID: 1, Label: "Tangent cones"})
	_ = g.AddNode(graph.Node{ID: 2, Label: "Blow-ups"})
	_ = g.AddEdge(graph.Edge{From: 0, To: 1})
	_ = g.AddEdge(graph.Edge{From: 0, To: 2})
	_ = g.AddEdge(graph.Edge{From: 1, To: 2})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Prerequisites of Blow-ups:", g.Parents(2))
	fmt.Println("Dependents of Varieties:", g.Children(0))
	// Output:
	// Nodes: 3
	// Edges: 3
	// Prerequisites of Blow-ups: [0 1]
	// Dependents of Varieties: [1 2]
}

func ExampleGraph_FindCycle() {
	g := graph.New(nil)
	_ = g.AddNode(graph.Node{ID: 0, Label: "A"})
	_ = g.AddNode(graph.Node{ID: 1, Label: "B"})
	_ = g.AddEdge(graph.Edge{From: 0, To: 1})
	_ = g.AddEdge(graph.Edge{From: 1, To: 0})

	fmt.Println("Cycle:", g.FindCycle())
	// Output:
	// Cycle: [0 1]
}
