package docgraph

import (
	"testing"

	"github.com/matzehuels/doctree/pkg/graph"
	"github.com/matzehuels/doctree/pkg/metadata"
)

func TestToGraphFullTree(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A"), rec("B", "A"), rec("C", "A", "B"))
	ns, err := Resolve(ns)
	if err != nil {
		t.Fatal(err)
	}

	g, err := ToGraph(ns)
	if err != nil {
		t.Fatalf("ToGraph() error = %v", err)
	}

	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Fatalf("got %d nodes, %d edges, want 3, 3", g.NodeCount(), g.EdgeCount())
	}
	want := []graph.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 1, To: 2}}
	for i, e := range g.Edges() {
		if e != want[i] {
			t.Errorf("edge %d = %v, want %v", i, e, want[i])
		}
	}

	roots := g.Roots()
	if len(roots) != 1 || roots[0].Label != "A" {
		t.Errorf("Roots() = %v, want [A]", roots)
	}
	if _, ok := g.Meta()["focus"]; ok {
		t.Error("full graph carries a focus")
	}
}

func TestToGraphNeighborhoodRoot(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{Focus: "B"}, rec("A"), rec("B", "A"), rec("C", "A", "B"))
	ns, err := Extract(ns, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	g, err := ToGraph(ns)
	if err != nil {
		t.Fatalf("ToGraph() error = %v", err)
	}

	focal, ok := g.Node(0)
	if !ok || focal.Label != "B" || !focal.Root {
		t.Errorf("Node(0) = %+v, want root B", focal)
	}
	a, ok := g.Node(1)
	if !ok || a.Label != "A" || a.Root {
		t.Errorf("Node(1) = %+v, want non-root A", a)
	}
	if got := g.Meta()["focus"]; got != "B" {
		t.Errorf("Meta()[focus] = %v, want B", got)
	}
}

func TestToGraphCarriesMetadata(t *testing.T) {
	r := metadata.Record{
		Title:       "Blow-ups",
		Date:        "2023-02-03",
		Description: "Resolving singularities",
		Tags:        []string{"algebraic-geometry"},
		Source:      "ag/blowups.md",
	}
	ns := mustNodeSet(t, StoreOptions{}, r)
	ns, err := Resolve(ns)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ToGraph(ns)
	if err != nil {
		t.Fatal(err)
	}

	n, _ := g.Node(0)
	if n.Meta["date"] != "2023-02-03" {
		t.Errorf("date = %v", n.Meta["date"])
	}
	if n.Meta["source"] != "ag/blowups.md" {
		t.Errorf("source = %v", n.Meta["source"])
	}
	if _, ok := n.Meta["dependencies"]; ok {
		t.Error("dependencies leaked into node metadata")
	}
}

func TestToGraphKeepsCycles(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A", "B"), rec("B", "A"))
	ns, err := Resolve(ns)
	if err != nil {
		t.Fatal(err)
	}
	g, err := ToGraph(ns)
	if err != nil {
		t.Fatalf("ToGraph() error = %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if len(g.Roots()) != 0 {
		t.Errorf("Roots() = %v, want none in a pure cycle", g.Roots())
	}
	if g.FindCycle() == nil {
		t.Error("FindCycle() = nil, want the A/B cycle")
	}
}
