package docgraph

import (
	"errors"
	"slices"
	"testing"

	doctreeerrors "github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/metadata"
)

func parentTitles(ns *NodeSet, title string) []string {
	id, ok := ns.Lookup(title)
	if !ok {
		return nil
	}
	n, _ := ns.Node(id)
	var out []string
	for _, p := range n.Parents() {
		out = append(out, ns.Title(p))
	}
	slices.Sort(out)
	return out
}

func TestResolve(t *testing.T) {
	recs := []metadata.Record{
		rec("A"),
		rec("B", "A"),
		rec("C", "A", "B"),
	}
	ns := mustNodeSet(t, StoreOptions{}, recs...)

	got, err := Resolve(ns)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.Len() != 3 {
		t.Errorf("Len() = %d, want 3", got.Len())
	}
	if got.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got.EdgeCount())
	}
	cases := map[string][]string{
		"A": nil,
		"B": {"A"},
		"C": {"A", "B"},
	}
	for title, want := range cases {
		if p := parentTitles(got, title); !slices.Equal(p, want) {
			t.Errorf("parents(%s) = %v, want %v", title, p, want)
		}
	}
}

func TestResolveEdgeCountMatchesDependencies(t *testing.T) {
	recs := []metadata.Record{
		rec("a"),
		rec("b", "a"),
		rec("c", "a", "b"),
		rec("d", "c", "b", "a"),
		rec("e", "d"),
		rec("f"),
	}
	ns := mustNodeSet(t, StoreOptions{}, recs...)

	want := 0
	for _, n := range ns.Nodes() {
		want += len(ns.Record(n).Dependencies)
	}

	got, err := Resolve(ns)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.EdgeCount() != want {
		t.Errorf("EdgeCount() = %d, want %d", got.EdgeCount(), want)
	}
}

func TestResolveDoesNotModifyInput(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A"), rec("B", "A"))
	if _, err := Resolve(ns); err != nil {
		t.Fatal(err)
	}
	if ns.EdgeCount() != 0 {
		t.Errorf("input EdgeCount() = %d after Resolve, want 0", ns.EdgeCount())
	}
}

func TestResolveUnresolvedDependency(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A", "Ghost"))

	_, err := Resolve(ns)
	var ud *doctreeerrors.UnresolvedDependencyError
	if !errors.As(err, &ud) {
		t.Fatalf("Resolve() error = %v, want UnresolvedDependency", err)
	}
	if ud.From != "A" || ud.Dependency != "Ghost" {
		t.Errorf("got From=%q Dependency=%q, want A, Ghost", ud.From, ud.Dependency)
	}
}

func TestResolveFilterInducedUnresolved(t *testing.T) {
	ns := mustNodeSet(t,
		StoreOptions{Tags: []string{"x"}},
		metadata.NewRecord("A", []string{"B"}, []string{"x"}),
		metadata.NewRecord("B", nil, []string{"y"}),
	)

	_, err := Resolve(ns)
	var ud *doctreeerrors.UnresolvedDependencyError
	if !errors.As(err, &ud) {
		t.Fatalf("Resolve() error = %v, want UnresolvedDependency", err)
	}
	if ud.Dependency != "B" {
		t.Errorf("Dependency = %q, want B", ud.Dependency)
	}
}

func TestResolveCycle(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A", "B"), rec("B", "A"))

	got, err := Resolve(ns)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got.EdgeCount())
	}
}

func TestResolveSelfReference(t *testing.T) {
	ns := mustNodeSet(t, StoreOptions{}, rec("A", "A"))

	got, err := Resolve(ns)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p := parentTitles(got, "A"); !slices.Equal(p, []string{"A"}) {
		t.Errorf("parents(A) = %v, want [A]", p)
	}
}
