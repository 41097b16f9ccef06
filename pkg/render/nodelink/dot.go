package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/doctree/pkg/graph"
)

// RootShape is the node shape that marks root documents.
const RootShape = "doubleoctagon"

// Options configures DOT generation.
type Options struct {
	// Config holds extra graph-level statements written verbatim after the
	// opening brace, one per line (for example "rankdir=LR").
	Config []string
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// labelUnescaper reverses labelEscaper for labels read back through cgraph,
// which already decodes \" itself.
var labelUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")

// ToDOT serializes g as a strict Graphviz digraph.
//
// Nodes are written in ID order as `<id> [label="<title>"]`, with
// `shape=doubleoctagon` added for roots. Edges follow as `<from> -> <to>`,
// grouped by target. The output is deterministic for a given graph.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("strict digraph {\n")
	for _, line := range opts.Config {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(&buf, "    %s\n", line)
	}

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "    %d [label=\"%s\"", n.ID, labelEscaper.Replace(n.Label))
		if n.Root {
			buf.WriteString(", shape=" + RootShape)
		}
		buf.WriteString("]\n")
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "    %d -> %d\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ParseDOT reads DOT source produced by [ToDOT] back into a graph.
//
// Node names must be integer IDs. Labels come from the label attribute and
// the root decoration from the node shape. Graph-level statements and any
// other attributes are ignored.
func ParseDOT(dot string) (*graph.Graph, error) {
	cg, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer cg.Close()

	g := graph.New(nil)
	var nodes []*cgraph.Node
	n, err := cg.FirstNode()
	for ; err == nil && n != nil; n, err = cg.NextNode(n) {
		id, err := nodeID(n)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(graph.Node{
			ID:    id,
			Label: labelUnescaper.Replace(n.GetStr("label")),
			Root:  n.GetStr("shape") == RootShape,
		}); err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
		nodes = append(nodes, n)
	}
	if err != nil {
		return nil, fmt.Errorf("walk nodes: %w", err)
	}

	for _, n := range nodes {
		e, err := cg.FirstOut(n)
		for ; err == nil && e != nil; e, err = cg.NextOut(e) {
			if err := addEdge(g, e); err != nil {
				return nil, err
			}
		}
		if err != nil {
			return nil, fmt.Errorf("walk edges: %w", err)
		}
	}
	return g, nil
}

func nodeID(n *cgraph.Node) (int, error) {
	name, err := n.Name()
	if err != nil {
		return 0, fmt.Errorf("node name: %w", err)
	}
	id, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("node %q: not an integer ID", name)
	}
	return id, nil
}

func addEdge(g *graph.Graph, e *cgraph.Edge) error {
	tail, err := e.Tail()
	if err != nil {
		return fmt.Errorf("edge tail: %w", err)
	}
	head, err := e.Head()
	if err != nil {
		return fmt.Errorf("edge head: %w", err)
	}
	from, err := nodeID(tail)
	if err != nil {
		return err
	}
	to, err := nodeID(head)
	if err != nil {
		return err
	}
	return g.AddEdge(graph.Edge{From: from, To: to})
}

// RenderSVG lays out DOT source with Graphviz and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out DOT source with Graphviz and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the image scales from a
// zero origin with explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, tag...)
	return append(out, svg[loc[1]:]...)
}
