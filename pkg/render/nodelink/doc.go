// Package nodelink renders document graphs as node-link diagrams.
//
// # DOT Format
//
// [ToDOT] writes a strict digraph: optional configuration statements, one
// line per node and one line per prerequisite edge.
//
//	strict digraph {
//	    rankdir=LR
//	    0 [label="Varieties", shape=doubleoctagon]
//	    1 [label="Tangent cones"]
//	    0 -> 1
//	}
//
// Nodes are identified by their integer ID and labeled with the document
// title. Root documents get the doubleoctagon shape. An edge p -> n means p
// is a prerequisite of n.
//
// [ParseDOT] reads such output back into a graph, which lets tests and
// tooling check that serialization preserved labels and edges.
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] lay out DOT source in-process using
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Config: []string{"rankdir=LR"}})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package nodelink
