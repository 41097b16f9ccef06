// Package graph provides the labeled directed graph that doctree emits.
//
// # Overview
//
// A [Graph] holds one [Node] per document and one [Edge] per prerequisite
// relation. An edge From → To means "From is a dependency of To", so arrows
// point from prerequisites to the documents that build on them.
//
// The graph is the hand-off point between graph construction (pkg/docgraph)
// and serialization (pkg/render/nodelink for DOT, SVG and PNG, pkg/io for
// JSON). Construction guarantees that every edge endpoint is a node in the
// graph; [Graph.Validate] re-checks this.
//
// # Node IDs
//
// IDs are small non-negative integers. When a focal document was requested
// it is always ID 0; the remaining IDs follow title order. Accessors such as
// [Graph.Nodes], [Graph.Edges] and [Graph.Parents] return results in a
// stable order so that output is reproducible.
//
// # Cycles
//
// Document corpora may contain mutual references. The graph accepts them
// and applies no cycle-breaking; [Graph.FindCycle] exists for diagnostics.
//
// # Concurrency
//
// Graph is not safe for concurrent writes. Once built it may be read from
// multiple goroutines.
package graph
