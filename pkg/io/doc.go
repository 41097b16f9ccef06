// Package io provides JSON import and export for document graphs.
//
// # JSON Format
//
//	{
//	  "meta": {"focus": "Tangent cones"},
//	  "nodes": [
//	    {"id": 0, "label": "Tangent cones", "root": true, "meta": {"date": "2023-02-03"}},
//	    {"id": 1, "label": "Varieties"}
//	  ],
//	  "edges": [
//	    {"from": 1, "to": 0}
//	  ]
//	}
//
// Node fields:
//   - id: node ID as assigned during graph construction (required)
//   - label: document title
//   - root: true for root documents (the focal document, or documents
//     without prerequisites in a full graph)
//   - meta: descriptive fields (date, description, tags, source)
//
// An edge {"from": p, "to": n} means p is a prerequisite of n. The top-level
// meta object carries graph-level metadata and is omitted when empty.
//
// # Import and Export
//
// [WriteJSON] and [ReadJSON] work on any io.Writer and io.Reader;
// [ExportJSON] and [ImportJSON] are file-path conveniences.
//
//	if err := io.ExportJSON(g, "graph.json"); err != nil {
//	    return err
//	}
//	g2, err := io.ImportJSON("graph.json")
//
// A graph written by WriteJSON reads back with the same nodes, labels, root
// decorations and edges. Metadata values come back as generic JSON values
// (strings, []any), so tags read back as []any rather than []string.
package io
