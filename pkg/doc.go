// Package pkg holds the doctree libraries.
//
// Doctree turns a directory of Markdown notes into a dependency graph: each
// note declares a title and the titles it depends on in YAML front matter,
// and the graph draws an edge from every dependency to its dependent.
//
// # Data Flow
//
//	notes/*.md
//	     ↓
//	[corpus]     discover files, skip hidden and *_deleted entries
//	     ↓
//	[metadata]   parse front matter into records
//	     ↓
//	[docgraph]   assign IDs, filter by tag, resolve dependencies,
//	             extract the neighborhood of a focal note
//	     ↓
//	[graph]      emitted nodes and edges
//	     ↓
//	[render/nodelink], [io]   DOT, SVG, PNG or JSON
//
// [pipeline] runs the whole flow and is shared by the CLI and [server].
//
// # Supporting Packages
//
//   - [config]: doctree.toml project settings
//   - [cache]: artifact cache (memory, file, Redis)
//   - [errors]: error codes shared by every entry point
//   - [observability]: hooks around pipeline stages and HTTP requests
//   - [buildinfo]: version information set at build time
package pkg
