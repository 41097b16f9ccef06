// Package config reads the optional project file doctree.toml.
//
// The file lives at the corpus root (or is named explicitly) and sets
// defaults that command-line flags override:
//
//	extensions = [".md", ".markdown"]
//	tags = ["algebraic-geometry"]
//
//	[graph]
//	depth = 2
//	format = "svg"
//	config = ["rankdir=LR", "node [fontname=Helvetica]"]
//
//	[server]
//	addr = ":9090"
package config
