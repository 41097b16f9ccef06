// Package metadata reads the declarative front matter of documents.
//
// A document opens with a metadata block in YAML (delimited by "---") or
// TOML (delimited by "+++"):
//
//	---
//	title: 'Classical algebraic geometry: tangent cones'
//	date: 2023-02-03
//	description: Tangent cones of affine varieties
//	dependencies:
//	  - 'Classical algebraic geometry: varieties'
//	tags:
//	  - algebraic geometry
//	---
//
// [Extract] isolates the block, [Parse] decodes it into a [Record], and
// [ParseFile] does both for a path on disk. Decoding failures and missing
// titles are reported as MalformedMetadata errors from pkg/errors.
//
// Records are values. Their Dependencies and Tags are sets kept in sorted,
// de-duplicated order so that graph construction is deterministic.
package metadata
