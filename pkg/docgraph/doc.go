// Package docgraph builds the prerequisite graph of a document corpus.
//
// # Pipeline
//
// Graph construction runs in three synchronous stages:
//
//  1. [Store] ingests one [metadata.Record] per document, rejecting duplicate
//     titles, and admits the retained records into a [NodeSet].
//  2. [Resolve] turns every dependency title into a parent edge (full-graph
//     mode), or [Extract] expands a bounded neighborhood around the focal
//     document (neighborhood mode). [Build] picks the right one.
//  3. [ToGraph] emits the result as a pkg/graph value for serialization.
//
// Every stage returns the first failure it meets as one of the coded errors
// in pkg/errors (DuplicateTitle, FocalNodeNotFound, UnresolvedDependency,
// MalformedMetadata). There is no best-effort graph.
//
// # Identity and IDs
//
// A document's title is its identity. Node IDs are assigned at admission:
// the focal document, if any, gets 0 and the rest follow in title order, so
// the same corpus always yields the same IDs regardless of discovery order.
//
// # Tag filtering
//
// A record is retained when the tag filter is empty or shares a tag with it.
// The focal record is retained regardless. Filtering is not aware of
// dependencies: a retained document that depends on a filtered one fails
// resolution with UnresolvedDependency.
//
// # Cycles
//
// Mutual references are allowed. [Extract] tracks visited nodes so it never
// expands a node twice; [Resolve] does not traverse at all.
//
// # Example
//
//	store := docgraph.NewStore(docgraph.StoreOptions{Focus: "Tangent cones"})
//	for _, rec := range records {
//	    if err := store.Ingest(rec); err != nil {
//	        return err
//	    }
//	}
//	ns, err := store.NodeSet()
//	if err != nil {
//	    return err
//	}
//	ns, err = docgraph.Build(ns, 2)
//	if err != nil {
//	    return err
//	}
//	g, err := docgraph.ToGraph(ns)
package docgraph
