// Package server exposes document graphs over HTTP.
//
// # Endpoints
//
//	GET /graph      the graph in dot (default), svg, png or json
//	GET /documents  the documents with their front matter, unresolved
//	GET /healthz    liveness
//
// /graph accepts the same selection as the command line: tag (repeatable,
// matches any), focus, depth and format. For example
//
//	/graph?focus=Tangent+cones&depth=2&format=svg
//
// # Errors
//
// Failures are returned as JSON {"error": CODE, "message": ..., "request_id": ...}.
// Graph construction errors (duplicate title, unresolved dependency, focal
// document not found, malformed metadata) map to 422, invalid parameters to
// 400, a missing corpus root to 404 and anything else to 500.
package server
