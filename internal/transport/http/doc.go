// Package http exposes the row-length analyzer over HTTP.
//
// One handler runs an analysis for a server-local input file and returns the
// derived artifacts as JSON, optionally writing the full report set to the
// reports directory. The router carries the usual service plumbing: request
// logging, panic recovery, rate limiting and Prometheus metrics.
package http
