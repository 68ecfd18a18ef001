// Package files provides discovery of analyzable input files.
//
// Directory mode iterates every CSV file in a directory; the discovery
// helpers here find and order those files. Traversal lives outside the
// analysis engine on purpose: the engine only ever sees one open source.
package files
