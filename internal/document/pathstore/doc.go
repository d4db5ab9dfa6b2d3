// Package pathstore provides tree-shaped storage addressed by node paths.
//
// A Store keeps arbitrary values at paths, creating intermediate levels on
// write and never on read. Traversal visits leaves in deterministic order
// so that index rebuilds and fixture dumps are reproducible. An ArrayStore
// layers ordered multisets on top, which is the shape node indexes need
// for their buckets.
package pathstore
