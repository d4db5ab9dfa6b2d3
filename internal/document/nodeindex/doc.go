// Package nodeindex maintains derived lookup structures over document
// nodes.
//
// An Index selects a subset of nodes and buckets them by the value of one
// property, so membership queries cost a path lookup instead of a scan.
// Buckets live in a pathstore tree: scalar values become single-segment
// keys, multi-valued properties fan out to one key per value, and
// path-valued properties use the path itself as the key. The annotation
// index builds on that last shape to answer "which annotations anchor on
// this text property" during edits.
//
// Indexes never mutate nodes. The owning document drives them through
// Reset, Create, Delete and Update as committed changes are applied.
package nodeindex
