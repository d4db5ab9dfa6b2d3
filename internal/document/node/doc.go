// Package node defines the building blocks of the document graph: typed
// nodes addressed by id, paths addressing nodes and their properties, and
// the container/annotation views used by the editing model.
//
// A Node is a flat record: an id, a type name resolved through the schema,
// and a bag of typed property values. Specialized behavior is expressed as
// views (Container, Annotation) over the same record rather than as
// subtypes; capability decisions are made by the schema, not by the node.
//
// Text properties hold UTF-8 strings. All offsets in this package and its
// consumers are rune indices, never byte offsets. The splice helpers
// (SpliceInsert, SpliceDelete, SliceText, TextLen) are the only functions
// that translate between the two.
package node
