// Package schema declares node types and their capabilities.
//
// A Schema is a registry of NodeType descriptors. Capabilities (text,
// block, container, annotation) are flags on the descriptor rather than
// Go types, so documents decide behavior by asking the schema instead of
// type-switching on nodes. Every schema names a default text type, the
// type synthesized when an edit removes all content and the document
// needs an empty node to hold the cursor.
package schema
