package nodeindex

import (
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/pathstore"
)

// NewAnnotationIndex creates the index that answers which annotations
// anchor on a given text property. Property-scoped annotations are keyed
// by their anchor path; container-scoped annotations appear under both
// endpoint paths, so edits on either side find them.
//
// Without a selection predicate the index falls back to a structural
// test; documents install a schema-backed predicate instead.
func NewAnnotationIndex(opts ...Option) *Index {
	ix := &Index{
		property: node.PropPath,
		selectFn: isAnnotationShaped,
		store:    pathstore.New(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.property = node.PropPath
	ix.watched = []string{node.PropPath, node.PropStartP, node.PropEndP}
	ix.keysFn = annotationKeys
	return ix
}

func annotationKeys(values map[string]any) []node.Path {
	if p := asPath(values[node.PropPath]); len(p) > 0 {
		return []node.Path{p}
	}
	start := asPath(values[node.PropStartP])
	end := asPath(values[node.PropEndP])
	switch {
	case len(start) == 0 && len(end) == 0:
		return nil
	case len(start) == 0:
		return []node.Path{end}
	case len(end) == 0:
		return []node.Path{start}
	case start.Equal(end):
		return []node.Path{start}
	default:
		return []node.Path{start, end}
	}
}

func asPath(v any) node.Path {
	switch t := v.(type) {
	case node.Path:
		return t.Clone()
	case []string:
		return node.NewPath(t...)
	}
	return nil
}

// isAnnotationShaped is the structural fallback predicate: a node looks
// like an annotation when it anchors either a single path or two endpoint
// paths.
func isAnnotationShaped(n *node.Node) bool {
	if len(asPath(n.Get(node.PropPath))) > 0 {
		return true
	}
	return len(asPath(n.Get(node.PropStartP))) > 0 && len(asPath(n.Get(node.PropEndP))) > 0
}
