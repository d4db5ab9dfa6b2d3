package node

// Annotation is a view over a node whose type carries the annotation
// capability. A property-scoped annotation anchors a rune span on a single
// text property via "path", "startOffset" and "endOffset". A
// container-scoped annotation instead anchors two independent coordinates
// via "startPath"/"startOffset" and "endPath"/"endOffset" inside the
// container named by "containerId".
type Annotation struct {
	*Node
}

// AsAnnotation wraps a node in an annotation view. The caller is
// responsible for having checked the capability through the schema.
func AsAnnotation(n *Node) Annotation { return Annotation{n} }

// IsContainerScoped reports whether the annotation anchors its endpoints
// on two independent paths rather than a single text property.
func (a Annotation) IsContainerScoped() bool {
	return a.Has(PropStartP) && a.Has(PropEndP)
}

// Path returns the anchor path of a property-scoped annotation.
func (a Annotation) Path() Path { return a.GetPath(PropPath) }

// Start returns the start offset in runes.
func (a Annotation) Start() int { return a.GetInt(PropStart) }

// End returns the exclusive end offset in runes.
func (a Annotation) End() int { return a.GetInt(PropEnd) }

// StartPath returns the path anchoring the start coordinate. For a
// property-scoped annotation this is the single anchor path.
func (a Annotation) StartPath() Path {
	if p := a.GetPath(PropStartP); p != nil {
		return p
	}
	return a.Path()
}

// EndPath returns the path anchoring the end coordinate. For a
// property-scoped annotation this is the single anchor path.
func (a Annotation) EndPath() Path {
	if p := a.GetPath(PropEndP); p != nil {
		return p
	}
	return a.Path()
}

// ContainerID returns the id of the container a container-scoped
// annotation belongs to, or "" for property-scoped annotations.
func (a Annotation) ContainerID() string { return a.GetString(PropScope) }

// IsZeroWidth reports whether the annotation covers no runes. It is only
// meaningful for property-scoped annotations.
func (a Annotation) IsZeroWidth() bool {
	return !a.IsContainerScoped() && a.Start() == a.End()
}
