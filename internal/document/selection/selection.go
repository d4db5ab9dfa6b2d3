package selection

// Selection is an immutable description of what the user has selected.
// Concrete shapes are Null, Property and Container; consumers either use
// the discriminators or type-switch on the concrete types.
type Selection interface {
	IsNull() bool
	IsCollapsed() bool
	IsPropertySelection() bool
	IsContainerSelection() bool
	IsTableSelection() bool
	String() string
}

// Null is the absence of a selection. It reports itself as collapsed so
// cursor-style logic can treat it uniformly.
type Null struct{}

// IsNull reports true.
func (Null) IsNull() bool { return true }

// IsCollapsed reports true; there is nothing to extend.
func (Null) IsCollapsed() bool { return true }

// IsPropertySelection reports false.
func (Null) IsPropertySelection() bool { return false }

// IsContainerSelection reports false.
func (Null) IsContainerSelection() bool { return false }

// IsTableSelection reports false.
func (Null) IsTableSelection() bool { return false }

// String implements fmt.Stringer.
func (Null) String() string { return "null" }

// Equal reports whether two selections describe the same state. Nil and
// Null are considered equal.
func Equal(a, b Selection) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch av := a.(type) {
	case Null:
		return b.IsNull()
	case Property:
		bv, ok := b.(Property)
		return ok && av.Path.Equal(bv.Path) &&
			av.StartOffset == bv.StartOffset && av.EndOffset == bv.EndOffset
	case Container:
		bv, ok := b.(Container)
		return ok && av.ContainerID == bv.ContainerID &&
			av.StartPath.Equal(bv.StartPath) && av.StartOffset == bv.StartOffset &&
			av.EndPath.Equal(bv.EndPath) && av.EndOffset == bv.EndOffset
	}
	return false
}
