package node

// Container is a view over a node whose type carries the container
// capability. It exposes the ordered child id list stored under the
// "nodes" property. The view is read-only; reordering happens through
// transaction operations on the underlying property.
type Container struct {
	*Node
}

// AsContainer wraps a node in a container view. The caller is responsible
// for having checked the capability through the schema.
func AsContainer(n *Node) Container { return Container{n} }

// NodeIDs returns a copy of the ordered child id list.
func (c Container) NodeIDs() []string {
	return c.GetIDs(PropNodes)
}

// Len returns the number of children.
func (c Container) Len() int {
	ids, _ := c.Get(PropNodes).([]string)
	return len(ids)
}

// Position returns the index of the given child id, or -1 when the id is
// not a child of this container.
func (c Container) Position(id string) int {
	ids, _ := c.Get(PropNodes).([]string)
	for i, e := range ids {
		if e == id {
			return i
		}
	}
	return -1
}

// Contains reports whether the given id is a child of this container.
func (c Container) Contains(id string) bool {
	return c.Position(id) >= 0
}

// NodeIDAt returns the child id at the given position, or "" when the
// position is out of range.
func (c Container) NodeIDAt(pos int) string {
	ids, _ := c.Get(PropNodes).([]string)
	if pos < 0 || pos >= len(ids) {
		return ""
	}
	return ids[pos]
}
