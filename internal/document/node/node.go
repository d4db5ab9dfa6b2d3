package node

import "fmt"

// Well-known property names shared across node types.
const (
	PropID      = "id"
	PropType    = "type"
	PropNodes   = "nodes"
	PropPath    = "path"
	PropStart   = "startOffset"
	PropEnd     = "endOffset"
	PropStartP  = "startPath"
	PropEndP    = "endPath"
	PropScope   = "containerId"
	PropContent = "content"
)

// Node is a single record in the document graph: an id, a type name and a
// bag of property values. Property values are one of string, int, bool,
// Path, []string or nil.
//
// Nodes handed out by a document must be treated as read-only; all
// mutation flows through a transaction so that indexes and listeners
// observe every change.
type Node struct {
	id    string
	typ   string
	props map[string]any
}

// New creates a node with the given id, type and initial properties.
// The property map is copied.
func New(id, typ string, props map[string]any) *Node {
	n := &Node{id: id, typ: typ, props: make(map[string]any, len(props))}
	for k, v := range props {
		if k == PropID || k == PropType {
			continue
		}
		n.props[k] = cloneValue(v)
	}
	return n
}

// FromData reconstructs a node from a flat data map as produced by Data.
// The map must carry string values under "id" and "type".
func FromData(data map[string]any) (*Node, error) {
	id, _ := data[PropID].(string)
	typ, _ := data[PropType].(string)
	if id == "" {
		return nil, fmt.Errorf("node data: missing id")
	}
	if typ == "" {
		return nil, fmt.Errorf("node data %q: missing type", id)
	}
	return New(id, typ, data), nil
}

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Type returns the node type name.
func (n *Node) Type() string { return n.typ }

// Has reports whether the named property is set.
func (n *Node) Has(name string) bool {
	switch name {
	case PropID, PropType:
		return true
	}
	_, ok := n.props[name]
	return ok
}

// Get returns the named property value, or nil when unset. The id and
// type are addressable as the "id" and "type" properties.
func (n *Node) Get(name string) any {
	switch name {
	case PropID:
		return n.id
	case PropType:
		return n.typ
	}
	return n.props[name]
}

// Set stores a property value. The id and type are immutable; setting
// them is a no-op.
func (n *Node) Set(name string, value any) {
	switch name {
	case PropID, PropType:
		return
	}
	if value == nil {
		delete(n.props, name)
		return
	}
	n.props[name] = value
}

// GetString returns the named property as a string, or "" when the
// property is unset or of another type.
func (n *Node) GetString(name string) string {
	s, _ := n.Get(name).(string)
	return s
}

// GetInt returns the named property as an int. Float values produced by
// JSON decoding are truncated.
func (n *Node) GetInt(name string) int {
	switch v := n.Get(name).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// GetBool returns the named property as a bool, or false when unset.
func (n *Node) GetBool(name string) bool {
	b, _ := n.Get(name).(bool)
	return b
}

// GetIDs returns the named property as an id list. The returned slice is
// a copy.
func (n *Node) GetIDs(name string) []string {
	switch v := n.Get(name).(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// GetPath returns the named property as a Path. The returned path is a
// copy.
func (n *Node) GetPath(name string) Path {
	switch v := n.Get(name).(type) {
	case Path:
		return v.Clone()
	case []string:
		return NewPath(v...)
	}
	return nil
}

// Properties visits every set property in unspecified order. The id and
// type are not visited.
func (n *Node) Properties(visit func(name string, value any)) {
	for k, v := range n.props {
		visit(k, v)
	}
}

// Data flattens the node into a map including its id and type. Slice and
// path values are copied, so the result is safe to retain.
func (n *Node) Data() map[string]any {
	out := make(map[string]any, len(n.props)+2)
	out[PropID] = n.id
	out[PropType] = n.typ
	for k, v := range n.props {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	return New(n.id, n.typ, n.props)
}

// String implements fmt.Stringer for log output.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.id, n.typ)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Path:
		return t.Clone()
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}
