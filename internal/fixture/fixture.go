// Package fixture reads and writes JSON document fixtures for the CLI
// and for tests. The format is a convenience, not a persistence
// contract:
//
//	{
//	  "nodes": [
//	    {"id": "h1", "type": "heading", "content": "Title", "level": 1},
//	    {"id": "a1", "type": "emphasis", "path": "p1.content",
//	     "startOffset": 1, "endOffset": 4}
//	  ],
//	  "container": ["h1", "p1"],
//	  "selection": {"type": "property", "path": "p1.content",
//	                "startOffset": 0, "endOffset": 0}
//	}
//
// "container" is the node order of the document's default container;
// "selection" is optional and follows the descriptor field names.
package fixture

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/selection"
)

// ErrInvalidFixture reports fixture data that cannot be interpreted.
var ErrInvalidFixture = errors.New("invalid fixture")

// Load builds the fixture's nodes, container order and selection in the
// document through a single transaction. Nothing is committed when any
// part fails.
func Load(data []byte, d *document.Document) error {
	if d == nil {
		return fmt.Errorf("%w: nil document", document.ErrInvalidArgument)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidFixture)
	}

	tx, err := d.Begin()
	if err != nil {
		return err
	}
	if err := loadInto(tx, gjson.ParseBytes(data)); err != nil {
		tx.Discard()
		return err
	}
	_, err = tx.Commit()
	return err
}

func loadInto(tx *document.Transaction, root gjson.Result) error {
	nodes := root.Get("nodes")
	if nodes.Exists() && !nodes.IsArray() {
		return fmt.Errorf("%w: nodes must be an array", ErrInvalidFixture)
	}
	var loadErr error
	nodes.ForEach(func(_, item gjson.Result) bool {
		loadErr = createNode(tx, item)
		return loadErr == nil
	})
	if loadErr != nil {
		return loadErr
	}

	if order := root.Get("container"); order.Exists() {
		if !order.IsArray() {
			return fmt.Errorf("%w: container must be an array of ids", ErrInvalidFixture)
		}
		elems := order.Array()
		ids := make([]string, 0, len(elems))
		for _, e := range elems {
			ids = append(ids, e.String())
		}
		if err := tx.Set(document.Path{tx.ContainerID(), node.PropNodes}, ids); err != nil {
			return err
		}
	}

	if sel := root.Get("selection"); sel.Exists() {
		s, err := tx.CreateSelection(descriptorFrom(sel))
		if err != nil {
			return err
		}
		if err := tx.SetSelection(s); err != nil {
			return err
		}
	}
	return nil
}

func createNode(tx *document.Transaction, item gjson.Result) error {
	if !item.IsObject() {
		return fmt.Errorf("%w: node entries must be objects", ErrInvalidFixture)
	}
	typ := item.Get(node.PropType).String()
	if typ == "" {
		return fmt.Errorf("%w: node %q has no type", ErrInvalidFixture, item.Get(node.PropID).String())
	}

	props := make(map[string]any)
	var convErr error
	item.ForEach(func(key, value gjson.Result) bool {
		if key.String() == node.PropType {
			return true
		}
		v, err := goValue(value)
		if err != nil {
			convErr = fmt.Errorf("%w: node %q property %q: %v",
				ErrInvalidFixture, item.Get(node.PropID).String(), key.String(), err)
			return false
		}
		props[key.String()] = v
		return true
	})
	if convErr != nil {
		return convErr
	}
	_, err := tx.Create(typ, props)
	return err
}

// goValue converts a JSON value to the document value domain. Integral
// numbers become ints; nested objects are not valid property values.
func goValue(r gjson.Result) (any, error) {
	switch r.Type {
	case gjson.String:
		return r.String(), nil
	case gjson.Number:
		f := r.Float()
		if f == float64(int(f)) {
			return int(f), nil
		}
		return f, nil
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	case gjson.Null:
		return nil, nil
	default:
		if r.IsArray() {
			elems := r.Array()
			out := make([]any, 0, len(elems))
			for _, e := range elems {
				v, err := goValue(e)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		}
		return nil, fmt.Errorf("unsupported value %s", r.Raw)
	}
}

func descriptorFrom(r gjson.Result) selection.Descriptor {
	return selection.Descriptor{
		Type:        r.Get("type").String(),
		Path:        node.ParsePath(r.Get("path").String()),
		StartPath:   node.ParsePath(r.Get("startPath").String()),
		EndPath:     node.ParsePath(r.Get("endPath").String()),
		StartOffset: int(r.Get("startOffset").Int()),
		EndOffset:   int(r.Get("endOffset").Int()),
		ContainerID: r.Get("containerId").String(),
	}
}

// Dump renders the document as fixture JSON: the container order, then
// the container's nodes in order followed by the remaining nodes sorted
// by id. The default container node itself is implied and not dumped.
func Dump(d *document.Document) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil document", document.ErrInvalidArgument)
	}
	c, err := d.Container(d.ContainerID())
	if err != nil {
		return nil, err
	}
	order := c.NodeIDs()

	out := []byte(`{}`)
	if out, err = sjson.SetBytes(out, "container", order); err != nil {
		return nil, err
	}
	for _, id := range dumpOrder(d, order) {
		if out, err = sjson.SetBytes(out, "nodes.-1", nodeData(d.Node(id))); err != nil {
			return nil, err
		}
	}
	if desc, ok := describeSelection(d.Selection()); ok {
		if out, err = sjson.SetBytes(out, "selection", desc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func dumpOrder(d *document.Document, order []string) []string {
	seen := map[string]bool{d.ContainerID(): true}
	out := make([]string, 0, d.NodeCount())
	for _, id := range order {
		if !seen[id] && d.Has(id) {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range d.NodeIDs() {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// nodeData flattens a node for JSON, rendering path values in dotted
// form.
func nodeData(n *document.Node) map[string]any {
	data := n.Data()
	for k, v := range data {
		if p, ok := v.(node.Path); ok {
			data[k] = p.String()
		}
	}
	return data
}

func describeSelection(sel document.Selection) (map[string]any, bool) {
	switch s := sel.(type) {
	case selection.Property:
		return map[string]any{
			"type":        selection.TypeProperty,
			"path":        s.Path.String(),
			"startOffset": s.StartOffset,
			"endOffset":   s.EndOffset,
		}, true
	case selection.Container:
		return map[string]any{
			"type":        selection.TypeContainer,
			"containerId": s.ContainerID,
			"startPath":   s.StartPath.String(),
			"startOffset": s.StartOffset,
			"endPath":     s.EndPath.String(),
			"endOffset":   s.EndOffset,
		}, true
	default:
		return nil, false
	}
}
