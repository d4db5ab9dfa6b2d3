package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/archivist/substance/internal/document"
	"github.com/archivist/substance/internal/document/node"
	"github.com/archivist/substance/internal/document/selection"
	"github.com/archivist/substance/internal/document/transform"
)

// register installs the global doc table. Every function operates on
// the transaction of the current Run and raises a Lua error on failure,
// so scripts may trap failures with pcall.
func (e *Engine) register() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"create":          e.luaCreate,
		"delete":          e.luaDelete,
		"set":             e.luaSet,
		"insert":          e.luaInsert,
		"remove":          e.luaRemove,
		"text":            e.luaText,
		"len":             e.luaLen,
		"nodes":           e.luaNodes,
		"annotations":     e.luaAnnotations,
		"insertText":      e.luaInsertText,
		"deleteSelection": e.luaDeleteSelection,
		"selection":       e.luaSelection,
	})
	e.L.SetGlobal("doc", mod)
}

// transaction returns the transaction of the current Run, raising a
// Lua error when called outside one.
func (e *Engine) transaction(L *lua.LState) *document.Transaction {
	if e.tx == nil {
		L.RaiseError("no active transaction")
	}
	return e.tx
}

// create stages a node and returns its id. The type is required, the
// id optional:
//
//	local id = doc.create{ type = "paragraph", content = "hello" }
func (e *Engine) luaCreate(L *lua.LState) int {
	tx := e.transaction(L)
	props, ok := toGo(L.CheckTable(1)).(map[string]any)
	if !ok {
		L.RaiseError("create: expected a table of properties")
	}
	typ, _ := props[node.PropType].(string)
	if typ == "" {
		L.RaiseError("create: missing type")
	}
	delete(props, node.PropType)
	n, err := tx.Create(typ, props)
	if err != nil {
		L.RaiseError("create: %s", err)
	}
	L.Push(lua.LString(n.ID()))
	return 1
}

// delete removes a node by id: doc.delete("p2").
func (e *Engine) luaDelete(L *lua.LState) int {
	tx := e.transaction(L)
	if err := tx.Delete(L.CheckString(1)); err != nil {
		L.RaiseError("delete: %s", err)
	}
	return 0
}

// set replaces a property value: doc.set("h1.level", 2). A nil value
// unsets the property.
func (e *Engine) luaSet(L *lua.LState) int {
	tx := e.transaction(L)
	p := node.ParsePath(L.CheckString(1))
	if err := tx.Set(p, toGo(L.Get(2))); err != nil {
		L.RaiseError("set: %s", err)
	}
	return 0
}

// insert splices text into a property at a rune offset, shifting
// annotations: doc.insert("p1.content", 3, "abc"). On an id-list
// property the value is inserted as one element, so
// doc.insert("main.nodes", 2, id) splices a node into the container.
func (e *Engine) luaInsert(L *lua.LState) int {
	tx := e.transaction(L)
	p := node.ParsePath(L.CheckString(1))
	offset := L.CheckInt(2)
	text := L.CheckString(3)
	if err := tx.Update(p, document.Diff{Insert: &document.InsertDiff{Offset: offset, Value: text}}); err != nil {
		L.RaiseError("insert: %s", err)
	}
	if err := transform.InsertedText(tx, p, offset, node.TextLen(text)); err != nil {
		L.RaiseError("insert: %s", err)
	}
	return 0
}

// remove deletes the rune range [start, end) from a property, shifting
// annotations: doc.remove("p1.content", 0, 3). On an id-list property
// it removes the single element at start.
func (e *Engine) luaRemove(L *lua.LState) int {
	tx := e.transaction(L)
	p := node.ParsePath(L.CheckString(1))
	start, end := L.CheckInt(2), L.CheckInt(3)
	if err := tx.Update(p, document.Diff{Delete: &document.DeleteDiff{Start: start, End: end}}); err != nil {
		L.RaiseError("remove: %s", err)
	}
	if err := transform.DeletedText(tx, p, start, end); err != nil {
		L.RaiseError("remove: %s", err)
	}
	return 0
}

// text returns the text of a property: doc.text("p1.content").
func (e *Engine) luaText(L *lua.LState) int {
	tx := e.transaction(L)
	L.Push(lua.LString(tx.Text(node.ParsePath(L.CheckString(1)))))
	return 1
}

// len returns the rune length of a property's text. The Lua # operator
// counts bytes, not runes, so offsets derived from it would be wrong
// on non-ASCII text.
func (e *Engine) luaLen(L *lua.LState) int {
	tx := e.transaction(L)
	L.Push(lua.LNumber(tx.TextLen(node.ParsePath(L.CheckString(1)))))
	return 1
}

// nodes returns the ordered node ids of a container, defaulting to the
// document container: doc.nodes() or doc.nodes("sidebar").
func (e *Engine) luaNodes(L *lua.LState) int {
	tx := e.transaction(L)
	c, err := tx.Container(L.OptString(1, tx.ContainerID()))
	if err != nil {
		L.RaiseError("nodes: %s", err)
	}
	L.Push(toLua(L, c.NodeIDs()))
	return 1
}

// annotations returns the annotations anchored on a property as an
// array of tables: doc.annotations("p1.content").
func (e *Engine) luaAnnotations(L *lua.LState) int {
	tx := e.transaction(L)
	p := node.ParsePath(L.CheckString(1))
	out := L.NewTable()
	for i, a := range tx.Annotations(p) {
		t := L.NewTable()
		t.RawSetString("id", lua.LString(a.ID()))
		t.RawSetString("type", lua.LString(a.Type()))
		if a.IsContainerScoped() {
			t.RawSetString("startPath", lua.LString(a.StartPath().String()))
			t.RawSetString("endPath", lua.LString(a.EndPath().String()))
			t.RawSetString("containerId", lua.LString(a.ContainerID()))
		} else {
			t.RawSetString("path", lua.LString(a.Path().String()))
		}
		t.RawSetString("startOffset", lua.LNumber(a.Start()))
		t.RawSetString("endOffset", lua.LNumber(a.End()))
		out.RawSetInt(i+1, t)
	}
	L.Push(out)
	return 1
}

// insertText inserts at a selection the way typing does, replacing a
// non-collapsed selection first and leaving the cursor after the
// inserted text:
//
//	doc.insertText{ text = "x" }                                  -- current selection
//	doc.insertText{ text = "x", path = "p1.content", offset = 3 }
//	doc.insertText{ text = "x", path = "p1.content", startOffset = 0, endOffset = 5 }
func (e *Engine) luaInsertText(L *lua.LState) int {
	tx := e.transaction(L)
	t := L.CheckTable(1)
	text, ok := t.RawGetString("text").(lua.LString)
	if !ok {
		L.RaiseError("insertText: missing text")
	}
	sel := selectionFromTable(tx, t)
	if p, ok := t.RawGetString("path").(lua.LString); ok {
		if off, ok := t.RawGetString("offset").(lua.LNumber); ok {
			sel = selection.Collapsed(node.ParsePath(string(p)), int(off))
		}
	}
	if _, err := transform.InsertText(tx, sel, string(text)); err != nil {
		L.RaiseError("insertText: %s", err)
	}
	return 0
}

// deleteSelection removes the selected content and collapses the
// selection to the start of the removed range:
//
//	doc.deleteSelection{}                                         -- current selection
//	doc.deleteSelection{ path = "p1.content", startOffset = 2, endOffset = 5 }
//	doc.deleteSelection{ startPath = "h1.content", startOffset = 8,
//	                     endPath = "p2.content", endOffset = 10 }
//
// direction = "left" marks a backward deletion.
func (e *Engine) luaDeleteSelection(L *lua.LState) int {
	tx := e.transaction(L)
	sel := tx.Selection()
	dir := transform.DirectionRight
	if t := L.OptTable(1, nil); t != nil {
		sel = selectionFromTable(tx, t)
		if d, ok := t.RawGetString("direction").(lua.LString); ok && string(d) == "left" {
			dir = transform.DirectionLeft
		}
	}
	if _, err := transform.DeleteSelection(tx, sel, dir); err != nil {
		L.RaiseError("deleteSelection: %s", err)
	}
	return 0
}

// selection returns the staged selection as a table, or nil for the
// null selection.
func (e *Engine) luaSelection(L *lua.LState) int {
	tx := e.transaction(L)
	switch s := tx.Selection().(type) {
	case selection.Property:
		t := L.NewTable()
		t.RawSetString("type", lua.LString(selection.TypeProperty))
		t.RawSetString("path", lua.LString(s.Path.String()))
		t.RawSetString("startOffset", lua.LNumber(s.StartOffset))
		t.RawSetString("endOffset", lua.LNumber(s.EndOffset))
		L.Push(t)
	case selection.Container:
		t := L.NewTable()
		t.RawSetString("type", lua.LString(selection.TypeContainer))
		t.RawSetString("containerId", lua.LString(s.ContainerID))
		t.RawSetString("startPath", lua.LString(s.StartPath.String()))
		t.RawSetString("startOffset", lua.LNumber(s.StartOffset))
		t.RawSetString("endPath", lua.LString(s.EndPath.String()))
		t.RawSetString("endOffset", lua.LNumber(s.EndOffset))
		L.Push(t)
	default:
		L.Push(lua.LNil)
	}
	return 1
}

// selectionFromTable builds a selection from the anchor fields of a
// Lua table, falling back to the transaction selection when none are
// present. A "path" field selects within one property; "startPath" and
// "endPath" select across a container.
func selectionFromTable(tx *document.Transaction, t *lua.LTable) selection.Selection {
	start := int(lua.LVAsNumber(t.RawGetString("startOffset")))
	end := int(lua.LVAsNumber(t.RawGetString("endOffset")))
	if p, ok := t.RawGetString("path").(lua.LString); ok {
		return selection.NewProperty(node.ParsePath(string(p)), start, end)
	}
	sp, spOK := t.RawGetString("startPath").(lua.LString)
	ep, epOK := t.RawGetString("endPath").(lua.LString)
	if spOK && epOK {
		cid := tx.ContainerID()
		if c, ok := t.RawGetString("containerId").(lua.LString); ok {
			cid = string(c)
		}
		return selection.NewContainer(cid, node.ParsePath(string(sp)), start, node.ParsePath(string(ep)), end)
	}
	return tx.Selection()
}
