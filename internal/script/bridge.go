package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/archivist/substance/internal/document/node"
)

// toGo converts a Lua value to its Go form: nil, bool, int, float64,
// string, []any or map[string]any. Tables with a sequence part become
// slices, everything else becomes a string-keyed map. Cyclic tables
// collapse to nil on revisit.
func toGo(v lua.LValue) any {
	return toGoValue(v, make(map[*lua.LTable]bool))
}

func toGoValue(v lua.LValue, visited map[*lua.LTable]bool) any {
	switch lv := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(lv)
	case lua.LNumber:
		f := float64(lv)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(lv)
	case *lua.LTable:
		if visited[lv] {
			return nil
		}
		visited[lv] = true
		return tableToGo(lv, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.MaxN(); n > 0 {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			arr = append(arr, toGoValue(t.RawGetInt(i), visited))
		}
		return arr
	}
	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoValue(v, visited)
	})
	return m
}

// toLua converts a Go value to a Lua value. Paths render as dotted
// strings; unhandled types map to nil.
func toLua(L *lua.LState, v any) lua.LValue {
	switch gv := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(gv)
	case int:
		return lua.LNumber(gv)
	case int64:
		return lua.LNumber(gv)
	case float64:
		return lua.LNumber(gv)
	case string:
		return lua.LString(gv)
	case node.Path:
		return lua.LString(gv.String())
	case []string:
		t := L.NewTable()
		for i, e := range gv {
			t.RawSetInt(i+1, lua.LString(e))
		}
		return t
	case []any:
		t := L.NewTable()
		for i, e := range gv {
			t.RawSetInt(i+1, toLua(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range gv {
			t.RawSetString(k, toLua(L, e))
		}
		return t
	default:
		return lua.LNil
	}
}
