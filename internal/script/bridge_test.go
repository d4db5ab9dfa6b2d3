package script

import (
	"reflect"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/archivist/substance/internal/document/node"
)

func TestToGoScalars(t *testing.T) {
	tests := []struct {
		name string
		in   lua.LValue
		want any
	}{
		{"nil", lua.LNil, nil},
		{"true", lua.LTrue, true},
		{"false", lua.LFalse, false},
		{"integer", lua.LNumber(42), 42},
		{"float", lua.LNumber(3.5), 3.5},
		{"string", lua.LString("hello"), "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toGo(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toGo(%v) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestToGoTables(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	t.Run("array", func(t *testing.T) {
		tbl := L.NewTable()
		tbl.RawSetInt(1, lua.LString("a"))
		tbl.RawSetInt(2, lua.LNumber(2))
		tbl.RawSetInt(3, lua.LTrue)

		want := []any{"a", 2, true}
		if got := toGo(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("toGo(array) = %v, want %v", got, want)
		}
	})

	t.Run("map", func(t *testing.T) {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("paragraph"))
		tbl.RawSetString("level", lua.LNumber(2))

		want := map[string]any{"type": "paragraph", "level": 2}
		if got := toGo(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("toGo(map) = %v, want %v", got, want)
		}
	})

	t.Run("nested", func(t *testing.T) {
		inner := L.NewTable()
		inner.RawSetInt(1, lua.LString("p1"))
		inner.RawSetInt(2, lua.LString("p2"))
		tbl := L.NewTable()
		tbl.RawSetString("nodes", inner)

		want := map[string]any{"nodes": []any{"p1", "p2"}}
		if got := toGo(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("toGo(nested) = %v, want %v", got, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := toGo(L.NewTable())
		m, ok := got.(map[string]any)
		if !ok || len(m) != 0 {
			t.Errorf("toGo(empty) = %v (%T), want empty map", got, got)
		}
	})
}

func TestToGoCyclicTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString("loop"))
	tbl.RawSetString("self", tbl)

	got, ok := toGo(tbl).(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if got["name"] != "loop" {
		t.Errorf("expected name preserved, got %v", got["name"])
	}
	if got["self"] != nil {
		t.Errorf("expected cycle broken to nil, got %v", got["self"])
	}
}

func TestToLuaScalars(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		name  string
		in    any
		check func(lua.LValue) bool
	}{
		{"nil", nil, func(v lua.LValue) bool { return v == lua.LNil }},
		{"bool", true, func(v lua.LValue) bool { return v == lua.LTrue }},
		{"int", 7, func(v lua.LValue) bool {
			n, ok := v.(lua.LNumber)
			return ok && float64(n) == 7
		}},
		{"int64", int64(7), func(v lua.LValue) bool {
			n, ok := v.(lua.LNumber)
			return ok && float64(n) == 7
		}},
		{"float64", 2.5, func(v lua.LValue) bool {
			n, ok := v.(lua.LNumber)
			return ok && float64(n) == 2.5
		}},
		{"string", "hi", func(v lua.LValue) bool {
			s, ok := v.(lua.LString)
			return ok && string(s) == "hi"
		}},
		{"path", node.NewPath("p1", "content"), func(v lua.LValue) bool {
			s, ok := v.(lua.LString)
			return ok && string(s) == "p1.content"
		}},
		{"unsupported", struct{}{}, func(v lua.LValue) bool { return v == lua.LNil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toLua(L, tt.in); !tt.check(got) {
				t.Errorf("toLua(%v) = %v (%T), check failed", tt.in, got, got)
			}
		})
	}
}

func TestToLuaCollections(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	t.Run("string slice", func(t *testing.T) {
		v := toLua(L, []string{"a", "b"})
		tbl, ok := v.(*lua.LTable)
		if !ok {
			t.Fatalf("expected table, got %T", v)
		}
		if tbl.Len() != 2 || tbl.RawGetInt(1) != lua.LString("a") || tbl.RawGetInt(2) != lua.LString("b") {
			t.Errorf("unexpected table contents")
		}
	})

	t.Run("any slice", func(t *testing.T) {
		v := toLua(L, []any{1, "x"})
		tbl, ok := v.(*lua.LTable)
		if !ok {
			t.Fatalf("expected table, got %T", v)
		}
		if tbl.RawGetInt(1) != lua.LNumber(1) || tbl.RawGetInt(2) != lua.LString("x") {
			t.Errorf("unexpected table contents")
		}
	})

	t.Run("map", func(t *testing.T) {
		v := toLua(L, map[string]any{"k": "v", "n": 3})
		tbl, ok := v.(*lua.LTable)
		if !ok {
			t.Fatalf("expected table, got %T", v)
		}
		if tbl.RawGetString("k") != lua.LString("v") || tbl.RawGetString("n") != lua.LNumber(3) {
			t.Errorf("unexpected table contents")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	in := map[string]any{
		"type":    "heading",
		"level":   2,
		"content": "Résumé",
		"tags":    []any{"a", "b"},
	}
	got := toGo(toLua(L, in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}
