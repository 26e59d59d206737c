package scripting

import (
	"errors"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	var picked string
	reg.Add("f", func(*lua.LState, []lua.LValue) int { picked = "none"; return 0 })
	reg.Add("f", func(*lua.LState, []lua.LValue) int { picked = "number"; return 0 }, TagNumber)
	reg.Add("f", func(*lua.LState, []lua.LValue) int { picked = "string"; return 0 }, TagString)
	reg.Add("f", func(*lua.LState, []lua.LValue) int { picked = "any"; return 0 }, TagAny)
	reg.Add("f", func(*lua.LState, []lua.LValue) int { picked = "pair"; return 0 }, TagNumber, TagNumber)

	tests := []struct {
		args []lua.LValue
		want string
	}{
		{nil, "none"},
		{[]lua.LValue{lua.LNumber(1)}, "number"},
		{[]lua.LValue{lua.LString("x")}, "string"},
		{[]lua.LValue{lua.LTrue}, "any"},
		{[]lua.LValue{lua.LNumber(1), lua.LNumber(2)}, "pair"},
	}
	for _, tt := range tests {
		o, err := reg.Resolve("f", tt.args)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", tt.args, err)
		}
		o.Impl(nil, tt.args)
		if picked != tt.want {
			t.Errorf("Resolve(%v) picked %q, want %q", tt.args, picked, tt.want)
		}
	}
}

func TestRegistryNoMatch(t *testing.T) {
	reg := NewRegistry()
	reg.Add("g", func(*lua.LState, []lua.LValue) int { return 0 }, TagNumber)

	_, err := reg.Resolve("g", []lua.LValue{lua.LString("x"), lua.LNumber(1)})
	if !errors.Is(err, ErrNoOverload) {
		t.Fatalf("err = %v, want ErrNoOverload", err)
	}
	if !strings.Contains(err.Error(), "g(string, number)") {
		t.Errorf("error %q does not list the argument types", err)
	}

	if _, err := reg.Resolve("missing", nil); !errors.Is(err, ErrNoOverload) {
		t.Errorf("unregistered name: err = %v", err)
	}
}

func TestRegistryFunctionRaises(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	reg := NewRegistry()
	reg.Add("h", func(L *lua.LState, a []lua.LValue) int {
		L.Push(a[0])
		return 1
	}, TagString)
	L.SetGlobal("h", L.NewFunction(reg.Function("h")))

	if err := L.DoString(`r = h("ok")`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := L.GetGlobal("r").String(); got != "ok" {
		t.Errorf("r = %q, want ok", got)
	}
	err := L.DoString(`h(1)`)
	if err == nil || !strings.Contains(err.Error(), "no matching overload: h(number)") {
		t.Errorf("h(1) error = %v", err)
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	reg.Add("b", nil)
	reg.Add("a", nil)
	reg.Add("b", nil, TagNumber)
	names := reg.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
	if n := len(reg.Overloads("b")); n != 2 {
		t.Errorf("Overloads(b) = %d, want 2", n)
	}
}
