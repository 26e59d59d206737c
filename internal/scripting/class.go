package scripting

import (
	lua "github.com/yuin/gopher-lua"
)

const typeNameKey = "__name"

// field is a readable and optionally writable property of a userdata type.
type field struct {
	get func(L *lua.LState, ud *lua.LUserData) lua.LValue
	set func(L *lua.LState, ud *lua.LUserData, v lua.LValue)
}

// class describes a userdata type exposed to scripts.
type class struct {
	name    string
	methods map[string]lua.LGFunction
	fields  map[string]field
	// meta holds extra metamethods such as __add or __tostring.
	meta map[string]lua.LGFunction
}

// register installs the metatable for c in the state.
func (c *class) register(L *lua.LState) *lua.LTable {
	mt := L.NewTypeMetatable(c.name)
	mt.RawSetString(typeNameKey, lua.LString(c.name))

	methods := L.NewTable()
	for name, fn := range c.methods {
		methods.RawSetString(name, L.NewFunction(fn))
	}

	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		key := L.CheckString(2)
		if f, ok := c.fields[key]; ok {
			L.Push(f.get(L, ud))
			return 1
		}
		L.Push(methods.RawGetString(key))
		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		key := L.CheckString(2)
		f, ok := c.fields[key]
		if !ok || f.set == nil {
			L.RaiseError("%s.%s is not assignable", c.name, key)
			return 0
		}
		f.set(L, ud, L.Get(3))
		return 0
	}))
	for name, fn := range c.meta {
		L.SetField(mt, name, L.NewFunction(fn))
	}
	return mt
}

// wrap boxes value as userdata of the named type.
func wrap(L *lua.LState, typeName string, value any) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = value
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	return ud
}

// check returns argument n as a T stored in userdata, raising an argument
// error otherwise.
func check[T any](L *lua.LState, n int, typeName string) T {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(T)
	if !ok {
		L.ArgError(n, typeName+" expected")
	}
	return v
}

// unbox extracts a T from an already type-checked value.
func unbox[T any](v lua.LValue) T {
	var zero T
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return zero
	}
	t, _ := ud.Value.(T)
	return t
}

// typeTable builds the script-side type object: a table of static functions
// that is also callable as a constructor.
func typeTable(L *lua.LState, statics map[string]lua.LGFunction, ctor lua.LGFunction) *lua.LTable {
	t := L.NewTable()
	for name, fn := range statics {
		t.RawSetString(name, L.NewFunction(fn))
	}
	if ctor != nil {
		t.RawSetString("new", L.NewFunction(ctor))
		mt := L.NewTable()
		// __call receives the type table first
		mt.RawSetString("__call", L.NewFunction(func(L *lua.LState) int {
			L.Remove(1)
			return ctor(L)
		}))
		L.SetMetatable(t, mt)
	}
	return t
}

func numberField(get func(ud *lua.LUserData) *float32) field {
	return field{
		get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
			return lua.LNumber(*get(ud))
		},
		set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
			n, ok := v.(lua.LNumber)
			if !ok {
				L.ArgError(3, "number expected")
			}
			*get(ud) = float32(n)
		},
	}
}

func args(L *lua.LState) []lua.LValue {
	out := make([]lua.LValue, L.GetTop())
	for i := range out {
		out[i] = L.Get(i + 1)
	}
	return out
}
