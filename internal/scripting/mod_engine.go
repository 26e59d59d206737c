package scripting

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"rama/internal/graphics"
	"rama/internal/logging"
)

var worldAxes = map[string]mgl32.Vec3{
	"WorldForward": graphics.WorldForward,
	"WorldRight":   graphics.WorldRight,
	"WorldUp":      graphics.WorldUp,
}

func (b *Bridge) engineModule(L *lua.LState) int {
	fns := L.NewTable()
	L.SetFuncs(fns, map[string]lua.LGFunction{
		"DeltaTime": func(L *lua.LState) int {
			L.Push(lua.LNumber(b.ctx.DeltaTime()))
			return 1
		},
		"Info": func(L *lua.LState) int {
			logging.Info("%s", L.CheckString(1))
			return 0
		},
		"Warning": func(L *lua.LState) int {
			logging.Warn("%s", L.CheckString(1))
			return 0
		},
		"Error": func(L *lua.LState) int {
			logging.Error("%s", L.CheckString(1))
			return 0
		},
		"GetGlslVersion": func(L *lua.LState) int {
			L.Push(lua.LString(b.ctx.Resources.GLSLVersion))
			return 1
		},
		"SafeNormalize": func(L *lua.LState) int {
			L.Push(pushVec3(L, graphics.SafeNormalize(checkVec3(L, 1))))
			return 1
		},
	})
	L.Push(readOnly(L, "engine", fns, func(L *lua.LState, key string) (lua.LValue, bool) {
		// a fresh copy per read keeps the axes immutable
		v, ok := worldAxes[key]
		if !ok {
			return nil, false
		}
		return pushVec3(L, v), true
	}))
	return 1
}

// readOnly returns an empty proxy table that reads from fields (then from
// dynamic) and rejects every assignment.
func readOnly(L *lua.LState, name string, fields *lua.LTable, dynamic func(*lua.LState, string) (lua.LValue, bool)) *lua.LTable {
	proxy := L.NewTable()
	mt := L.NewTable()
	mt.RawSetString("__index", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(2)
		if v := fields.RawGetString(key); v != lua.LNil {
			L.Push(v)
			return 1
		}
		if dynamic != nil {
			if v, ok := dynamic(L, key); ok {
				L.Push(v)
				return 1
			}
		}
		L.Push(lua.LNil)
		return 1
	}))
	mt.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("%s.%s is read-only", name, L.CheckString(2))
		return 0
	}))
	mt.RawSetString("__metatable", lua.LFalse)
	L.SetMetatable(proxy, mt)
	return proxy
}
