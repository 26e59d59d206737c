package scripting

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	lua "github.com/yuin/gopher-lua"

	"rama/internal/graphics"
	"rama/internal/input"
	"rama/internal/logging"
)

func (b *Bridge) windowModule(L *lua.LState) int {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"SetTitle": func(L *lua.LState) int {
			b.ctx.SetTitle(L.CheckString(1))
			return 0
		},
		"SetSize": func(L *lua.LState) int {
			b.ctx.SetSize(L.CheckInt(1), L.CheckInt(2))
			return 0
		},
		"Quit": func(L *lua.LState) int {
			b.ctx.Quit()
			return 0
		},
		"GetPath": func(L *lua.LState) int {
			L.Push(lua.LString(b.ctx.Path(L.OptString(1, ""))))
			return 1
		},
		"MouseDelta": func(L *lua.LState) int {
			L.Push(pushVec2(L, b.ctx.Input.MouseDelta()))
			return 1
		},
		"MousePos": func(L *lua.LState) int {
			L.Push(pushVec2(L, b.ctx.Input.MousePos()))
			return 1
		},
		"KeyPressed":    b.keyQuery("KeyPressed", b.ctx.Input.KeyPressed),
		"KeyReleased":   b.keyQuery("KeyReleased", b.ctx.Input.KeyReleased),
		"KeyHeld":       b.keyQuery("KeyHeld", b.ctx.Input.KeyHeld),
		"MousePressed":  b.buttonQuery("MousePressed", b.ctx.Input.MousePressed),
		"MouseReleased": b.buttonQuery("MouseReleased", b.ctx.Input.MouseReleased),
		"MouseHeld":     b.buttonQuery("MouseHeld", b.ctx.Input.MouseHeld),
		"LockMouse": func(L *lua.LState) int {
			b.ctx.LockMouse()
			return 0
		},
		"UnlockMouse": func(L *lua.LState) int {
			b.ctx.UnlockMouse()
			return 0
		},
		"SetClearColor": func(L *lua.LState) int {
			b.ctx.SetClearColor(float32(L.CheckNumber(1)), float32(L.CheckNumber(2)), float32(L.CheckNumber(3)))
			return 0
		},
		"GetGameSize": func(L *lua.LState) int {
			L.Push(pushVec2(L, b.ctx.GameSize()))
			return 1
		},
		"SetCamera": func(L *lua.LState) int {
			if L.Get(1) == lua.LNil {
				b.ctx.SetCamera(nil)
				return 0
			}
			cam, ok := L.CheckUserData(1).Value.(graphics.Camera)
			if !ok {
				L.ArgError(1, "camera expected")
			}
			b.ctx.SetCamera(cam)
			return 0
		},
	})
	L.Push(mod)
	return 1
}

// keyQuery adapts a key query to take a key name. Unknown names are a
// binding failure: warning and false.
func (b *Bridge) keyQuery(name string, query func(glfw.Key) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		keyName := L.CheckString(1)
		key, ok := input.KeyFromName(keyName)
		if !ok {
			logging.Warn("window.%s(%q): unknown key", name, keyName)
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(lua.LBool(query(key)))
		return 1
	}
}

func (b *Bridge) buttonQuery(name string, query func(input.Button) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		buttonName := L.CheckString(1)
		button, ok := input.ButtonFromName(buttonName)
		if !ok {
			logging.Warn("window.%s(%q): unknown mouse button", name, buttonName)
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(lua.LBool(query(button)))
		return 1
	}
}
