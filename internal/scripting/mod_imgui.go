package scripting

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"rama/internal/ui"
)

// inputTextMultiline marks InputText calls made through InputTextMultiline.
const inputTextMultiline = 1 << 30

func str(v lua.LValue) string          { return string(v.(lua.LString)) }
func num(v lua.LValue) float32         { return float32(v.(lua.LNumber)) }
func flag(v lua.LValue) ui.WindowFlags { return ui.WindowFlags(v.(lua.LNumber)) }

func (b *Bridge) registerWidgets() {
	reg, w := b.registry, b.widgets
	push := func(L *lua.LState, v lua.LValue) int {
		L.Push(v)
		return 1
	}

	reg.Add("Begin", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.Begin(str(a[0]), 0)))
	}, TagString)
	reg.Add("Begin", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.Begin(str(a[0]), flag(a[1]))))
	}, TagString, TagNumber)

	reg.Add("BeginChild", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.BeginChild(str(a[0]), mgl32.Vec2{}, 0)))
	}, TagString)
	reg.Add("BeginChild", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.BeginChild(str(a[0]), unbox[mgl32.Vec2](a[1]), 0)))
	}, TagString, TagVec2)
	reg.Add("BeginChild", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.BeginChild(str(a[0]), unbox[mgl32.Vec2](a[1]), flag(a[2]))))
	}, TagString, TagVec2, TagNumber)

	reg.Add("SameLine", func(L *lua.LState, _ []lua.LValue) int {
		w.SameLine(0, -1)
		return 0
	})
	reg.Add("SameLine", func(L *lua.LState, a []lua.LValue) int {
		w.SameLine(num(a[0]), -1)
		return 0
	}, TagNumber)
	reg.Add("SameLine", func(L *lua.LState, a []lua.LValue) int {
		w.SameLine(num(a[0]), num(a[1]))
		return 0
	}, TagNumber, TagNumber)

	reg.Add("Button", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.Button(str(a[0]), mgl32.Vec2{})))
	}, TagString)
	reg.Add("Button", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.Button(str(a[0]), unbox[mgl32.Vec2](a[1]))))
	}, TagString, TagVec2)

	// DragFloat returns the possibly edited value followed by whether it
	// changed this frame.
	dragFloat := func(L *lua.LState, a []lua.LValue, speed, min, max float32) int {
		values := []float32{num(a[1])}
		changed := w.DragFloat(str(a[0]), values, speed, min, max)
		L.Push(lua.LNumber(values[0]))
		L.Push(lua.LBool(changed))
		return 2
	}
	reg.Add("DragFloat", func(L *lua.LState, a []lua.LValue) int {
		return dragFloat(L, a, 1, 0, 0)
	}, TagString, TagNumber)
	reg.Add("DragFloat", func(L *lua.LState, a []lua.LValue) int {
		return dragFloat(L, a, num(a[2]), 0, 0)
	}, TagString, TagNumber, TagNumber)
	reg.Add("DragFloat", func(L *lua.LState, a []lua.LValue) int {
		return dragFloat(L, a, num(a[2]), num(a[3]), num(a[4]))
	}, TagString, TagNumber, TagNumber, TagNumber, TagNumber)

	dragVector := func(tag Tag) func(L *lua.LState, a []lua.LValue, speed, min, max float32) int {
		return func(L *lua.LState, a []lua.LValue, speed, min, max float32) int {
			values := components(a[1])
			changed := w.DragFloat(str(a[0]), values, speed, min, max)
			L.Push(pushComponents(L, tag, values))
			L.Push(lua.LBool(changed))
			return 2
		}
	}
	for name, tag := range map[string]Tag{"DragFloat2": TagVec2, "DragFloat3": TagVec3} {
		drag := dragVector(tag)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			return drag(L, a, 1, 0, 0)
		}, TagString, tag)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			return drag(L, a, num(a[2]), 0, 0)
		}, TagString, tag, TagNumber)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			return drag(L, a, num(a[2]), num(a[3]), num(a[4]))
		}, TagString, tag, TagNumber, TagNumber, TagNumber)
	}

	reg.Add("BeginMenu", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.BeginMenu(str(a[0]), true)))
	}, TagString)
	reg.Add("BeginMenu", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.BeginMenu(str(a[0]), bool(a[1].(lua.LBool)))))
	}, TagString, TagBool)

	reg.Add("MenuItem", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.MenuItem(str(a[0]), "", false)))
	}, TagString)
	reg.Add("MenuItem", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.MenuItem(str(a[0]), str(a[1]), false)))
	}, TagString, TagString)
	reg.Add("MenuItem", func(L *lua.LState, a []lua.LValue) int {
		return push(L, lua.LBool(w.MenuItem(str(a[0]), str(a[1]), bool(a[2].(lua.LBool)))))
	}, TagString, TagString, TagBool)

	for name, extra := range map[string]int{"InputText": 0, "InputTextMultiline": inputTextMultiline} {
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			return push(L, lua.LString(w.InputText(str(a[0]), str(a[1]), extra)))
		}, TagString, TagString)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			return push(L, lua.LString(w.InputText(str(a[0]), str(a[1]), int(a[2].(lua.LNumber))|extra)))
		}, TagString, TagString, TagNumber)
	}
}

func (b *Bridge) imguiModule(L *lua.LState) int {
	w := b.widgets

	fns := map[string]lua.LGFunction{
		"ShowDemoWindow": func(L *lua.LState) int {
			w.ShowDemoWindow()
			return 0
		},
		"ShowMetricsWindow": func(L *lua.LState) int {
			w.ShowMetricsWindow()
			return 0
		},
		"ShowAboutWindow": func(L *lua.LState) int {
			w.ShowAboutWindow()
			return 0
		},
		"ShowUserGuide": func(L *lua.LState) int {
			w.ShowUserGuide()
			return 0
		},
		"GetVersion": func(L *lua.LState) int {
			L.Push(lua.LString(w.Version()))
			return 1
		},
		"StyleColorsDark": func(L *lua.LState) int {
			w.StyleColors(ui.StyleDark)
			return 0
		},
		"StyleColorsLight": func(L *lua.LState) int {
			w.StyleColors(ui.StyleLight)
			return 0
		},
		"StyleColorsClassic": func(L *lua.LState) int {
			w.StyleColors(ui.StyleClassic)
			return 0
		},
		"End": func(L *lua.LState) int {
			w.End()
			return 0
		},
		"EndChild": func(L *lua.LState) int {
			w.EndChild()
			return 0
		},
		"Text": func(L *lua.LState) int {
			w.Text(L.CheckString(1))
			return 0
		},
		"SmallButton": func(L *lua.LState) int {
			L.Push(lua.LBool(w.SmallButton(L.CheckString(1))))
			return 1
		},
		"Checkbox": func(L *lua.LState) int {
			L.Push(lua.LBool(w.Checkbox(L.CheckString(1), L.CheckBool(2))))
			return 1
		},
		"Bullet": func(L *lua.LState) int {
			w.Bullet()
			return 0
		},
		"Separator": func(L *lua.LState) int {
			w.Separator()
			return 0
		},
		"NewLine": func(L *lua.LState) int {
			w.NewLine()
			return 0
		},
		"Spacing": func(L *lua.LState) int {
			w.Spacing()
			return 0
		},
		"BeginMenuBar": func(L *lua.LState) int {
			L.Push(lua.LBool(w.BeginMainMenuBar()))
			return 1
		},
		"EndMenuBar": func(L *lua.LState) int {
			w.EndMainMenuBar()
			return 0
		},
		"EndMenu": func(L *lua.LState) int {
			w.EndMenu()
			return 0
		},
		"CapturedMouse": func(L *lua.LState) int {
			c, ok := w.(interface{ WantCaptureMouse() bool })
			L.Push(lua.LBool(ok && c.WantCaptureMouse()))
			return 1
		},
		"CapturedKeyboard": func(L *lua.LState) int {
			c, ok := w.(interface{ WantCaptureKeyboard() bool })
			L.Push(lua.LBool(ok && c.WantCaptureKeyboard()))
			return 1
		},
	}
	// older scripts use the misspelled name
	fns["Seperator"] = fns["Separator"]

	for _, name := range []string{
		"Begin", "BeginChild", "SameLine", "Button", "DragFloat", "DragFloat2", "DragFloat3",
		"BeginMenu", "MenuItem", "InputText", "InputTextMultiline",
	} {
		fns[name] = b.registry.Function(name)
	}

	mod := L.NewTable()
	for name, fn := range fns {
		mod.RawSetString(name, L.NewFunction(fn))
	}

	window := L.NewTable()
	for _, name := range ui.WindowFlagNames() {
		f, _ := ui.WindowFlag(name)
		window.RawSetString(name, lua.LNumber(f))
	}
	flags := L.NewTable()
	flags.RawSetString("window", window)
	mod.RawSetString("flags", flags)

	L.Push(mod)
	return 1
}
