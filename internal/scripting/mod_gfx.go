package scripting

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"rama/internal/graphics"
)

const (
	TagMesh      Tag = "Mesh"
	TagShader    Tag = "Shader"
	TagTexture   Tag = "Texture"
	TagSprite    Tag = "Sprite"
	TagFPSCamera Tag = "FPSCamera"
	TagCamera2D  Tag = "Camera2D"
)

func (b *Bridge) registerResourceTypes() {
	L, reg := b.L, b.registry
	res := b.ctx.Resources

	reg.Add("Shader.uniform", func(L *lua.LState, a []lua.LValue) int {
		unbox[*graphics.Shader](a[0]).SetMat4(string(a[1].(lua.LString)), unbox[mgl32.Mat4](a[2]))
		return 0
	}, TagShader, TagString, TagMat4)
	reg.Add("Shader.uniform", func(L *lua.LState, a []lua.LValue) int {
		unbox[*graphics.Shader](a[0]).SetVec3(string(a[1].(lua.LString)), unbox[mgl32.Vec3](a[2]))
		return 0
	}, TagShader, TagString, TagVec3)
	reg.Add("Shader.uniform", func(L *lua.LState, a []lua.LValue) int {
		unbox[*graphics.Shader](a[0]).SetVec2(string(a[1].(lua.LString)), unbox[mgl32.Vec2](a[2]))
		return 0
	}, TagShader, TagString, TagVec2)
	reg.Add("Shader.uniform", func(L *lua.LState, a []lua.LValue) int {
		unbox[*graphics.Shader](a[0]).SetFloat(string(a[1].(lua.LString)), float32(a[2].(lua.LNumber)))
		return 0
	}, TagShader, TagString, TagNumber)
	reg.Add("Shader.uniform", func(L *lua.LState, a []lua.LValue) int {
		unbox[*graphics.Shader](a[0]).SetTexture(string(a[1].(lua.LString)), unbox[*graphics.Texture](a[2]))
		return 0
	}, TagShader, TagString, TagTexture)

	shader := &class{
		name: string(TagShader),
		methods: map[string]lua.LGFunction{
			"bind": func(L *lua.LState) int {
				check[*graphics.Shader](L, 1, string(TagShader)).Bind()
				return 0
			},
			"use_camera": func(L *lua.LState) int {
				L.Push(lua.LBool(b.ctx.ApplyCamera(check[*graphics.Shader](L, 1, string(TagShader)))))
				return 1
			},
			"destroy": func(L *lua.LState) int {
				check[*graphics.Shader](L, 1, string(TagShader)).Destroy()
				return 0
			},
			"uniform": reg.Function("Shader.uniform"),
		},
		fields: map[string]field{
			"linked": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LBool(ud.Value.(*graphics.Shader).Linked)
			}},
		},
	}

	texture := &class{
		name: string(TagTexture),
		methods: map[string]lua.LGFunction{
			"bind": func(L *lua.LState) int {
				check[*graphics.Texture](L, 1, string(TagTexture)).Bind(L.OptInt(2, 0))
				return 0
			},
			"destroy": func(L *lua.LState) int {
				check[*graphics.Texture](L, 1, string(TagTexture)).Destroy()
				return 0
			},
			"valid": func(L *lua.LState) int {
				L.Push(lua.LBool(check[*graphics.Texture](L, 1, string(TagTexture)).Valid()))
				return 1
			},
		},
		fields: map[string]field{
			"path": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LString(ud.Value.(*graphics.Texture).Path)
			}},
			"width": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LNumber(ud.Value.(*graphics.Texture).Width)
			}},
			"height": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LNumber(ud.Value.(*graphics.Texture).Height)
			}},
			"unit": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LNumber(ud.Value.(*graphics.Texture).Unit)
			}},
		},
	}

	mesh := &class{
		name: string(TagMesh),
		methods: map[string]lua.LGFunction{
			"draw": func(L *lua.LState) int {
				check[*graphics.Mesh](L, 1, string(TagMesh)).Draw()
				return 0
			},
			"destroy": func(L *lua.LState) int {
				check[*graphics.Mesh](L, 1, string(TagMesh)).Destroy()
				return 0
			},
		},
		fields: map[string]field{
			"count": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LNumber(ud.Value.(*graphics.Mesh).IndexCount)
			}},
		},
	}

	sprite := &class{
		name: string(TagSprite),
		methods: map[string]lua.LGFunction{
			"draw": func(L *lua.LState) int {
				check[*graphics.Sprite](L, 1, string(TagSprite)).Draw()
				return 0
			},
			"destroy": func(L *lua.LState) int {
				check[*graphics.Sprite](L, 1, string(TagSprite)).Destroy()
				return 0
			},
			"frame": func(L *lua.LState) int {
				s := check[*graphics.Sprite](L, 1, string(TagSprite))
				L.Push(lua.LNumber(s.FrameAt(L.CheckString(2), float32(L.CheckNumber(3)))))
				return 1
			},
		},
		fields: map[string]field{
			"pos": {
				get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
					return pushVec2(L, ud.Value.(*graphics.Sprite).Pos)
				},
				set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
					ud.Value.(*graphics.Sprite).Pos = checkVec2(L, 3)
				},
			},
			"scale": {
				get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
					return pushVec2(L, ud.Value.(*graphics.Sprite).Scale)
				},
				set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
					ud.Value.(*graphics.Sprite).Scale = checkVec2(L, 3)
				},
			},
		},
	}

	fpsCamera := &class{
		name:    string(TagFPSCamera),
		methods: cameraMethods(string(TagFPSCamera), b),
		fields: map[string]field{
			"pos": {
				get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
					return pushVec3(L, ud.Value.(*graphics.FPSCamera).Pos)
				},
				set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
					ud.Value.(*graphics.FPSCamera).Pos = checkVec3(L, 3)
				},
			},
			"pitch": numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).Pitch }),
			"yaw":   numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).Yaw }),
			"roll":  numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).Roll }),
			"fov":   numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).FOV }),
			"near":  numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).Near }),
			"far":   numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.FPSCamera).Far }),
		},
	}

	camera2D := &class{
		name:    string(TagCamera2D),
		methods: cameraMethods(string(TagCamera2D), b),
		fields: map[string]field{
			"pos": {
				get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
					return pushVec2(L, ud.Value.(*graphics.Camera2D).Pos)
				},
				set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
					ud.Value.(*graphics.Camera2D).Pos = checkVec2(L, 3)
				},
			},
			"zoom": numberField(func(ud *lua.LUserData) *float32 { return &ud.Value.(*graphics.Camera2D).Zoom }),
		},
	}

	for _, c := range []*class{shader, texture, mesh, sprite, fpsCamera, camera2D} {
		c.register(L)
	}

	b.types[TagShader] = typeTable(L, map[string]lua.LGFunction{
		"load": func(L *lua.LState) int {
			s, err := res.LoadShader(b.ctx.Path(L.CheckString(1)))
			L.Push(wrap(L, string(TagShader), s))
			if err != nil {
				L.Push(lua.LString(err.Error()))
				return 2
			}
			return 1
		},
		"make": func(L *lua.LState) int {
			s, _ := res.NewShader(L.CheckString(1), L.CheckString(2))
			L.Push(wrap(L, string(TagShader), s))
			return 1
		},
		"make_with_version": func(L *lua.LState) int {
			s, _ := res.NewShaderWithVersion("", L.CheckString(1), L.CheckString(2))
			L.Push(wrap(L, string(TagShader), s))
			return 1
		},
	}, nil)

	b.types[TagTexture] = typeTable(L, map[string]lua.LGFunction{
		"make": func(L *lua.LState) int {
			// a failed load still yields a texture; scripts check valid()
			t, _ := res.LoadTexture(b.ctx.Path(L.CheckString(1)))
			L.Push(wrap(L, string(TagTexture), t))
			return 1
		},
	}, nil)

	b.types[TagMesh] = typeTable(L, map[string]lua.LGFunction{
		"load": func(L *lua.LState) int {
			m, err := res.LoadMesh(b.ctx.Path(L.CheckString(1)))
			if err != nil {
				L.Push(lua.LNil)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			L.Push(wrap(L, string(TagMesh), m))
			return 1
		},
		"make": func(L *lua.LState) int {
			data := graphics.MeshData{
				Positions:  vec3List(L, 1),
				UVs:        vec2List(L, 2),
				Normals:    vec3List(L, 3),
				Tangents:   vec3List(L, 4),
				Bitangents: vec3List(L, 5),
				Indices:    indexList(L, 6),
			}
			L.Push(wrap(L, string(TagMesh), res.NewMesh("script", data)))
			return 1
		},
	}, nil)

	b.types[TagSprite] = typeTable(L, map[string]lua.LGFunction{
		"make": func(L *lua.LState) int {
			s, err := res.LoadSprite(b.ctx.Path(L.CheckString(1)))
			if err != nil {
				L.Push(lua.LNil)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			L.Push(wrap(L, string(TagSprite), s))
			return 1
		},
	}, nil)

	b.types[TagFPSCamera] = typeTable(L, nil, func(L *lua.LState) int {
		L.Push(wrap(L, string(TagFPSCamera), graphics.NewFPSCamera()))
		return 1
	})
	b.types[TagCamera2D] = typeTable(L, nil, func(L *lua.LState) int {
		L.Push(wrap(L, string(TagCamera2D), graphics.NewCamera2D()))
		return 1
	})
}

func cameraMethods(typeName string, b *Bridge) map[string]lua.LGFunction {
	cam := func(L *lua.LState) graphics.Camera {
		c, ok := L.CheckUserData(1).Value.(graphics.Camera)
		if !ok {
			L.ArgError(1, typeName+" expected")
		}
		return c
	}
	return map[string]lua.LGFunction{
		"GetView": func(L *lua.LState) int {
			L.Push(pushMat4(L, cam(L).View()))
			return 1
		},
		"GetPerspective": func(L *lua.LState) int {
			L.Push(pushMat4(L, cam(L).Perspective(b.ctx.Viewport())))
			return 1
		},
		"GetForward": func(L *lua.LState) int {
			L.Push(pushVec3(L, cam(L).Forward()))
			return 1
		},
		"GetRight": func(L *lua.LState) int {
			L.Push(pushVec3(L, cam(L).Right()))
			return 1
		},
		"GetUp": func(L *lua.LState) int {
			L.Push(pushVec3(L, cam(L).Up()))
			return 1
		},
		"update": func(L *lua.LState) int {
			cam(L).Update()
			return 0
		},
	}
}

func listArg(L *lua.LState, n int) *lua.LTable {
	if L.Get(n) == lua.LNil {
		return L.NewTable()
	}
	return L.CheckTable(n)
}

func vec3List(L *lua.LState, n int) []mgl32.Vec3 {
	t := listArg(L, n)
	out := make([]mgl32.Vec3, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		v := t.RawGetInt(i)
		if TagOf(v) != TagVec3 {
			L.ArgError(n, "list of Vec3f expected")
		}
		out = append(out, unbox[mgl32.Vec3](v))
	}
	return out
}

func vec2List(L *lua.LState, n int) []mgl32.Vec2 {
	t := listArg(L, n)
	out := make([]mgl32.Vec2, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		v := t.RawGetInt(i)
		if TagOf(v) != TagVec2 {
			L.ArgError(n, "list of Vec2f expected")
		}
		out = append(out, unbox[mgl32.Vec2](v))
	}
	return out
}

func indexList(L *lua.LState, n int) []uint32 {
	t := listArg(L, n)
	out := make([]uint32, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		v, ok := t.RawGetInt(i).(lua.LNumber)
		if !ok || v < 0 {
			L.ArgError(n, "list of indices expected")
		}
		out = append(out, uint32(v))
	}
	return out
}

func (b *Bridge) gfxModule(L *lua.LState) int {
	mod := L.NewTable()
	for _, tag := range []Tag{TagMesh, TagShader, TagTexture, TagSprite, TagFPSCamera, TagCamera2D, TagVec3, TagVec2, TagMat4} {
		mod.RawSetString(string(tag), b.types[tag])
	}
	mod.RawSetString("DrawLine", L.NewFunction(func(L *lua.LState) int {
		b.warnOnce("gfx.DrawLine", "gfx.DrawLine is not implemented, calls are ignored")
		return 0
	}))
	L.Push(mod)
	return 1
}
