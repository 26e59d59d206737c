package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"rama/internal/physics/physics2d"
	"rama/internal/physics/physics3d"
)

const (
	TagBody2D    Tag = "Body2D"
	TagShape     Tag = "Shape"
	TagRigidbody Tag = "Rigidbody"
	TagCharacter Tag = "CharacterController"
)

// raiseOn turns a Go error into a script error.
func raiseOn(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

func (b *Bridge) registerPhysicsTypes() {
	L := b.L

	body2D := func(L *lua.LState) *physics2d.Body {
		return check[*physics2d.Body](L, 1, string(TagBody2D))
	}
	(&class{
		name: string(TagBody2D),
		methods: map[string]lua.LGFunction{
			"GetPos": func(L *lua.LState) int {
				L.Push(pushVec2(L, body2D(L).Position()))
				return 1
			},
			"SetPos": func(L *lua.LState) int {
				raiseOn(L, body2D(L).SetPosition(checkVec2(L, 2)))
				return 0
			},
			"GetVelocity": func(L *lua.LState) int {
				L.Push(pushVec2(L, body2D(L).Velocity()))
				return 1
			},
			"SetVelocity": func(L *lua.LState) int {
				raiseOn(L, body2D(L).SetVelocity(checkVec2(L, 2)))
				return 0
			},
			"SetFriction": func(L *lua.LState) int {
				raiseOn(L, body2D(L).SetFriction(float64(L.CheckNumber(2))))
				return 0
			},
			"Destroy": func(L *lua.LState) int {
				body2D(L).Destroy()
				return 0
			},
		},
	}).register(L)

	shape := func(L *lua.LState, n int) *physics3d.Shape {
		return check[*physics3d.Shape](L, n, string(TagShape))
	}
	(&class{
		name: string(TagShape),
		methods: map[string]lua.LGFunction{
			"Release": func(L *lua.LState) int {
				shape(L, 1).Release()
				return 0
			},
		},
		fields: map[string]field{
			"refs": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return lua.LNumber(ud.Value.(*physics3d.Shape).Refs())
			}},
			"scale": {get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
				return pushVec3(L, ud.Value.(*physics3d.Shape).Scale)
			}},
		},
	}).register(L)

	rigidbody := func(L *lua.LState) *physics3d.Rigidbody {
		return check[*physics3d.Rigidbody](L, 1, string(TagRigidbody))
	}
	(&class{
		name: string(TagRigidbody),
		methods: map[string]lua.LGFunction{
			"GetMatrix": func(L *lua.LState) int {
				L.Push(pushMat4(L, rigidbody(L).Matrix()))
				return 1
			},
			"GetPos": func(L *lua.LState) int {
				L.Push(pushVec3(L, rigidbody(L).Position()))
				return 1
			},
			"SetPos": func(L *lua.LState) int {
				rigidbody(L).SetPosition(checkVec3(L, 2))
				return 0
			},
			"GetVelocity": func(L *lua.LState) int {
				L.Push(pushVec3(L, rigidbody(L).Velocity()))
				return 1
			},
			"SetVelocity": func(L *lua.LState) int {
				rigidbody(L).SetVelocity(checkVec3(L, 2))
				return 0
			},
			"SetSize": func(L *lua.LState) int {
				rigidbody(L).SetSize(checkVec3(L, 2))
				return 0
			},
			"SetFriction": func(L *lua.LState) int {
				rigidbody(L).SetFriction(float32(L.CheckNumber(2)))
				return 0
			},
			"IsValid": func(L *lua.LState) int {
				L.Push(lua.LBool(rigidbody(L).Valid()))
				return 1
			},
			"Destroy": func(L *lua.LState) int {
				r := rigidbody(L)
				if r.Valid() {
					delete(b.rigidbodies, r.ID())
				}
				r.Destroy()
				return 0
			},
		},
	}).register(L)

	character := func(L *lua.LState) *physics3d.CharacterController {
		return check[*physics3d.CharacterController](L, 1, string(TagCharacter))
	}
	(&class{
		name: string(TagCharacter),
		methods: map[string]lua.LGFunction{
			"MoveAndSlide": func(L *lua.LState) int {
				character(L).MoveAndSlide(checkVec3(L, 2), b.ctx.DeltaTime())
				return 0
			},
			"SetPos": func(L *lua.LState) int {
				character(L).SetPosition(checkVec3(L, 2))
				return 0
			},
			"IsGrounded": func(L *lua.LState) int {
				L.Push(lua.LBool(character(L).IsGrounded()))
				return 1
			},
			"GetVelocity": func(L *lua.LState) int {
				L.Push(pushVec3(L, character(L).Velocity()))
				return 1
			},
			"Destroy": func(L *lua.LState) int {
				character(L).Destroy()
				return 0
			},
		},
		fields: map[string]field{
			"pos": {
				get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
					return pushVec3(L, ud.Value.(*physics3d.CharacterController).Pos)
				},
				set: func(L *lua.LState, ud *lua.LUserData, v lua.LValue) {
					ud.Value.(*physics3d.CharacterController).SetPosition(checkVec3(L, 3))
				},
			},
		},
	}).register(L)

	b.types[TagBody2D] = typeTable(L, map[string]lua.LGFunction{
		"Box": func(L *lua.LState) int {
			body, err := b.ctx.Physics2D.NewBox(
				float64(L.CheckNumber(1)), float64(L.CheckNumber(2)),
				checkVec2(L, 3), L.OptBool(4, false))
			raiseOn(L, err)
			L.Push(wrap(L, string(TagBody2D), body))
			return 1
		},
	}, nil)

	b.types[TagShape] = typeTable(L, map[string]lua.LGFunction{
		"Cube": func(L *lua.LState) int {
			L.Push(wrap(L, string(TagShape), physics3d.Cube(checkVec3(L, 1))))
			return 1
		},
		"Box": func(L *lua.LState) int {
			L.Push(wrap(L, string(TagShape), physics3d.NewBox(checkVec3(L, 1))))
			return 1
		},
		"Capsule": func(L *lua.LState) int {
			s := physics3d.NewCapsule(float32(L.CheckNumber(1)), float32(L.CheckNumber(2)))
			L.Push(wrap(L, string(TagShape), s))
			return 1
		},
	}, nil)

	b.types[TagRigidbody] = typeTable(L, map[string]lua.LGFunction{
		"Make": func(L *lua.LState) int {
			r, err := b.ctx.Physics3D.NewRigidbody(shape(L, 1), checkVec3(L, 2), L.OptBool(3, false))
			raiseOn(L, err)
			ud := wrap(L, string(TagRigidbody), r)
			b.rigidbodies[r.ID()] = ud
			L.Push(ud)
			return 1
		},
	}, nil)

	b.types[TagCharacter] = typeTable(L, map[string]lua.LGFunction{
		"Make": func(L *lua.LState) int {
			c, err := b.ctx.Physics3D.NewCharacterController(checkVec3(L, 1))
			raiseOn(L, err)
			L.Push(wrap(L, string(TagCharacter), c))
			return 1
		},
	}, nil)
}

// worldUpdate steps a world by the frame delta and returns the step count.
func (b *Bridge) worldUpdate(update func(float32) (int, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		n, err := update(b.ctx.DeltaTime())
		raiseOn(L, err)
		L.Push(lua.LNumber(n))
		return 1
	}
}

func (b *Bridge) physics2dModule(L *lua.LState) int {
	w := b.ctx.Physics2D
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"Init": func(L *lua.LState) int {
			raiseOn(L, w.Init())
			return 0
		},
		"Shutdown": func(L *lua.LState) int {
			raiseOn(L, w.Shutdown())
			return 0
		},
		"Update": b.worldUpdate(w.Update),
	})
	mod.RawSetString("Body", b.types[TagBody2D])
	L.Push(mod)
	return 1
}

func (b *Bridge) physics3dModule(L *lua.LState) int {
	w := b.ctx.Physics3D
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"Init": func(L *lua.LState) int {
			raiseOn(L, w.Init())
			return 0
		},
		"Shutdown": func(L *lua.LState) int {
			clear(b.rigidbodies)
			raiseOn(L, w.Shutdown())
			return 0
		},
		"Update": b.worldUpdate(w.Update),
		"CastRay": func(L *lua.LState) int {
			hit, ok := w.CastRay(checkVec3(L, 1), checkVec3(L, 2), float32(L.OptNumber(3, 1000)))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			t := L.NewTable()
			if ud, ok := b.rigidbodies[hit.Body]; ok {
				t.RawSetString("body", ud)
			}
			t.RawSetString("point", pushVec3(L, hit.Point))
			t.RawSetString("normal", pushVec3(L, hit.Normal))
			t.RawSetString("distance", lua.LNumber(hit.Distance))
			L.Push(t)
			return 1
		},
	})
	for name, tag := range map[string]Tag{
		"Shape":               TagShape,
		"Rigidbody":           TagRigidbody,
		"CharacterController": TagCharacter,
	} {
		mod.RawSetString(name, b.types[tag])
	}
	L.Push(mod)
	return 1
}
