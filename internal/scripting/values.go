package scripting

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"

	"rama/internal/graphics"
)

// Vectors and matrices cross the boundary by value: native code always
// receives a copy and every operator returns a new userdata.

func pushVec2(L *lua.LState, v mgl32.Vec2) *lua.LUserData { return wrap(L, string(TagVec2), v) }
func pushVec3(L *lua.LState, v mgl32.Vec3) *lua.LUserData { return wrap(L, string(TagVec3), v) }
func pushMat4(L *lua.LState, m mgl32.Mat4) *lua.LUserData { return wrap(L, string(TagMat4), m) }

func checkVec2(L *lua.LState, n int) mgl32.Vec2 { return check[mgl32.Vec2](L, n, string(TagVec2)) }
func checkVec3(L *lua.LState, n int) mgl32.Vec3 { return check[mgl32.Vec3](L, n, string(TagVec3)) }
func checkMat4(L *lua.LState, n int) mgl32.Mat4 { return check[mgl32.Mat4](L, n, string(TagMat4)) }

func components(v lua.LValue) []float32 {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil
	}
	switch x := ud.Value.(type) {
	case mgl32.Vec2:
		return x[:]
	case mgl32.Vec3:
		return x[:]
	}
	return nil
}

func pushComponents(L *lua.LState, tag Tag, c []float32) lua.LValue {
	if tag == TagVec2 {
		return pushVec2(L, mgl32.Vec2{c[0], c[1]})
	}
	return pushVec3(L, mgl32.Vec3{c[0], c[1], c[2]})
}

var arithmetic = map[string]func(a, b float32) float32{
	"__add": func(a, b float32) float32 { return a + b },
	"__sub": func(a, b float32) float32 { return a - b },
	"__mul": func(a, b float32) float32 { return a * b },
	"__div": func(a, b float32) float32 { return a / b },
}

// registerVectorOps adds component-wise and scalar-broadcast overloads of
// the arithmetic metamethods for a vector type.
func registerVectorOps(reg *Registry, tag Tag) {
	for op, f := range arithmetic {
		name := string(tag) + "." + op
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			x, y := components(a[0]), components(a[1])
			out := make([]float32, len(x))
			for i := range x {
				out[i] = f(x[i], y[i])
			}
			L.Push(pushComponents(L, tag, out))
			return 1
		}, tag, tag)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			x, s := components(a[0]), float32(a[1].(lua.LNumber))
			out := make([]float32, len(x))
			for i := range x {
				out[i] = f(x[i], s)
			}
			L.Push(pushComponents(L, tag, out))
			return 1
		}, tag, TagNumber)
		reg.Add(name, func(L *lua.LState, a []lua.LValue) int {
			s, y := float32(a[0].(lua.LNumber)), components(a[1])
			out := make([]float32, len(y))
			for i := range y {
				out[i] = f(s, y[i])
			}
			L.Push(pushComponents(L, tag, out))
			return 1
		}, TagNumber, tag)
	}
}

func vectorMeta(reg *Registry, tag Tag) map[string]lua.LGFunction {
	meta := map[string]lua.LGFunction{}
	for op := range arithmetic {
		meta[op] = reg.Function(string(tag) + "." + op)
	}
	meta["__unm"] = func(L *lua.LState) int {
		c := components(L.Get(1))
		out := make([]float32, len(c))
		for i := range c {
			out[i] = -c[i]
		}
		L.Push(pushComponents(L, tag, out))
		return 1
	}
	meta["__eq"] = func(L *lua.LState) int {
		a, b := components(L.Get(1)), components(L.Get(2))
		eq := len(a) == len(b)
		for i := 0; eq && i < len(a); i++ {
			eq = a[i] == b[i]
		}
		L.Push(lua.LBool(eq))
		return 1
	}
	meta["__tostring"] = func(L *lua.LState) int {
		c := components(L.Get(1))
		s := string(tag) + "("
		for i, v := range c {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%g", v)
		}
		L.Push(lua.LString(s + ")"))
		return 1
	}
	return meta
}

func componentField[V mgl32.Vec2 | mgl32.Vec3](i int) field {
	return field{
		get: func(L *lua.LState, ud *lua.LUserData) lua.LValue {
			v := ud.Value.(V)
			return lua.LNumber(v[i])
		},
		set: func(L *lua.LState, ud *lua.LUserData, val lua.LValue) {
			n, ok := val.(lua.LNumber)
			if !ok {
				L.ArgError(3, "number expected")
			}
			v := ud.Value.(V)
			v[i] = float32(n)
			ud.Value = v
		},
	}
}

func length(c []float32) float32 {
	var sum float64
	for _, v := range c {
		sum += float64(v) * float64(v)
	}
	return float32(math.Sqrt(sum))
}

func (b *Bridge) registerValueTypes() {
	L, reg := b.L, b.registry

	registerVectorOps(reg, TagVec2)
	registerVectorOps(reg, TagVec3)

	reg.Add("Vec2f.new", func(L *lua.LState, _ []lua.LValue) int {
		L.Push(pushVec2(L, mgl32.Vec2{}))
		return 1
	})
	reg.Add("Vec2f.new", func(L *lua.LState, a []lua.LValue) int {
		s := float32(a[0].(lua.LNumber))
		L.Push(pushVec2(L, mgl32.Vec2{s, s}))
		return 1
	}, TagNumber)
	reg.Add("Vec2f.new", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushVec2(L, mgl32.Vec2{float32(a[0].(lua.LNumber)), float32(a[1].(lua.LNumber))}))
		return 1
	}, TagNumber, TagNumber)
	reg.Add("Vec2f.new", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushVec2(L, unbox[mgl32.Vec2](a[0])))
		return 1
	}, TagVec2)

	reg.Add("Vec3f.new", func(L *lua.LState, _ []lua.LValue) int {
		L.Push(pushVec3(L, mgl32.Vec3{}))
		return 1
	})
	reg.Add("Vec3f.new", func(L *lua.LState, a []lua.LValue) int {
		s := float32(a[0].(lua.LNumber))
		L.Push(pushVec3(L, mgl32.Vec3{s, s, s}))
		return 1
	}, TagNumber)
	reg.Add("Vec3f.new", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushVec3(L, mgl32.Vec3{
			float32(a[0].(lua.LNumber)), float32(a[1].(lua.LNumber)), float32(a[2].(lua.LNumber)),
		}))
		return 1
	}, TagNumber, TagNumber, TagNumber)
	reg.Add("Vec3f.new", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushVec3(L, unbox[mgl32.Vec3](a[0])))
		return 1
	}, TagVec3)

	reg.Add("Mat4.new", func(L *lua.LState, _ []lua.LValue) int {
		L.Push(pushMat4(L, mgl32.Ident4()))
		return 1
	})
	reg.Add("Mat4.new", func(L *lua.LState, a []lua.LValue) int {
		d := float32(a[0].(lua.LNumber))
		L.Push(pushMat4(L, mgl32.Diag4(mgl32.Vec4{d, d, d, d})))
		return 1
	}, TagNumber)

	reg.Add("Mat4.__mul", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushMat4(L, unbox[mgl32.Mat4](a[0]).Mul4(unbox[mgl32.Mat4](a[1]))))
		return 1
	}, TagMat4, TagMat4)
	reg.Add("Mat4.__mul", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushVec3(L, mgl32.TransformCoordinate(unbox[mgl32.Vec3](a[1]), unbox[mgl32.Mat4](a[0]))))
		return 1
	}, TagMat4, TagVec3)
	reg.Add("Mat4.__mul", func(L *lua.LState, a []lua.LValue) int {
		L.Push(pushMat4(L, unbox[mgl32.Mat4](a[0]).Mul(float32(a[1].(lua.LNumber)))))
		return 1
	}, TagMat4, TagNumber)

	vec2 := &class{
		name: string(TagVec2),
		methods: map[string]lua.LGFunction{
			"length": func(L *lua.LState) int {
				v := checkVec2(L, 1)
				L.Push(lua.LNumber(v.Len()))
				return 1
			},
			"normalize": func(L *lua.LState) int {
				v := checkVec2(L, 1)
				if l := v.Len(); l > 0 {
					v = v.Mul(1 / l)
				} else {
					v = mgl32.Vec2{}
				}
				L.Push(pushVec2(L, v))
				return 1
			},
			"dot": func(L *lua.LState) int {
				L.Push(lua.LNumber(checkVec2(L, 1).Dot(checkVec2(L, 2))))
				return 1
			},
		},
		fields: map[string]field{
			"x": componentField[mgl32.Vec2](0),
			"y": componentField[mgl32.Vec2](1),
		},
		meta: vectorMeta(reg, TagVec2),
	}
	vec3 := &class{
		name: string(TagVec3),
		methods: map[string]lua.LGFunction{
			"length": func(L *lua.LState) int {
				L.Push(lua.LNumber(length(components(L.Get(1)))))
				return 1
			},
			"normalize": func(L *lua.LState) int {
				L.Push(pushVec3(L, graphics.SafeNormalize(checkVec3(L, 1))))
				return 1
			},
			"dot": func(L *lua.LState) int {
				L.Push(lua.LNumber(checkVec3(L, 1).Dot(checkVec3(L, 2))))
				return 1
			},
			"cross": func(L *lua.LState) int {
				L.Push(pushVec3(L, checkVec3(L, 1).Cross(checkVec3(L, 2))))
				return 1
			},
		},
		fields: map[string]field{
			"x": componentField[mgl32.Vec3](0),
			"y": componentField[mgl32.Vec3](1),
			"z": componentField[mgl32.Vec3](2),
		},
		meta: vectorMeta(reg, TagVec3),
	}
	mat4 := &class{
		name: string(TagMat4),
		methods: map[string]lua.LGFunction{
			"translate": func(L *lua.LState) int {
				ud := L.CheckUserData(1)
				v := checkVec3(L, 2)
				ud.Value = checkMat4(L, 1).Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
				return 0
			},
			"rotate": func(L *lua.LState) int {
				ud := L.CheckUserData(1)
				angle := float32(L.CheckNumber(2))
				axis := checkVec3(L, 3)
				ud.Value = checkMat4(L, 1).Mul4(mgl32.HomogRotate3D(angle, graphics.SafeNormalize(axis)))
				return 0
			},
			"scale": func(L *lua.LState) int {
				ud := L.CheckUserData(1)
				v := checkVec3(L, 2)
				ud.Value = checkMat4(L, 1).Mul4(mgl32.Scale3D(v[0], v[1], v[2]))
				return 0
			},
			"get": func(L *lua.LState) int {
				m := checkMat4(L, 1)
				col, row := L.CheckInt(2), L.CheckInt(3)
				if col < 0 || col > 3 || row < 0 || row > 3 {
					L.ArgError(2, "index out of range")
				}
				L.Push(lua.LNumber(m.At(row, col)))
				return 1
			},
		},
		meta: map[string]lua.LGFunction{
			"__mul": reg.Function("Mat4.__mul"),
			"__eq": func(L *lua.LState) int {
				L.Push(lua.LBool(checkMat4(L, 1) == checkMat4(L, 2)))
				return 1
			},
			"__tostring": func(L *lua.LState) int {
				L.Push(lua.LString(fmt.Sprintf("Mat4(%v)", [16]float32(checkMat4(L, 1)))))
				return 1
			},
		},
	}
	for _, c := range []*class{vec2, vec3, mat4} {
		c.register(L)
	}

	b.types[TagVec2] = typeTable(L, nil, reg.Function("Vec2f.new"))
	b.types[TagVec3] = typeTable(L, nil, reg.Function("Vec3f.new"))
	b.types[TagMat4] = typeTable(L, map[string]lua.LGFunction{
		"perspective": func(L *lua.LState) int {
			fov, aspect := float32(L.CheckNumber(1)), float32(L.CheckNumber(2))
			near, far := float32(L.CheckNumber(3)), float32(L.CheckNumber(4))
			L.Push(pushMat4(L, mgl32.Perspective(fov, aspect, near, far)))
			return 1
		},
		"orthographic": func(L *lua.LState) int {
			l, r := float32(L.CheckNumber(1)), float32(L.CheckNumber(2))
			bottom, top := float32(L.CheckNumber(3)), float32(L.CheckNumber(4))
			near, far := float32(L.CheckNumber(5)), float32(L.CheckNumber(6))
			L.Push(pushMat4(L, mgl32.Ortho(l, r, bottom, top, near, far)))
			return 1
		},
	}, reg.Function("Mat4.new"))
}
