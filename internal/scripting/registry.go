package scripting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoOverload is returned when no overload accepts the given arguments.
var ErrNoOverload = errors.New("no matching overload")

// Tag names the script-visible type of a value. Userdata types use the name
// they were registered under.
type Tag string

const (
	TagAny      Tag = "any"
	TagNil      Tag = "nil"
	TagNumber   Tag = "number"
	TagString   Tag = "string"
	TagBool     Tag = "boolean"
	TagTable    Tag = "table"
	TagFunction Tag = "function"
	TagVec2     Tag = "Vec2f"
	TagVec3     Tag = "Vec3f"
	TagMat4     Tag = "Mat4"
)

// TagOf returns the tag of v.
func TagOf(v lua.LValue) Tag {
	switch v.Type() {
	case lua.LTNil:
		return TagNil
	case lua.LTNumber:
		return TagNumber
	case lua.LTString:
		return TagString
	case lua.LTBool:
		return TagBool
	case lua.LTTable:
		return TagTable
	case lua.LTFunction:
		return TagFunction
	case lua.LTUserData:
		ud := v.(*lua.LUserData)
		if mt, ok := ud.Metatable.(*lua.LTable); ok {
			if name, ok := mt.RawGetString(typeNameKey).(lua.LString); ok {
				return Tag(name)
			}
		}
		return "userdata"
	}
	return Tag(v.Type().String())
}

// Impl is the native side of an overload. It receives the call arguments and
// pushes its results, returning how many.
type Impl func(L *lua.LState, args []lua.LValue) int

// Overload is one signature of an exported name.
type Overload struct {
	Params []Tag
	Impl   Impl
}

func (o Overload) matches(args []lua.LValue) bool {
	if len(args) != len(o.Params) {
		return false
	}
	for i, p := range o.Params {
		if p != TagAny && p != TagOf(args[i]) {
			return false
		}
	}
	return true
}

// Registry maps exported names to their overloads. Resolution is by arity
// then by tag, in registration order; the first match wins.
type Registry struct {
	entries map[string][]Overload
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]Overload)}
}

// Add registers impl under name for the given parameter tags.
func (r *Registry) Add(name string, impl Impl, params ...Tag) {
	r.entries[name] = append(r.entries[name], Overload{Params: params, Impl: impl})
}

// Overloads returns the signatures registered under name.
func (r *Registry) Overloads(name string) []Overload {
	return r.entries[name]
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the overload of name accepting args.
func (r *Registry) Resolve(name string, args []lua.LValue) (Overload, error) {
	overloads, ok := r.entries[name]
	if !ok {
		return Overload{}, fmt.Errorf("%w: %s is not registered", ErrNoOverload, name)
	}
	for _, o := range overloads {
		if o.matches(args) {
			return o, nil
		}
	}
	return Overload{}, fmt.Errorf("%w: %s(%s)", ErrNoOverload, name, signature(args))
}

// Function returns a script function dispatching name. A failed resolution
// raises a script error listing the argument types.
func (r *Registry) Function(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		in := args(L)
		o, err := r.Resolve(name, in)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		return o.Impl(L, in)
	}
}

func signature(args []lua.LValue) string {
	tags := make([]string, len(args))
	for i, a := range args {
		tags[i] = string(TagOf(a))
	}
	return strings.Join(tags, ", ")
}
