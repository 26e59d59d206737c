// Package scripting embeds a Lua VM and exposes the engine to scripts
// through the engine, window, gfx, imgui, physics2d and physics3d modules.
package scripting

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"rama/internal/engine"
	"rama/internal/logging"
	"rama/internal/physics/physics3d"
	"rama/internal/ui"
)

// ErrScriptLoad is returned when a script file fails to parse or run.
var ErrScriptLoad = errors.New("script load failed")

// Bridge owns the script state. All calls must come from the goroutine
// driving the frame loop.
type Bridge struct {
	L        *lua.LState
	ctx      *engine.Context
	widgets  ui.Widgets
	registry *Registry
	types    map[Tag]*lua.LTable
	warned   map[string]bool
	// rigidbodies maps live 3D bodies back to their script handles for
	// CastRay results.
	rigidbodies map[physics3d.BodyID]*lua.LUserData
}

// NewBridge creates the script state and registers every module so scripts
// can require them.
func NewBridge(ctx *engine.Context, widgets ui.Widgets) *Bridge {
	b := &Bridge{
		L:        lua.NewState(),
		ctx:      ctx,
		widgets:  widgets,
		registry: NewRegistry(),
		types:    make(map[Tag]*lua.LTable),
		warned:   make(map[string]bool),

		rigidbodies: make(map[physics3d.BodyID]*lua.LUserData),
	}
	b.registerValueTypes()
	b.registerResourceTypes()
	b.registerPhysicsTypes()
	b.registerWidgets()

	b.L.PreloadModule("engine", b.engineModule)
	b.L.PreloadModule("window", b.windowModule)
	b.L.PreloadModule("gfx", b.gfxModule)
	b.L.PreloadModule("imgui", b.imguiModule)
	b.L.PreloadModule("physics2d", b.physics2dModule)
	b.L.PreloadModule("physics3d", b.physics3dModule)
	return b
}

// Registry exposes the overload table, mostly for diagnostics.
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// Load runs a script file in the shared state. Relative paths resolve
// against the engine base path. Failures are logged and reported as
// ErrScriptLoad; the state stays usable.
func (b *Bridge) Load(path string) error {
	path = b.ctx.Path(path)
	if err := b.L.DoFile(path); err != nil {
		logging.Error("Lua error: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrScriptLoad, path, err)
	}
	return nil
}

// LoadString runs a chunk of source, reported like Load.
func (b *Bridge) LoadString(name, src string) error {
	fn, err := b.L.Load(strings.NewReader(src), name)
	if err == nil {
		b.L.Push(fn)
		err = b.L.PCall(0, lua.MultRet, nil)
	}
	if err != nil {
		logging.Error("Lua error: %v", err)
		return fmt.Errorf("%w: %s: %v", ErrScriptLoad, name, err)
	}
	return nil
}

// GetFunc looks up a global function. When the name is unbound or not a
// function the failure is logged and the returned Function is invalid.
func (b *Bridge) GetFunc(name string) Function {
	f := b.lookup(name)
	if !f.Valid() {
		logging.Error("Lua: %q function does not exist", name)
	}
	return f
}

func (b *Bridge) lookup(name string) Function {
	fn, ok := b.L.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return Function{name: name}
	}
	return Function{name: name, fn: fn, L: b.L}
}

// Close releases the script state.
func (b *Bridge) Close() {
	b.L.Close()
}

// warnOnce logs msg the first time key is seen.
func (b *Bridge) warnOnce(key, msg string) {
	if b.warned[key] {
		return
	}
	b.warned[key] = true
	logging.Warn("%s", msg)
}

// Function is a script function handle. Check Valid before calling.
type Function struct {
	name string
	fn   *lua.LFunction
	L    *lua.LState
}

func (f Function) Valid() bool {
	return f.fn != nil
}

func (f Function) Name() string {
	return f.name
}

// Call invokes the function in protected mode and returns its first result
// (nil when it returns nothing). Script errors come back as Go errors.
func (f Function) Call(args ...lua.LValue) (lua.LValue, error) {
	if !f.Valid() {
		return lua.LNil, fmt.Errorf("call of invalid function %q", f.name)
	}
	top := f.L.GetTop()
	if err := f.L.CallByParam(lua.P{Fn: f.fn, NRet: 1, Protect: true}, args...); err != nil {
		f.L.SetTop(top)
		return lua.LNil, fmt.Errorf("%s: %w", f.name, err)
	}
	ret := f.L.Get(-1)
	f.L.Pop(1)
	return ret, nil
}
