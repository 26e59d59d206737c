// Package engine owns the per-process engine state and drives the frame
// loop: events, input, the UI overlay, the game hooks and presentation.
package engine

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/config"
	"rama/internal/graphics"
	"rama/internal/input"
	"rama/internal/logging"
	"rama/internal/physics/physics2d"
	"rama/internal/physics/physics3d"
	"rama/internal/profiling"
)

// Context is the engine state shared by the frame loop and the script
// modules. It is created once at startup.
type Context struct {
	Config    config.Config
	Clock     *Clock
	Input     *input.State
	Resources *graphics.Resources
	Window    Window
	Physics2D *physics2d.World
	Physics3D *physics3d.World
	Profile   *profiling.Frame

	// BasePath anchors relative asset and script paths.
	BasePath string

	mu         sync.Mutex
	camera     graphics.Camera
	clearColor mgl32.Vec3
	gameSize   mgl32.Vec2
	running    atomic.Bool
}

// NewContext wires the engine state for cfg around an already opened window
// and device.
func NewContext(cfg config.Config, win Window, res *graphics.Resources, basePath string) *Context {
	p := cfg.Physics
	opts2d := physics2d.DefaultOptions()
	opts2d.Step = p.StepSeconds()
	opts2d.MaxSteps = p.MaxSteps
	opts2d.Gravity = mgl32.Vec2{float32(p.Gravity2D[0]), float32(p.Gravity2D[1])}

	opts3d := physics3d.DefaultOptions()
	opts3d.Step = p.StepSeconds()
	opts3d.MaxSteps = p.MaxSteps
	opts3d.Gravity = mgl32.Vec3(p.Gravity3D)
	opts3d.Workers = p.Workers

	ctx := &Context{
		Config:     cfg,
		Clock:      NewClock(),
		Input:      input.NewState(input.WithFirstFrameSuppression(cfg.Input.SuppressFirstFramePress)),
		Resources:  res,
		Window:     win,
		Physics2D:  physics2d.New(opts2d),
		Physics3D:  physics3d.New(opts3d),
		Profile:    &profiling.Frame{},
		BasePath:   basePath,
		clearColor: mgl32.Vec3(cfg.Graphics.ClearColor),
	}
	ctx.running.Store(true)
	return ctx
}

// DeltaTime is the last frame length in seconds.
func (c *Context) DeltaTime() float32 {
	return c.Clock.DeltaTime()
}

// Quit stops the loop after the current frame. Safe from any goroutine.
func (c *Context) Quit() {
	c.running.Store(false)
}

func (c *Context) Running() bool {
	return c.running.Load()
}

// Path resolves relative against BasePath. Absolute paths are returned as is.
func (c *Context) Path(relative string) string {
	if filepath.IsAbs(relative) {
		return relative
	}
	return filepath.Join(c.BasePath, relative)
}

func (c *Context) SetTitle(title string) {
	c.Config.Window.Title = title
	c.Window.SetTitle(title)
}

func (c *Context) SetSize(width, height int) {
	if width < 1 || height < 1 {
		logging.Warn("ignoring window size %dx%d", width, height)
		return
	}
	c.Config.Window.Width, c.Config.Window.Height = width, height
	c.Window.SetSize(width, height)
}

// LockMouse requests relative mouse mode; it is applied once the game view
// has focus.
func (c *Context) LockMouse()   { c.Input.SetMouseLock(true) }
func (c *Context) UnlockMouse() { c.Input.SetMouseLock(false) }

// Camera returns the active camera, nil when none is set.
func (c *Context) Camera() graphics.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera
}

// ApplyCamera uploads the active camera to s for the current game view.
// It reports false and leaves s untouched when no camera is active.
func (c *Context) ApplyCamera(s *graphics.Shader) bool {
	cam := c.Camera()
	if cam == nil {
		return false
	}
	s.SetCamera(cam, c.Viewport())
	return true
}

func (c *Context) SetCamera(cam graphics.Camera) {
	c.mu.Lock()
	c.camera = cam
	c.mu.Unlock()
}

func (c *Context) ClearColor() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor
}

func (c *Context) SetClearColor(r, g, b float32) {
	c.mu.Lock()
	c.clearColor = mgl32.Vec3{r, g, b}
	c.mu.Unlock()
}

// GameSize is the size of the game view recorded this frame.
func (c *Context) GameSize() mgl32.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameSize
}

func (c *Context) setGameSize(size mgl32.Vec2) {
	c.mu.Lock()
	c.gameSize = size
	c.mu.Unlock()
}

// Viewport returns the game view as a camera viewport.
func (c *Context) Viewport() graphics.Viewport {
	s := c.GameSize()
	return graphics.Viewport{Width: s[0], Height: s[1]}
}
