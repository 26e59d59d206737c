// Package platform opens the OS window and GL context and feeds its events
// into the input state.
package platform

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"rama/internal/config"
	"rama/internal/input"
	"rama/internal/logging"
)

// Init initializes GLFW. It must run on the main OS thread.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	return nil
}

// Terminate releases every GLFW resource.
func Terminate() {
	glfw.Terminate()
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	win     *glfw.Window
	input   *input.State
	focused bool
}

// NewWindow creates the window, makes its context current, loads the GL
// bindings and routes key, button, cursor and focus events into in. A nil
// in leaves events unhandled.
func NewWindow(cfg config.Window, in *input.State) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logging.Info("OpenGL %s, %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	// The frame limiter paces frames when vsync is off.
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	w := &Window{win: win, input: in, focused: true}
	if in != nil {
		w.installCallbacks()
		x, y := win.GetCursorPos()
		in.WarpMouse(float32(x), float32(y))
	}
	return w, nil
}

func (w *Window) installCallbacks() {
	in := w.input

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.MoveMouse(float32(x), float32(y))
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		in.HandleMouseButtonEvent(button, action)
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		in.HandleKeyEvent(key, action)
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.focused = focused
		if !focused {
			// keys released while unfocused never report an event
			in.ReleaseAll()
		}
	})
}

func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) Focused() bool     { return w.focused }

// Size is the framebuffer size, which differs from the window size on
// high-DPI displays.
func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) SetSize(width, height int) {
	w.win.SetSize(width, height)
}

// SetRelativeMouse captures the cursor. Motion keeps arriving as unbounded
// virtual coordinates, so the input deltas stay valid.
func (w *Window) SetRelativeMouse(enabled bool) {
	mode, raw := glfw.CursorNormal, glfw.False
	if enabled {
		mode, raw = glfw.CursorDisabled, glfw.True
	}
	w.win.SetInputMode(glfw.CursorMode, mode)
	if glfw.RawMouseMotionSupported() {
		w.win.SetInputMode(glfw.RawMouseMotion, raw)
	}
	// switching modes moves the cursor; that jump is not motion
	if w.input != nil {
		x, y := w.win.GetCursorPos()
		w.input.WarpMouse(float32(x), float32(y))
	}
}

func (w *Window) Close() {
	w.win.Destroy()
}
