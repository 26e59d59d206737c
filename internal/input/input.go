package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyCount sizes the keyboard snapshot arrays, indexed by glfw.Key.
const KeyCount = int(glfw.KeyLast) + 1

// Button is a mouse button as seen by game code.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonCount
)

// ButtonFromGLFW maps a GLFW mouse button, reporting false for buttons the
// engine does not track.
func ButtonFromGLFW(b glfw.MouseButton) (Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ButtonLeft, true
	case glfw.MouseButtonRight:
		return ButtonRight, true
	case glfw.MouseButtonMiddle:
		return ButtonMiddle, true
	}
	return 0, false
}

// Snapshot is the raw device state at one instant.
type Snapshot struct {
	Keys    [KeyCount]bool
	Buttons uint8 // bit i set while Button(i) is down
}

func (s *Snapshot) key(k glfw.Key) bool {
	if k < 0 || int(k) >= KeyCount {
		return false
	}
	return s.Keys[k]
}

func (s *Snapshot) button(b Button) bool {
	return b < ButtonCount && s.Buttons&(1<<b) != 0
}

// State keeps the current and previous snapshots used for edge detection.
//
// Frame protocol: BeginFrame before events are polled, queries during the
// frame, AdvanceFrame once after every query has been answered.
type State struct {
	mu sync.RWMutex

	current  Snapshot
	previous Snapshot

	mousePos   mgl32.Vec2
	mouseDelta mgl32.Vec2
	// posKnown is false until the first cursor position arrives.
	posKnown bool

	keyboardBlock bool
	mouseBlock    bool

	mouseLock        bool
	mouseLockApplied bool
	mouseLockKnown   bool

	frame             uint64
	suppressFirstEdge bool
}

// Option configures a State.
type Option func(*State)

// WithFirstFrameSuppression hides pressed/released edges on the very first
// frame so keys already held at startup do not report as pressed.
func WithFirstFrameSuppression(enabled bool) Option {
	return func(s *State) {
		s.suppressFirstEdge = enabled
	}
}

// NewState creates an empty input state.
func NewState(opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleKeyEvent records a GLFW key event. Repeats count as held.
func (s *State) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	s.SetKey(key, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent records a GLFW mouse button event.
func (s *State) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	if b, ok := ButtonFromGLFW(button); ok {
		s.SetButton(b, action == glfw.Press)
	}
}

// SetKey sets the raw state of a key.
func (s *State) SetKey(key glfw.Key, down bool) {
	if key < 0 || int(key) >= KeyCount {
		return
	}
	s.mu.Lock()
	s.current.Keys[key] = down
	s.mu.Unlock()
}

// SetButton sets the raw state of a mouse button.
func (s *State) SetButton(b Button, down bool) {
	if b >= ButtonCount {
		return
	}
	s.mu.Lock()
	if down {
		s.current.Buttons |= 1 << b
	} else {
		s.current.Buttons &^= 1 << b
	}
	s.mu.Unlock()
}

// MoveMouse records an absolute cursor position and accumulates the motion
// since the previous position into this frame's delta. The first position
// ever seen only establishes the origin.
func (s *State) MoveMouse(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := mgl32.Vec2{x, y}
	if s.posKnown {
		s.mouseDelta = s.mouseDelta.Add(p.Sub(s.mousePos))
	}
	s.mousePos = p
	s.posKnown = true
}

// WarpMouse sets the cursor position without producing motion.
func (s *State) WarpMouse(x, y float32) {
	s.mu.Lock()
	s.mousePos = mgl32.Vec2{x, y}
	s.posKnown = true
	s.mu.Unlock()
}

// ReleaseAll marks every key and button as up, as if released this frame.
func (s *State) ReleaseAll() {
	s.mu.Lock()
	s.current.Keys = [KeyCount]bool{}
	s.current.Buttons = 0
	s.mu.Unlock()
}

// BeginFrame resets per-frame accumulators. Call before polling events.
func (s *State) BeginFrame() {
	s.mu.Lock()
	s.mouseDelta = mgl32.Vec2{}
	s.mu.Unlock()
}

// AdvanceFrame copies the current snapshot into the previous one. It must be
// called exactly once per loop iteration, after all queries for the frame.
func (s *State) AdvanceFrame() {
	s.mu.Lock()
	s.previous = s.current
	s.frame++
	s.mu.Unlock()
}

// Frame returns how many times AdvanceFrame has run.
func (s *State) Frame() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// SetBlocked sets the capture flags. While blocked every query of that
// device answers false.
func (s *State) SetBlocked(keyboard, mouse bool) {
	s.mu.Lock()
	s.keyboardBlock = keyboard
	s.mouseBlock = mouse
	s.mu.Unlock()
}

// Blocked reports the keyboard and mouse capture flags.
func (s *State) Blocked() (keyboard, mouse bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyboardBlock, s.mouseBlock
}

func (s *State) edgesHidden() bool {
	return s.suppressFirstEdge && s.frame == 0
}

// KeyPressed reports a key that is down now but was up at the start of the frame.
func (s *State) KeyPressed(key glfw.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.keyboardBlock || s.edgesHidden() {
		return false
	}
	return s.current.key(key) && !s.previous.key(key)
}

// KeyReleased reports a key that is up now but was down at the start of the frame.
func (s *State) KeyReleased(key glfw.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.keyboardBlock || s.edgesHidden() {
		return false
	}
	return !s.current.key(key) && s.previous.key(key)
}

// KeyHeld reports a key that is currently down.
func (s *State) KeyHeld(key glfw.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.keyboardBlock {
		return false
	}
	return s.current.key(key)
}

// MousePressed reports a button that went down this frame.
func (s *State) MousePressed(b Button) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mouseBlock || s.edgesHidden() {
		return false
	}
	return s.current.button(b) && !s.previous.button(b)
}

// MouseReleased reports a button that went up this frame.
func (s *State) MouseReleased(b Button) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mouseBlock || s.edgesHidden() {
		return false
	}
	return !s.current.button(b) && s.previous.button(b)
}

// MouseHeld reports a button that is currently down.
func (s *State) MouseHeld(b Button) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mouseBlock {
		return false
	}
	return s.current.button(b)
}

// MouseDelta returns the cursor motion accumulated this frame.
func (s *State) MouseDelta() mgl32.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseDelta
}

// MousePos returns the last cursor position.
func (s *State) MousePos() mgl32.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mousePos
}

// SetMouseLock records a request for relative mouse mode.
func (s *State) SetMouseLock(locked bool) {
	s.mu.Lock()
	s.mouseLock = locked
	s.mu.Unlock()
}

// MouseLocked reports the requested lock state.
func (s *State) MouseLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseLock
}

// SyncMouseLock decides whether the lock request has to be pushed to the
// window. Requests made while unfocused wait for focus, and losing focus
// forces the request to be applied again once focus returns.
func (s *State) SyncMouseLock(focused bool) (locked, apply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !focused {
		s.mouseLockKnown = false
		return s.mouseLock, false
	}
	if s.mouseLockKnown && s.mouseLockApplied == s.mouseLock {
		return s.mouseLock, false
	}
	s.mouseLockApplied = s.mouseLock
	s.mouseLockKnown = true
	return s.mouseLock, true
}
