package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/config"
	"rama/internal/graphics"
	"rama/internal/physics"
	"rama/internal/ui"
)

type recorder struct {
	events []string
}

func (r *recorder) add(e string) { r.events = append(r.events, e) }

type fakeWindow struct {
	rec      *recorder
	onPoll   func()
	focused  bool
	w, h     int
	relative []bool
	closed   bool
}

func (w *fakeWindow) PollEvents() {
	w.rec.add("poll")
	if w.onPoll != nil {
		w.onPoll()
	}
}
func (w *fakeWindow) SwapBuffers()              { w.rec.add("swap") }
func (w *fakeWindow) ShouldClose() bool         { return w.closed }
func (w *fakeWindow) Focused() bool             { return w.focused }
func (w *fakeWindow) Size() (int, int)          { return w.w, w.h }
func (w *fakeWindow) SetTitle(string)           {}
func (w *fakeWindow) SetSize(width, height int) { w.w, w.h = width, height }
func (w *fakeWindow) SetRelativeMouse(on bool)  { w.relative = append(w.relative, on) }
func (w *fakeWindow) Close()                    {}

type fakeOverlay struct {
	rec       *recorder
	panel     ui.Panel
	texture   uint32
	uv0, uv1  mgl32.Vec2
	destroyed bool
}

func (o *fakeOverlay) NewFrame(int, int) { o.rec.add("newframe") }
func (o *fakeOverlay) BeginGameView() ui.Panel {
	o.rec.add("begin")
	return o.panel
}
func (o *fakeOverlay) Image(tex uint32, _, uv0, uv1 mgl32.Vec2) {
	o.rec.add("image")
	o.texture, o.uv0, o.uv1 = tex, uv0, uv1
}
func (o *fakeOverlay) EndGameView()              { o.rec.add("end") }
func (o *fakeOverlay) Render()                   { o.rec.add("render") }
func (o *fakeOverlay) WantCaptureMouse() bool    { return false }
func (o *fakeOverlay) WantCaptureKeyboard() bool { return false }
func (o *fakeOverlay) Destroy()                  { o.destroyed = true }

type fakeGame struct {
	rec      *recorder
	status   int
	onUpdate func()
	onDraw   func()
	shutdown int
}

func (g *fakeGame) Init() int {
	g.rec.add("init")
	return g.status
}
func (g *fakeGame) Update() {
	g.rec.add("update")
	if g.onUpdate != nil {
		g.onUpdate()
	}
}
func (g *fakeGame) Draw() {
	g.rec.add("draw")
	if g.onDraw != nil {
		g.onDraw()
	}
}
func (g *fakeGame) Shutdown() {
	g.rec.add("shutdown")
	g.shutdown++
}

type harness struct {
	rec     *recorder
	dev     *graphics.NullDevice
	ctx     *Context
	window  *fakeWindow
	overlay *fakeOverlay
	game    *fakeGame
	engine  *Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	rec := &recorder{}
	dev := graphics.NewNullDevice()
	cfg := config.Default()
	cfg.Debug.SlowFrameMs = 0
	res := graphics.NewResources(dev, graphics.NewTracker(), cfg.Graphics.GLSLVersion)
	win := &fakeWindow{rec: rec, focused: true, w: 800, h: 600}
	ctx := NewContext(cfg, win, res, t.TempDir())
	overlay := &fakeOverlay{rec: rec, panel: ui.Panel{Width: 640, Height: 480, Focused: true}}
	game := &fakeGame{rec: rec}
	return &harness{
		rec: rec, dev: dev, ctx: ctx, window: win, overlay: overlay, game: game,
		engine: New(ctx, overlay, game),
	}
}

func TestFrameOrder(t *testing.T) {
	h := newHarness(t)
	if err := h.engine.Init(); err != nil {
		t.Fatal(err)
	}
	h.rec.events = nil
	h.engine.Tick()

	want := []string{"poll", "newframe", "begin", "image", "end", "update", "draw", "render", "swap"}
	if len(h.rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.rec.events, want)
	}
	for i := range want {
		if h.rec.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", h.rec.events, want)
		}
	}
}

func TestGameDrawsIntoFramebuffer(t *testing.T) {
	h := newHarness(t)
	h.engine.Init()

	fb := h.engine.Framebuffer()
	var boundDuringDraw uint32
	var viewportDuringDraw [2]int
	h.game.onDraw = func() {
		boundDuringDraw = h.dev.BoundFramebuffer
		viewportDuringDraw = h.dev.ViewportSize
	}
	h.engine.Tick()

	if boundDuringDraw == 0 {
		t.Error("framebuffer not bound while drawing")
	}
	if viewportDuringDraw != [2]int{640, 480} {
		t.Errorf("viewport during draw = %v, want game view size", viewportDuringDraw)
	}
	if h.dev.BoundFramebuffer != 0 {
		t.Error("framebuffer still bound after the frame")
	}
	if w, hgt := fb.Size(); w != 640 || hgt != 480 {
		t.Errorf("framebuffer size = %dx%d", w, hgt)
	}
	if h.overlay.texture != fb.ColorTexture() {
		t.Error("overlay was not given the framebuffer color texture")
	}
	if h.overlay.uv0 != (mgl32.Vec2{0, 1}) || h.overlay.uv1 != (mgl32.Vec2{1, 0}) {
		t.Errorf("expected flipped uvs, got %v %v", h.overlay.uv0, h.overlay.uv1)
	}
	if h.ctx.GameSize() != (mgl32.Vec2{640, 480}) {
		t.Errorf("game size = %v", h.ctx.GameSize())
	}
	if h.dev.ViewportSize != [2]int{800, 600} {
		t.Errorf("display viewport = %v", h.dev.ViewportSize)
	}
}

func TestInputAdvancesAfterUpdate(t *testing.T) {
	h := newHarness(t)
	h.engine.Init()

	press := true
	h.window.onPoll = func() {
		if press {
			h.ctx.Input.HandleKeyEvent(glfw.KeySpace, glfw.Press)
			press = false
		}
	}
	var pressed, held []bool
	h.game.onUpdate = func() {
		pressed = append(pressed, h.ctx.Input.KeyPressed(glfw.KeySpace))
		held = append(held, h.ctx.Input.KeyHeld(glfw.KeySpace))
	}
	h.engine.Tick()
	h.engine.Tick()

	if !pressed[0] || pressed[1] {
		t.Errorf("pressed per frame = %v, want [true false]", pressed)
	}
	if !held[0] || !held[1] {
		t.Errorf("held per frame = %v, want [true true]", held)
	}
	if h.ctx.Input.Frame() != 2 {
		t.Errorf("input frame = %d, want 2", h.ctx.Input.Frame())
	}
}

func TestUnfocusedViewBlocksInput(t *testing.T) {
	h := newHarness(t)
	h.engine.Init()
	h.overlay.panel.Focused = false
	h.window.onPoll = func() { h.ctx.Input.HandleKeyEvent(glfw.KeyW, glfw.Press) }

	var held bool
	h.game.onUpdate = func() { held = h.ctx.Input.KeyHeld(glfw.KeyW) }
	h.engine.Tick()
	if held {
		t.Error("input should be blocked while the game view is unfocused")
	}
}

func TestMouseLockDeferredUntilFocus(t *testing.T) {
	h := newHarness(t)
	h.engine.Init()
	h.window.focused = false
	h.ctx.LockMouse()

	h.engine.Tick()
	if len(h.window.relative) != 0 {
		t.Fatalf("lock applied while unfocused: %v", h.window.relative)
	}
	h.window.focused = true
	h.engine.Tick()
	if len(h.window.relative) != 1 || !h.window.relative[0] {
		t.Fatalf("lock not applied on focus: %v", h.window.relative)
	}
}

func TestNegativeInitAborts(t *testing.T) {
	h := newHarness(t)
	h.game.status = -1

	err := h.engine.Run(0)
	if !errors.Is(err, ErrInitFailed) {
		t.Fatalf("Run() = %v, want ErrInitFailed", err)
	}
	for _, e := range h.rec.events {
		if e == "update" || e == "poll" {
			t.Fatalf("a frame ran after failed init: %v", h.rec.events)
		}
	}
	if h.game.shutdown != 0 {
		t.Error("Shutdown hook ran for a game that failed to init")
	}
	if !h.overlay.destroyed {
		t.Error("overlay not destroyed")
	}
}

func TestRunStopsOnQuitAndShutsDown(t *testing.T) {
	h := newHarness(t)
	updates := 0
	h.game.onUpdate = func() {
		updates++
		if updates == 3 {
			h.ctx.Quit()
		}
	}
	if err := h.ctx.Physics3D.Init(); err != nil {
		t.Fatal(err)
	}
	if err := h.engine.Run(0); err != nil {
		t.Fatal(err)
	}
	if updates != 3 {
		t.Errorf("expected 3 updates, got %d", updates)
	}
	if h.game.shutdown != 1 {
		t.Errorf("expected one Shutdown, got %d", h.game.shutdown)
	}
	if h.ctx.Physics3D.State() != physics.Destroyed {
		t.Errorf("physics3d state = %v", h.ctx.Physics3D.State())
	}
	if n := len(h.ctx.Resources.Tracker.Live()); n != 0 {
		t.Errorf("%d resources still live after shutdown", n)
	}
}

func TestRunFrameLimit(t *testing.T) {
	h := newHarness(t)
	updates := 0
	h.game.onUpdate = func() { updates++ }
	h.engine.Run(5)
	if updates != 5 {
		t.Errorf("expected 5 frames, got %d", updates)
	}
}

func TestClockDelta(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	c := NewClockWithSource(func() time.Time { return now })

	now = now.Add(16 * time.Millisecond)
	c.Tick()
	if d := c.DeltaTime(); d < 0.0159 || d > 0.0161 {
		t.Errorf("DeltaTime() = %v, want 0.016", d)
	}
	now = now.Add(50 * time.Millisecond)
	c.Tick()
	if d := c.DeltaTime(); d < 0.0499 || d > 0.0501 {
		t.Errorf("DeltaTime() = %v, want 0.05", d)
	}
	if c.Frame() != 2 || c.Elapsed() != 66*time.Millisecond {
		t.Errorf("frame=%d elapsed=%v", c.Frame(), c.Elapsed())
	}
}

func TestContextPath(t *testing.T) {
	h := newHarness(t)
	h.ctx.BasePath = "/opt/game"
	if got := h.ctx.Path("scripts/main.lua"); got != "/opt/game/scripts/main.lua" {
		t.Errorf("Path() = %q", got)
	}
	if got := h.ctx.Path("/abs/file"); got != "/abs/file" {
		t.Errorf("Path() = %q", got)
	}
}

func TestApplyCameraUsesActiveSlot(t *testing.T) {
	h := newHarness(t)
	shader, err := h.ctx.Resources.NewShader("void main(){}", "void main(){}")
	if err != nil {
		t.Fatal(err)
	}
	if h.ctx.ApplyCamera(shader) {
		t.Fatal("ApplyCamera succeeded without an active camera")
	}
	if _, ok := h.dev.Uniform("uView"); ok {
		t.Error("uView set without a camera")
	}

	if err := h.engine.Init(); err != nil {
		t.Fatal(err)
	}
	h.engine.Tick()

	first := graphics.NewCamera2D()
	second := graphics.NewCamera2D()
	second.Pos = mgl32.Vec2{10, 20}
	second.Zoom = 2
	h.ctx.SetCamera(first)
	h.ctx.SetCamera(second)
	if !h.ctx.ApplyCamera(shader) {
		t.Fatal("ApplyCamera reported no camera")
	}
	if v, _ := h.dev.Uniform("uView"); v != second.View() {
		t.Errorf("uView = %v, want %v", v, second.View())
	}
	want := second.Perspective(graphics.Viewport{Width: 640, Height: 480})
	if v, _ := h.dev.Uniform("uProjection"); v != want {
		t.Errorf("uProjection = %v, want %v", v, want)
	}
}
