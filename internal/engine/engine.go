package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/graphics"
	"rama/internal/logging"
	"rama/internal/physics"
	"rama/internal/ui"
)

// ErrInitFailed is returned when Game.Init reports a negative status.
var ErrInitFailed = errors.New("game init failed")

// Engine runs the frame loop for one game.
type Engine struct {
	ctx     *Context
	overlay ui.Overlay
	game    Game

	framebuffer *graphics.Framebuffer
	limiter     *FrameLimiter
	slowFrame   time.Duration
	started     bool
}

// New prepares the loop. The game view framebuffer is allocated here.
func New(ctx *Context, overlay ui.Overlay, game Game) *Engine {
	return &Engine{
		ctx:         ctx,
		overlay:     overlay,
		game:        game,
		framebuffer: ctx.Resources.NewFramebuffer(ctx.Config.Graphics.DepthTest),
		limiter:     NewFrameLimiter(ctx.Config.Window.FPSLimit),
		slowFrame:   time.Duration(ctx.Config.Debug.SlowFrameMs) * time.Millisecond,
	}
}

// Framebuffer is the offscreen target the game draws into.
func (e *Engine) Framebuffer() *graphics.Framebuffer {
	return e.framebuffer
}

// Init calls the game's Init hook. A negative status aborts with
// ErrInitFailed before any frame runs.
func (e *Engine) Init() error {
	if status := e.game.Init(); status < 0 {
		logging.Error("game init returned %d", status)
		return fmt.Errorf("%w: status %d", ErrInitFailed, status)
	}
	e.started = true
	return nil
}

// Run initializes the game and loops until Quit, the window closes or
// maxFrames frames have run (0 means no limit). Shutdown always runs.
func (e *Engine) Run(maxFrames int) error {
	defer e.Shutdown()
	if err := e.Init(); err != nil {
		return err
	}
	for frames := 0; e.ctx.Running() && !e.ctx.Window.ShouldClose(); frames++ {
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
		e.Tick()
		e.limiter.Wait()
	}
	return nil
}

// Tick runs one frame.
func (e *Engine) Tick() {
	ctx := e.ctx
	ctx.Profile.Reset()
	start := time.Now()

	ctx.Input.BeginFrame()
	ctx.Window.PollEvents()
	if locked, apply := ctx.Input.SyncMouseLock(ctx.Window.Focused()); apply {
		ctx.Window.SetRelativeMouse(locked)
	}
	ctx.Clock.Tick()

	displayW, displayH := ctx.Window.Size()
	e.overlay.NewFrame(displayW, displayH)

	panel := e.overlay.BeginGameView()
	ctx.Input.SetBlocked(!panel.Focused, !panel.Focused)
	ctx.setGameSize(mgl32.Vec2{panel.Width, panel.Height})

	e.framebuffer.UpdateSize(panel.Width, panel.Height)
	fbW, fbH := e.framebuffer.Size()
	ctx.Resources.Device.Viewport(fbW, fbH)
	// GL textures are bottom-up, flip V for the overlay
	e.overlay.Image(e.framebuffer.ColorTexture(), mgl32.Vec2{panel.Width, panel.Height}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0})
	e.overlay.EndGameView()

	cc := ctx.ClearColor()
	e.framebuffer.Bind()
	e.framebuffer.Clear(cc[0], cc[1], cc[2])
	func() {
		defer ctx.Profile.Track("game.update")()
		e.game.Update()
	}()
	func() {
		defer ctx.Profile.Track("game.draw")()
		e.game.Draw()
	}()
	e.framebuffer.Unbind()

	ctx.Resources.Device.Viewport(displayW, displayH)
	ctx.Resources.Device.Clear(cc[0], cc[1], cc[2], false)
	e.overlay.Render()
	ctx.Window.SwapBuffers()

	ctx.Input.AdvanceFrame()

	if e.slowFrame > 0 {
		if d := time.Since(start); d > e.slowFrame {
			logging.Debug("slow frame %d: %v. Top sections: %s", ctx.Clock.Frame(), d, ctx.Profile.Top(5))
		}
	}
}

// Shutdown runs the game's Shutdown hook (when Init succeeded), stops any
// running physics world and releases the frame resources.
func (e *Engine) Shutdown() {
	if e.started {
		e.game.Shutdown()
		e.started = false
	}
	if e.ctx.Physics2D.State() == physics.Running {
		if err := e.ctx.Physics2D.Shutdown(); err != nil {
			logging.Warn("physics2d shutdown: %v", err)
		}
	}
	if e.ctx.Physics3D.State() == physics.Running {
		if err := e.ctx.Physics3D.Shutdown(); err != nil {
			logging.Warn("physics3d shutdown: %v", err)
		}
	}
	if e.framebuffer != nil {
		e.framebuffer.Destroy()
		e.framebuffer = nil
	}
	if e.overlay != nil {
		e.overlay.Destroy()
		e.overlay = nil
	}

	for _, r := range e.ctx.Resources.Tracker.Live() {
		logging.Warn("leaked %s %s (%s)", r.Kind, r.Label, r.ID)
	}
}
