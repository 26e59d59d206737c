// Package physics2d runs the 2D rigid body world on Chipmunk.
package physics2d

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"rama/internal/logging"
	"rama/internal/physics"
)

var ErrBodyDestroyed = errors.New("physics2d: body destroyed")

// Options configures a World.
type Options struct {
	Step     float64
	MaxSteps int
	Gravity  mgl32.Vec2
}

// DefaultOptions steps at 60 Hz with earth-like gravity.
func DefaultOptions() Options {
	return Options{Step: physics.DefaultStep, Gravity: mgl32.Vec2{0, -9.8}}
}

// World owns the Chipmunk space and every body in it.
type World struct {
	opts      Options
	lifecycle physics.Lifecycle
	stepper   *physics.Stepper
	space     *cp.Space
	bodies    map[*Body]struct{}
	steps     uint64
}

// New creates an uninitialized world.
func New(opts Options) *World {
	return &World{opts: opts}
}

// State reports the lifecycle state.
func (w *World) State() physics.State {
	return w.lifecycle.State()
}

// Init creates the space.
func (w *World) Init() error {
	if err := w.lifecycle.Start(); err != nil {
		return err
	}
	w.space = cp.NewSpace()
	w.space.SetGravity(cp.Vector{X: float64(w.opts.Gravity[0]), Y: float64(w.opts.Gravity[1])})
	w.stepper = physics.NewStepper(w.opts.Step, w.opts.MaxSteps)
	w.bodies = make(map[*Body]struct{})
	logging.Debug("physics2d: initialized")
	return nil
}

// Update advances the simulation by dt seconds in fixed steps and returns
// the number of steps taken.
func (w *World) Update(dt float32) (int, error) {
	if err := w.lifecycle.Check(); err != nil {
		return 0, err
	}
	n := w.stepper.Advance(float64(dt), w.space.ReindexStatic, func(step float64) {
		w.space.Step(step)
		w.steps++
	})
	return n, nil
}

// Steps returns the total number of fixed steps simulated.
func (w *World) Steps() uint64 {
	return w.steps
}

// Shutdown removes every body and releases the space.
func (w *World) Shutdown() error {
	if err := w.lifecycle.Stop(); err != nil {
		return err
	}
	for b := range w.bodies {
		b.remove()
	}
	w.bodies = nil
	w.space = nil
	logging.Debug("physics2d: shut down")
	return nil
}

// Body is a box collider attached to a rigid body.
type Body struct {
	Static bool
	Width  float64
	Height float64

	world *World
	body  *cp.Body
	shape *cp.Shape
}

// NewBox adds a box of the given size centered at pos. Dynamic boxes get
// unit mass.
func (w *World) NewBox(width, height float64, pos mgl32.Vec2, static bool) (*Body, error) {
	if err := w.lifecycle.Check(); err != nil {
		return nil, err
	}
	var body *cp.Body
	if static {
		body = cp.NewStaticBody()
	} else {
		const mass = 1.0
		body = cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	}
	body.SetPosition(cp.Vector{X: float64(pos[0]), Y: float64(pos[1])})
	w.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(1)
	w.space.AddShape(shape)

	b := &Body{Static: static, Width: width, Height: height, world: w, body: body, shape: shape}
	w.bodies[b] = struct{}{}
	if static {
		w.stepper.MarkDirty()
	}
	return b, nil
}

func (b *Body) alive() bool {
	return b.body != nil && b.world.lifecycle.State() == physics.Running
}

// Position reads the body position from the space.
func (b *Body) Position() mgl32.Vec2 {
	if !b.alive() {
		return mgl32.Vec2{}
	}
	p := b.body.Position()
	return mgl32.Vec2{float32(p.X), float32(p.Y)}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl32.Vec2) error {
	if !b.alive() {
		return ErrBodyDestroyed
	}
	b.body.SetPosition(cp.Vector{X: float64(p[0]), Y: float64(p[1])})
	if b.Static {
		b.world.space.ReindexShapesForBody(b.body)
	}
	return nil
}

func (b *Body) Velocity() mgl32.Vec2 {
	if !b.alive() {
		return mgl32.Vec2{}
	}
	v := b.body.Velocity()
	return mgl32.Vec2{float32(v.X), float32(v.Y)}
}

func (b *Body) SetVelocity(v mgl32.Vec2) error {
	if !b.alive() {
		return ErrBodyDestroyed
	}
	b.body.SetVelocity(float64(v[0]), float64(v[1]))
	return nil
}

func (b *Body) SetFriction(f float64) error {
	if !b.alive() {
		return ErrBodyDestroyed
	}
	b.shape.SetFriction(f)
	return nil
}

// Destroy removes the body from the world. Further calls are ignored.
func (b *Body) Destroy() {
	if !b.alive() {
		return
	}
	delete(b.world.bodies, b)
	b.remove()
}

func (b *Body) remove() {
	b.world.space.RemoveShape(b.shape)
	b.world.space.RemoveBody(b.body)
	b.body, b.shape = nil, nil
}
