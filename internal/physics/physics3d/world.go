// Package physics3d is a small 3D rigid body world: gravity, integration and
// axis aligned contact resolution, plus a virtual character controller.
package physics3d

import (
	"errors"
	"runtime"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"rama/internal/logging"
	"rama/internal/physics"
)

// World limits.
const (
	MaxBodies   = 1024
	MaxContacts = 1024
)

var (
	ErrTooManyBodies = errors.New("physics3d: body limit reached")
	ErrInvalidBody   = errors.New("physics3d: invalid body")
)

// Layer selects which bodies may touch.
type Layer uint8

const (
	LayerNonMoving Layer = iota
	LayerMoving
)

// ShouldCollide reports whether objects on layers a and b interact. Non
// moving objects only collide with moving ones.
func ShouldCollide(a, b Layer) bool {
	switch a {
	case LayerNonMoving:
		return b == LayerMoving
	case LayerMoving:
		return true
	}
	return false
}

type MotionType uint8

const (
	MotionStatic MotionType = iota
	MotionDynamic
)

// BodyID identifies a body inside its world.
type BodyID uint32

// Options configures a World.
type Options struct {
	Step     float64
	MaxSteps int
	Gravity  mgl32.Vec3
	// Workers sizes the integration pool. Zero picks NumCPU-1.
	Workers int
}

func DefaultOptions() Options {
	return Options{Step: physics.DefaultStep, Gravity: mgl32.Vec3{0, -9.81, 0}}
}

type body struct {
	used     bool
	shape    *Shape
	motion   MotionType
	layer    Layer
	position mgl32.Vec3
	velocity mgl32.Vec3
	friction float32
}

func (b *body) bounds() AABB {
	return boundsAt(b.position, b.shape.HalfSize())
}

// Contact is one resolved overlap from the last step.
type Contact struct {
	A, B   BodyID
	Normal mgl32.Vec3 // from A towards B
	Depth  float32
}

// World owns bodies, the contact buffer and the integration pool.
type World struct {
	opts      Options
	lifecycle physics.Lifecycle
	stepper   *physics.Stepper

	bodies  []body
	free    []BodyID
	statics []BodyID // sorted by min X after the broadphase pass

	contacts   []Contact
	workers    int
	characters map[*CharacterController]struct{}
	steps      uint64
}

// New creates an uninitialized world.
func New(opts Options) *World {
	return &World{opts: opts}
}

func (w *World) State() physics.State {
	return w.lifecycle.State()
}

// Gravity returns the world gravity.
func (w *World) Gravity() mgl32.Vec3 {
	return w.opts.Gravity
}

// Workers returns the integration pool size.
func (w *World) Workers() int {
	return w.workers
}

// Init allocates body storage, the contact buffer and the worker pool.
func (w *World) Init() error {
	if err := w.lifecycle.Start(); err != nil {
		return err
	}
	w.workers = w.opts.Workers
	if w.workers <= 0 {
		w.workers = max(1, runtime.NumCPU()-1)
	}
	w.stepper = physics.NewStepper(w.opts.Step, w.opts.MaxSteps)
	w.bodies = make([]body, 0, 64)
	w.contacts = make([]Contact, 0, MaxContacts)
	w.characters = make(map[*CharacterController]struct{})
	logging.Debug("physics3d: initialized with %d workers", w.workers)
	return nil
}

// Shutdown releases every body and the pool. Handles become invalid.
func (w *World) Shutdown() error {
	if err := w.lifecycle.Stop(); err != nil {
		return err
	}
	for i := range w.bodies {
		if w.bodies[i].used {
			w.bodies[i].shape.Release()
		}
	}
	for c := range w.characters {
		c.detach()
	}
	w.bodies, w.free, w.statics, w.contacts, w.characters = nil, nil, nil, nil, nil
	logging.Debug("physics3d: shut down after %d steps", w.steps)
	return nil
}

// Update advances the simulation by dt in fixed steps and returns the number
// of steps taken. Work fans out over the pool but the call is synchronous.
func (w *World) Update(dt float32) (int, error) {
	if err := w.lifecycle.Check(); err != nil {
		return 0, err
	}
	return w.stepper.Advance(float64(dt), w.optimizeBroadPhase, func(step float64) {
		w.step(float32(step))
	}), nil
}

// Steps returns the total number of fixed steps simulated.
func (w *World) Steps() uint64 {
	return w.steps
}

// Contacts returns the contacts resolved during the last step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies) - len(w.free)
}

func (w *World) optimizeBroadPhase() {
	sort.Slice(w.statics, func(i, j int) bool {
		return w.bodies[w.statics[i]].bounds().Min[0] < w.bodies[w.statics[j]].bounds().Min[0]
	})
}

func (w *World) addBody(shape *Shape, pos mgl32.Vec3, motion MotionType) (BodyID, error) {
	if err := w.lifecycle.Check(); err != nil {
		return 0, err
	}
	layer := LayerMoving
	if motion == MotionStatic {
		layer = LayerNonMoving
	}
	b := body{used: true, shape: shape.Acquire(), motion: motion, layer: layer, position: pos, friction: 1}

	var id BodyID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
		w.bodies[id] = b
	} else {
		if len(w.bodies) >= MaxBodies {
			shape.Release()
			return 0, ErrTooManyBodies
		}
		id = BodyID(len(w.bodies))
		w.bodies = append(w.bodies, b)
	}
	if motion == MotionStatic {
		w.statics = append(w.statics, id)
		w.stepper.MarkDirty()
	}
	return id, nil
}

func (w *World) get(id BodyID) (*body, error) {
	if err := w.lifecycle.Check(); err != nil {
		return nil, err
	}
	if int(id) >= len(w.bodies) || !w.bodies[id].used {
		return nil, ErrInvalidBody
	}
	return &w.bodies[id], nil
}

func (w *World) removeBody(id BodyID) error {
	b, err := w.get(id)
	if err != nil {
		return err
	}
	b.shape.Release()
	if b.motion == MotionStatic {
		for i, s := range w.statics {
			if s == id {
				w.statics = append(w.statics[:i], w.statics[i+1:]...)
				break
			}
		}
	}
	*b = body{}
	w.free = append(w.free, id)
	return nil
}

// integrate applies gravity and velocity to dynamic bodies, splitting the
// body table across the pool when it is large enough to be worth it.
func (w *World) integrate(dt float32) {
	g := w.opts.Gravity.Mul(dt)
	run := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			b := &w.bodies[i]
			if !b.used || b.motion != MotionDynamic {
				continue
			}
			b.velocity = b.velocity.Add(g)
			b.position = b.position.Add(b.velocity.Mul(dt))
		}
	}

	n := len(w.bodies)
	const minChunk = 64
	if w.workers <= 1 || n < 2*minChunk {
		run(0, n)
		return
	}
	chunk := max(minChunk, (n+w.workers-1)/w.workers)
	var eg errgroup.Group
	eg.SetLimit(w.workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			run(lo, hi)
			return nil
		})
	}
	_ = eg.Wait()
}

func (w *World) step(dt float32) {
	w.integrate(dt)
	w.contacts = w.contacts[:0]

	for i := range w.bodies {
		a := &w.bodies[i]
		if !a.used || a.motion != MotionDynamic {
			continue
		}
		// statics are sorted by min X: stop once they start past our max X
		for _, sid := range w.statics {
			s := &w.bodies[sid]
			if s.bounds().Min[0] >= a.bounds().Max[0] {
				break
			}
			w.resolve(BodyID(i), a, sid, s, dt)
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := &w.bodies[j]
			if !b.used || b.motion != MotionDynamic {
				continue
			}
			w.resolve(BodyID(i), a, BodyID(j), b, dt)
		}
	}
	w.steps++
}

// penetration returns the depth and axis of minimum overlap, or axis -1.
func penetration(a, b AABB) (float32, int) {
	depth, axis := float32(0), -1
	for k := 0; k < 3; k++ {
		overlap := min(a.Max[k], b.Max[k]) - max(a.Min[k], b.Min[k])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth, axis = overlap, k
		}
	}
	return depth, axis
}

const frictionRate = 8

func (w *World) resolve(ia BodyID, a *body, ib BodyID, b *body, dt float32) {
	if !ShouldCollide(a.layer, b.layer) {
		return
	}
	depth, axis := penetration(a.bounds(), b.bounds())
	if axis < 0 {
		return
	}
	var normal mgl32.Vec3
	normal[axis] = 1
	if b.position[axis] < a.position[axis] {
		normal[axis] = -1
	}

	if b.motion == MotionDynamic {
		a.position = a.position.Sub(normal.Mul(depth / 2))
		b.position = b.position.Add(normal.Mul(depth / 2))
	} else {
		a.position = a.position.Sub(normal.Mul(depth))
	}

	mu := float32(0)
	if a.friction > 0 && b.friction > 0 {
		mu = (a.friction + b.friction) / 2
	}
	damp := max(0, 1-mu*frictionRate*dt)
	for _, bd := range [2]*body{a, b} {
		if bd.motion != MotionDynamic {
			continue
		}
		bd.velocity[axis] = 0
		for k := 0; k < 3; k++ {
			if k != axis {
				bd.velocity[k] *= damp
			}
		}
	}

	if len(w.contacts) < MaxContacts {
		w.contacts = append(w.contacts, Contact{A: ia, B: ib, Normal: normal, Depth: depth})
	}
}
