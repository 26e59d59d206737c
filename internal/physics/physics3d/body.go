package physics3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rigidbody is a box or capsule living in a World. Position is always read
// fresh from the world.
type Rigidbody struct {
	world *World
	id    BodyID
	shape *Shape
	alive bool
}

// NewRigidbody adds a body built from shape at pos. The body holds its own
// reference to shape; the caller keeps theirs.
func (w *World) NewRigidbody(shape *Shape, pos mgl32.Vec3, static bool) (*Rigidbody, error) {
	motion := MotionDynamic
	if static {
		motion = MotionStatic
	}
	id, err := w.addBody(shape, pos, motion)
	if err != nil {
		return nil, err
	}
	return &Rigidbody{world: w, id: id, shape: shape, alive: true}, nil
}

func (r *Rigidbody) body() *body {
	if !r.alive {
		return nil
	}
	b, err := r.world.get(r.id)
	if err != nil {
		return nil
	}
	return b
}

// ID returns the body handle.
func (r *Rigidbody) ID() BodyID {
	return r.id
}

// Valid reports whether the body still exists in a running world.
func (r *Rigidbody) Valid() bool {
	return r.body() != nil
}

// Static reports whether the body never moves.
func (r *Rigidbody) Static() bool {
	b := r.body()
	return b != nil && b.motion == MotionStatic
}

// Shape returns the current collision shape.
func (r *Rigidbody) Shape() *Shape {
	return r.shape
}

func (r *Rigidbody) Position() mgl32.Vec3 {
	if b := r.body(); b != nil {
		return b.position
	}
	return mgl32.Vec3{}
}

// SetPosition teleports the body.
func (r *Rigidbody) SetPosition(pos mgl32.Vec3) {
	b := r.body()
	if b == nil {
		return
	}
	b.position = pos
	if b.motion == MotionStatic {
		r.world.stepper.MarkDirty()
	}
}

func (r *Rigidbody) Velocity() mgl32.Vec3 {
	if b := r.body(); b != nil {
		return b.velocity
	}
	return mgl32.Vec3{}
}

func (r *Rigidbody) SetVelocity(v mgl32.Vec3) {
	if b := r.body(); b != nil && b.motion == MotionDynamic {
		b.velocity = v
	}
}

// Friction returns the friction coefficient, 1 by default.
func (r *Rigidbody) Friction() float32 {
	if b := r.body(); b != nil {
		return b.friction
	}
	return 0
}

func (r *Rigidbody) SetFriction(f float32) {
	if b := r.body(); b != nil {
		b.friction = max(0, f)
	}
}

// Matrix returns the model matrix: translation by position and scale by the
// shape's scale.
func (r *Rigidbody) Matrix() mgl32.Mat4 {
	s := r.shape.Scale
	p := r.Position()
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// SetSize replaces the shape with a box of the given half extents.
func (r *Rigidbody) SetSize(halfExtents mgl32.Vec3) {
	b := r.body()
	if b == nil {
		return
	}
	old := b.shape
	b.shape = Cube(halfExtents)
	old.Release()
	r.shape = b.shape
	if b.motion == MotionStatic {
		r.world.stepper.MarkDirty()
	}
}

// Destroy removes the body from the world. Calling it twice is a no-op.
func (r *Rigidbody) Destroy() {
	if !r.alive {
		return
	}
	r.alive = false
	_ = r.world.removeBody(r.id)
}
