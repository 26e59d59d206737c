package physics3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	characterRadius     = 1
	characterHalfHeight = 1
	// stickDistance is how far a grounded character is pulled down to keep
	// contact when walking off small steps and slopes.
	stickDistance = 0.5
	groundProbe   = 1e-3
	sweepSlop     = 1e-4
)

// CharacterController is a virtual capsule moved by the caller rather than
// by the solver. It slides along bodies and sticks to the floor.
type CharacterController struct {
	// Pos is refreshed after every MoveAndSlide and SetPosition.
	Pos mgl32.Vec3
	Up  mgl32.Vec3

	world    *World
	shape    *Shape
	velocity mgl32.Vec3
	grounded bool
}

// NewCharacterController places a capsule character at pos.
func (w *World) NewCharacterController(pos mgl32.Vec3) (*CharacterController, error) {
	if err := w.lifecycle.Check(); err != nil {
		return nil, err
	}
	c := &CharacterController{
		Pos:   pos,
		Up:    mgl32.Vec3{0, 1, 0},
		world: w,
		shape: NewCapsule(characterRadius, characterHalfHeight),
	}
	w.characters[c] = struct{}{}
	return c, nil
}

func (c *CharacterController) detach() {
	if c.shape != nil {
		c.shape.Release()
	}
	c.world, c.shape = nil, nil
}

// Valid reports whether the character still belongs to a running world.
func (c *CharacterController) Valid() bool {
	return c.world != nil && c.world.lifecycle.Check() == nil
}

// Velocity returns the velocity left after the last move.
func (c *CharacterController) Velocity() mgl32.Vec3 {
	return c.velocity
}

func (c *CharacterController) IsGrounded() bool {
	return c.grounded
}

func (c *CharacterController) SetPosition(pos mgl32.Vec3) {
	c.Pos = pos
}

// verticalAxis picks the world axis closest to Up and its sign.
func (c *CharacterController) verticalAxis() (int, float32) {
	axis := 1
	best := float32(0)
	for k := 0; k < 3; k++ {
		if a := float32(math.Abs(float64(c.Up[k]))); a > best {
			axis, best = k, a
		}
	}
	if best == 0 {
		return 1, 1
	}
	if c.Up[axis] < 0 {
		return axis, -1
	}
	return axis, 1
}

func (c *CharacterController) overlapping(box AABB, fn func(b *body)) {
	for i := range c.world.bodies {
		b := &c.world.bodies[i]
		if !b.used || !ShouldCollide(LayerMoving, b.layer) {
			continue
		}
		if box.Overlaps(b.bounds()) {
			fn(b)
		}
	}
}

// MoveAndSlide moves the character by velocity*dt one axis at a time,
// stopping at whatever it hits, then pulls it down towards the floor along
// -Up when it was grounded before the move.
func (c *CharacterController) MoveAndSlide(velocity mgl32.Vec3, dt float32) {
	if !c.Valid() || dt <= 0 {
		return
	}
	half := c.shape.HalfSize()
	vAxis, vSign := c.verticalAxis()
	wasGrounded := c.grounded

	c.velocity = velocity
	pos := c.Pos
	for k := 0; k < 3; k++ {
		d := velocity[k] * dt
		if d == 0 {
			continue
		}
		start := pos[k]
		pos[k] += d
		sweep := boundsAt(pos, half)
		sweep.Min[k] = min(start, pos[k]) - half[k]
		sweep.Max[k] = max(start, pos[k]) + half[k]
		c.overlapping(sweep, func(b *body) {
			bb := b.bounds()
			// bodies already behind the starting face are ignored
			if d > 0 {
				if stop := bb.Min[k] - half[k]; stop >= start-sweepSlop {
					pos[k] = min(pos[k], stop)
					c.velocity[k] = 0
				}
			} else if stop := bb.Max[k] + half[k]; stop <= start+sweepSlop {
				pos[k] = max(pos[k], stop)
				c.velocity[k] = 0
			}
		})
	}

	c.grounded = c.touchingFloor(pos, half, vAxis, vSign)
	if wasGrounded && !c.grounded && c.velocity[vAxis]*vSign <= 0 {
		if snapped, ok := c.stickToFloor(pos, half, vAxis, vSign); ok {
			pos = snapped
			c.grounded = true
		}
	}
	c.Pos = pos
}

func (c *CharacterController) touchingFloor(pos, half mgl32.Vec3, axis int, sign float32) bool {
	probe := pos
	probe[axis] -= sign * groundProbe
	found := false
	c.overlapping(boundsAt(probe, half), func(*body) { found = true })
	return found
}

func (c *CharacterController) stickToFloor(pos, half mgl32.Vec3, axis int, sign float32) (mgl32.Vec3, bool) {
	g := c.world.opts.Gravity.Len()
	if g == 0 {
		return pos, false
	}
	sweep := boundsAt(pos, half)
	if sign > 0 {
		sweep.Min[axis] -= stickDistance
	} else {
		sweep.Max[axis] += stickDistance
	}

	found := false
	var floor float32
	c.overlapping(sweep, func(b *body) {
		bb := b.bounds()
		top := bb.Max[axis]
		if sign < 0 {
			top = bb.Min[axis]
		}
		if !found || top*sign > floor*sign {
			floor, found = top, true
		}
	})
	if !found {
		return pos, false
	}
	pos[axis] = floor + sign*half[axis]
	return pos, true
}

// Destroy removes the character from its world.
func (c *CharacterController) Destroy() {
	if c.world == nil {
		return
	}
	if c.world.characters != nil {
		delete(c.world.characters, c)
	}
	c.detach()
}
