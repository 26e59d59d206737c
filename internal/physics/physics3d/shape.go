package physics3d

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
)

// Shape is a collision shape shared between bodies. It is reference
// counted: the creator holds one reference and every body built from it
// holds another.
type Shape struct {
	Kind ShapeKind
	// HalfExtents of a box.
	HalfExtents mgl32.Vec3
	// Radius and HalfHeight of a capsule aligned with the Y axis.
	Radius     float32
	HalfHeight float32
	// Scale is applied to unit meshes drawn for this shape.
	Scale mgl32.Vec3

	refs atomic.Int32
}

// NewBox creates a box shape with one reference.
func NewBox(halfExtents mgl32.Vec3) *Shape {
	s := &Shape{Kind: ShapeBox, HalfExtents: halfExtents, Scale: halfExtents}
	s.refs.Store(1)
	return s
}

// Cube creates a box whose half extents equal scale, matching a unit cube
// mesh spanning -1..1 drawn with the same scale.
func Cube(scale mgl32.Vec3) *Shape {
	return NewBox(scale)
}

// NewCapsule creates a Y aligned capsule with one reference.
func NewCapsule(radius, halfHeight float32) *Shape {
	s := &Shape{
		Kind:       ShapeCapsule,
		Radius:     radius,
		HalfHeight: halfHeight,
		Scale:      mgl32.Vec3{radius, halfHeight + radius, radius},
	}
	s.refs.Store(1)
	return s
}

// Acquire adds a reference and returns the shape.
func (s *Shape) Acquire() *Shape {
	s.refs.Add(1)
	return s
}

// Release drops a reference and reports whether it was the last one.
func (s *Shape) Release() bool {
	return s.refs.Add(-1) == 0
}

// Refs returns the current reference count.
func (s *Shape) Refs() int32 {
	return s.refs.Load()
}

// HalfSize returns the half extents of the shape's bounding box.
func (s *Shape) HalfSize() mgl32.Vec3 {
	if s.Kind == ShapeCapsule {
		return mgl32.Vec3{s.Radius, s.HalfHeight + s.Radius, s.Radius}
	}
	return s.HalfExtents
}

// AABB is an axis aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

func boundsAt(pos, half mgl32.Vec3) AABB {
	return AABB{Min: pos.Sub(half), Max: pos.Add(half)}
}

// Overlaps reports whether the boxes intersect with positive volume.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min[0] < b.Max[0] && a.Max[0] > b.Min[0] &&
		a.Min[1] < b.Max[1] && a.Max[1] > b.Min[1] &&
		a.Min[2] < b.Max[2] && a.Max[2] > b.Min[2]
}
