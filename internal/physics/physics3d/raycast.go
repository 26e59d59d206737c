package physics3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayHit describes the closest body struck by a ray.
type RayHit struct {
	Body     BodyID
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// CastRay returns the closest body hit within maxDist of origin along dir.
func (w *World) CastRay(origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool) {
	if w.lifecycle.Check() != nil || maxDist <= 0 {
		return RayHit{}, false
	}
	if dir.Len() == 0 {
		return RayHit{}, false
	}
	dir = dir.Normalize()

	best := RayHit{Distance: maxDist}
	hit := false
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.used {
			continue
		}
		t, axis, ok := slab(origin, dir, b.bounds())
		if !ok || t > best.Distance {
			continue
		}
		var n mgl32.Vec3
		n[axis] = -sign(dir[axis])
		best = RayHit{Body: BodyID(i), Point: origin.Add(dir.Mul(t)), Normal: n, Distance: t}
		hit = true
	}
	return best, hit
}

// slab intersects a ray with a box and returns the entry distance and the
// axis of the entry face. Rays starting inside report distance 0.
func slab(origin, dir mgl32.Vec3, box AABB) (float32, int, bool) {
	tmin, tmax := float32(0), float32(math.MaxFloat32)
	axis := 0
	for k := 0; k < 3; k++ {
		if dir[k] == 0 {
			if origin[k] < box.Min[k] || origin[k] > box.Max[k] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / dir[k]
		t1 := (box.Min[k] - origin[k]) * inv
		t2 := (box.Max[k] - origin[k]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, axis = t1, k
		}
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, axis, true
}

func sign(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}
