// Package picking casts rays from the cursor and selects scene entities.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // normalized
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB builds a box from two corners, swapping components so that
// Min <= Max on every axis (negative scales flip corners).
func NewAABB(a, b mgl32.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	for i := 0; i < 3; i++ {
		if box.Min[i] > box.Max[i] {
			box.Min[i], box.Max[i] = box.Max[i], box.Min[i]
		}
	}
	return box
}

// TransformAABB moves a local box to world space by transforming both
// corners with m. Only translation and scale are expected in m.
func TransformAABB(min, max mgl32.Vec3, m mgl32.Mat4) AABB {
	return NewAABB(
		mgl32.TransformCoordinate(min, m),
		mgl32.TransformCoordinate(max, m),
	)
}

// ScreenToRay unprojects a cursor position (pixels, origin top-left) into
// a world-space ray starting at origin, the camera position.
func ScreenToRay(cursorX, cursorY float32, width, height int, invProj, invView mgl32.Mat4, origin mgl32.Vec3) Ray {
	x := 2*cursorX/float32(width) - 1
	y := 1 - 2*cursorY/float32(height)

	// The near plane point gives a view-space direction once z is pinned
	// and w cleared, so the inverse view matrix only rotates it.
	eye := invProj.Mul4x1(mgl32.Vec4{x, y, -1, 1})
	eye[2] = -1
	eye[3] = 0

	dir := invView.Mul4x1(eye).Vec3()
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Direction: dir}
}

// IntersectAABB runs the slab test. near is the entry distance and may be
// negative when the origin lies inside the box; far is the exit distance.
// Touching a face or edge counts as a hit.
func (r Ray) IntersectAABB(box AABB) (near, far float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (box.Min[i] - r.Origin[i]) / r.Direction[i]
		t2 := (box.Max[i] - r.Origin[i]) / r.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
