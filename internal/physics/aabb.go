package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB is an axis-aligned box in world space, in cm.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3Scale(size, 0.5)
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// Intersects reports strict overlap: touching faces do not count, so a crate
// resting on the desk is not in contact.
func (a AABB) Intersects(b AABB) bool {
	for i := range 3 {
		if axis(a.Min, i) >= axis(b.Max, i) || axis(a.Max, i) <= axis(b.Min, i) {
			return false
		}
	}
	return true
}

// ClosestPoint returns the point of a nearest to p.
func (a AABB) ClosestPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: min(max(p.X, a.Min.X), a.Max.X),
		Y: min(max(p.Y, a.Min.Y), a.Max.Y),
		Z: min(max(p.Z, a.Min.Z), a.Max.Z),
	}
}

// Resolve returns the shortest push along one axis that moves a out of b,
// or zero when they do not overlap. Ties go to X, then Y, then Z, and to
// the positive side first.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3{}
	}
	var push rl.Vector3
	depth := float32(math.MaxFloat32)
	for i := range 3 {
		if up := axis(b.Max, i) - axis(a.Min, i); up < depth {
			depth, push = up, along(i, up)
		}
		if down := axis(a.Max, i) - axis(b.Min, i); down < depth {
			depth, push = down, along(i, -down)
		}
	}
	return push
}

// axis returns the X, Y or Z coordinate of v for i 0, 1 or 2.
func axis(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// along returns a vector of signed length s on axis i.
func along(i int, s float32) rl.Vector3 {
	switch i {
	case 0:
		return rl.Vector3{X: s}
	case 1:
		return rl.Vector3{Y: s}
	}
	return rl.Vector3{Z: s}
}
