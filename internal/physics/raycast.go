package physics

import (
	"math"

	"detective/internal/components"
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit = engine.RaycastResult

// Raycast returns the closest hit along direction within maxDistance.
// Inactive objects, ignored objects and bodies that opted out of queries
// are skipped.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (RaycastHit, bool) {
	dir := rl.Vector3Normalize(direction)
	best := RaycastHit{Distance: maxDistance}
	found := false
	if dir == (rl.Vector3{}) {
		return best, false
	}

	for _, obj := range p.All() {
		if !traceable(obj, ignore) {
			continue
		}
		var hits []RaycastHit
		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
			lo, hi := box.Bounds()
			if hit, ok := rayBox(origin, dir, AABB{Min: lo, Max: hi}); ok {
				hits = append(hits, hit)
			}
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
			if hit, ok := raySphere(origin, dir, sphere.GetCenter(), sphere.GetWorldRadius()); ok {
				hits = append(hits, hit)
			}
		}
		for _, hit := range hits {
			if hit.Distance < best.Distance {
				best, found = hit, true
				best.GameObject = obj
			}
		}
	}
	return best, found
}

// traceable reports whether a trace may stop on obj.
func traceable(obj *engine.GameObject, ignore []*engine.GameObject) bool {
	if !obj.Active {
		return false
	}
	for _, g := range ignore {
		if g == obj {
			return false
		}
	}
	rb := engine.GetComponent[*components.Rigidbody](obj)
	return rb == nil || rb.Queryable()
}

// rayBox clips a unit ray against the three slabs of box. The hit normal
// is the outward normal of the face the ray crossed: the last slab entered,
// or the first slab left when the origin is inside the box.
func rayBox(origin, dir rl.Vector3, box AABB) (RaycastHit, bool) {
	enter, exit := float32(math.Inf(-1)), float32(math.Inf(1))
	var enterNormal, exitNormal rl.Vector3

	for i := range 3 {
		o, d := axis(origin, i), axis(dir, i)
		lo, hi := axis(box.Min, i), axis(box.Max, i)
		if d == 0 {
			if o < lo || o > hi {
				return RaycastHit{}, false
			}
			continue
		}
		near, far := (lo-o)/d, (hi-o)/d
		// Moving up the axis the ray enters at Min and leaves at Max.
		side := float32(-1)
		if near > far {
			near, far = far, near
			side = 1
		}
		if near > enter {
			enter, enterNormal = near, along(i, side)
		}
		if far < exit {
			exit, exitNormal = far, along(i, -side)
		}
	}

	if enter > exit || exit < 0 || math.IsInf(float64(exit), 1) {
		return RaycastHit{}, false
	}
	t, normal := enter, enterNormal
	if t < 0 {
		t, normal = exit, exitNormal
	}
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(dir, t)),
		Normal:   normal,
		Distance: t,
	}, true
}

// raySphere solves |origin + t*dir - center| = radius for a unit dir and
// keeps the nearest t that is not behind the origin.
func raySphere(origin, dir, center rl.Vector3, radius float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	halfB := rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	disc := halfB*halfB - c
	if disc < 0 {
		return RaycastHit{}, false
	}
	root := float32(math.Sqrt(float64(disc)))
	t := -halfB - root
	if t < 0 {
		t = -halfB + root
	}
	if t < 0 {
		return RaycastHit{}, false
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	return RaycastHit{
		Point:    point,
		Normal:   rl.Vector3Normalize(rl.Vector3Subtract(point, center)),
		Distance: t,
	}, true
}
