package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// plane is n·p + d = 0 with a unit normal pointing into the view volume.
type plane struct {
	n rl.Vector3
	d float32
}

func (p plane) distance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.n, point) + p.d
}

// Frustum is the camera's view volume as six inward planes, in the order
// left, right, bottom, top, near, far.
type Frustum [6]plane

// ExtractFrustum builds the view volume of a perspective camera. Each plane
// is the last row of the view-projection matrix plus or minus one of the
// other rows (Gribb and Hartmann).
func ExtractFrustum(camera rl.Camera3D, near, far, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	proj := rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	m := rl.MatrixMultiply(view, proj)

	// raylib matrices are column major: row r is M[r], M[r+4], M[r+8], M[r+12].
	rows := [4][4]float32{
		{m.M0, m.M4, m.M8, m.M12},
		{m.M1, m.M5, m.M9, m.M13},
		{m.M2, m.M6, m.M10, m.M14},
		{m.M3, m.M7, m.M11, m.M15},
	}
	w := rows[3]

	var f Frustum
	for i := range 3 {
		for j, sign := range [2]float32{1, -1} {
			r := rows[i]
			f[i*2+j] = newPlane(
				rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
				w[3]+sign*r[3],
			)
		}
	}
	return f
}

func newPlane(n rl.Vector3, d float32) plane {
	l := rl.Vector3Length(n)
	if l == 0 {
		return plane{n: n, d: d}
	}
	return plane{n: rl.Vector3Scale(n, 1/l), d: d / l}
}

// ContainsSphere reports whether any part of the sphere is inside.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f {
		if p.distance(center) < -radius {
			return false
		}
	}
	return true
}
