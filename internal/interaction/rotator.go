package interaction

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rotator is an orientation in degrees. Yaw turns around the up axis, Pitch
// tilts the forward vector up (positive) or down.
type Rotator struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// Forward returns the unit look vector for r.
func (r Rotator) Forward() rl.Vector3 {
	yaw := float64(r.Yaw) * math.Pi / 180
	pitch := float64(r.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

// Right returns the horizontal unit vector to the right of r's yaw.
func (r Rotator) Right() rl.Vector3 {
	yaw := float64(r.Yaw) * math.Pi / 180
	return rl.Vector3{
		X: float32(-math.Sin(yaw)),
		Y: 0,
		Z: float32(math.Cos(yaw)),
	}
}

// Euler converts r into engine Transform.Rotation angles.
func (r Rotator) Euler() rl.Vector3 {
	return rl.Vector3{X: r.Roll, Y: -r.Yaw, Z: r.Pitch}
}

// FromEuler is the inverse of Rotator.Euler.
func FromEuler(e rl.Vector3) Rotator {
	return Rotator{Pitch: e.Z, Yaw: -e.Y, Roll: e.X}
}

// PitchLimits bounds the controller pitch, in degrees.
type PitchLimits struct {
	Min float32
	Max float32
}

func (l PitchLimits) Clamp(pitch float32) float32 {
	if pitch > l.Max {
		return l.Max
	}
	if pitch < l.Min {
		return l.Min
	}
	return pitch
}

// Offset is a body-relative position: forward along the body yaw, right,
// and up.
type Offset struct {
	Forward float32
	Right   float32
	Up      float32
}

// Local converts o into a child Transform.Position under a body whose
// rotation comes from Rotator.Euler.
func (o Offset) Local() rl.Vector3 {
	return rl.Vector3{X: o.Forward, Y: o.Up, Z: o.Right}
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
