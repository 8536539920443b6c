package components

import (
	"math"

	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool // If true, this is the active game camera
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        90.0,
		Near:       1.0,
		Far:        100000.0,
		Projection: rl.CameraPerspective,
		IsMain:     false,
	}
}

// lookProvider walks up the hierarchy for a component that steers the view.
func (c *Camera) lookProvider() engine.LookProvider {
	for obj := c.GetGameObject(); obj != nil; obj = obj.Parent {
		if lp := engine.FindComponent[engine.LookProvider](obj); lp != nil {
			return lp
		}
	}
	return nil
}

// Forward returns the unit view direction.
func (c *Camera) Forward() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{X: 1}
	}
	if lp := c.lookProvider(); lp != nil {
		return lp.GetLookDirection()
	}

	// No provider: face along the object's yaw.
	yawRad := float64(-g.WorldRotation().Y) * math.Pi / 180
	return rl.Vector3{X: float32(math.Cos(yawRad)), Z: float32(math.Sin(yawRad))}
}

// Position returns the eye position.
func (c *Camera) Position() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	eyePos := g.WorldPosition()

	// A camera on the same object as its controller sits at eye height.
	// A child camera is already placed by its local offset.
	if lp := c.lookProvider(); lp != nil && engine.FindComponent[engine.LookProvider](g) != nil {
		eyePos.Y += lp.GetEyeHeight()
	}
	return eyePos
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	if c.GetGameObject() == nil {
		return rl.Camera3D{}
	}
	eyePos := c.Position()

	return rl.Camera3D{
		Position:   eyePos,
		Target:     rl.Vector3Add(eyePos, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
