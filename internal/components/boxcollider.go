package components

import (
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an axis-aligned box. Rotation is ignored for collision.
type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	return rl.Vector3Add(g.WorldPosition(), b.Offset)
}

// GetWorldSize returns Size scaled by the object's world scale, always
// positive.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: absf(b.Size.X * s.X),
		Y: absf(b.Size.Y * s.Y),
		Z: absf(b.Size.Z * s.Z),
	}
}

// Bounds returns the world-space min and max corners.
func (b *BoxCollider) Bounds() (min, max rl.Vector3) {
	center := b.GetCenter()
	half := rl.Vector3Scale(b.GetWorldSize(), 0.5)
	return rl.Vector3Subtract(center, half), rl.Vector3Add(center, half)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
