package components

import (
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CharacterController moves a box-shaped character with collision
// detection, gravity, and stair stepping. Position is the box center.
type CharacterController struct {
	engine.BaseComponent

	Height     float32 // Total height of the box
	Radius     float32 // Half-width of the box
	StepHeight float32 // Max height of steps to climb

	UseGravity bool
	Gravity    float32 // positive = down

	// Runtime state
	velocity   rl.Vector3
	isGrounded bool
}

func NewCharacterController() *CharacterController {
	return &CharacterController{
		Height:     192,
		Radius:     55,
		StepHeight: 45,
		UseGravity: true,
		Gravity:    980,
	}
}

// Move moves the character by motion, resolving collisions against every
// blocking box collider in the world. Returns the actual displacement.
func (c *CharacterController) Move(motion rl.Vector3) rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}

	var colliders []*engine.GameObject
	if g.Scene != nil && g.Scene.World != nil {
		colliders = g.Scene.World.GetCollidableObjects()
	}

	originalPos := g.Transform.Position

	// Horizontal first so walls don't eat the vertical move and vice versa.
	horizontal := rl.Vector3{X: motion.X, Z: motion.Z}
	if horizontal.X != 0 || horizontal.Z != 0 {
		c.moveWithCollision(g, horizontal, colliders)
	}
	if motion.Y != 0 {
		c.moveWithCollision(g, rl.Vector3{Y: motion.Y}, colliders)
	}

	return rl.Vector3Subtract(g.Transform.Position, originalPos)
}

func (c *CharacterController) bounds(pos rl.Vector3) (min, max rl.Vector3) {
	half := rl.Vector3{X: c.Radius, Y: c.Height / 2, Z: c.Radius}
	return rl.Vector3Subtract(pos, half), rl.Vector3Add(pos, half)
}

// blocks reports whether other stops the character.
func (c *CharacterController) blocks(g, other *engine.GameObject) bool {
	if other == g || !other.Active {
		return false
	}
	for p := other.Parent; p != nil; p = p.Parent {
		if p == g {
			return false
		}
	}
	if rb := engine.GetComponent[*Rigidbody](other); rb != nil {
		if rb.IsKinematic || !rb.Queryable() {
			return false
		}
	}
	return true
}

func (c *CharacterController) moveWithCollision(g *engine.GameObject, motion rl.Vector3, colliders []*engine.GameObject) {
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, motion)
	charMin, charMax := c.bounds(g.Transform.Position)

	for _, other := range colliders {
		if !c.blocks(g, other) {
			continue
		}
		box := engine.GetComponent[*BoxCollider](other)
		if box == nil {
			continue
		}
		staticMin, staticMax := box.Bounds()
		if !aabbOverlap(charMin, charMax, staticMin, staticMax) {
			continue
		}

		pushOut := calculatePushOut(charMin, charMax, staticMin, staticMax)

		// A horizontal hit against something low enough is a step.
		if pushOut.Y == 0 && motion.Y == 0 {
			stepHeight := staticMax.Y - charMin.Y
			if stepHeight > 0 && stepHeight <= c.StepHeight {
				stepped := g.Transform.Position
				stepped.Y += stepHeight + 0.1
				testMin, testMax := c.bounds(stepped)
				if !aabbOverlap(testMin, testMax, staticMin, staticMax) {
					g.Transform.Position = stepped
					c.isGrounded = true
					charMin, charMax = c.bounds(stepped)
					continue
				}
			}
		}

		g.Transform.Position = rl.Vector3Add(g.Transform.Position, pushOut)
		charMin, charMax = c.bounds(g.Transform.Position)

		if pushOut.Y > 0 {
			c.isGrounded = true
			c.velocity.Y = 0
		} else if pushOut.Y < 0 && c.velocity.Y > 0 {
			// head hit a ceiling
			c.velocity.Y = 0
		}
	}
}

// SimpleMove moves the character at speed (cm/s, horizontal) with gravity
// applied automatically.
func (c *CharacterController) SimpleMove(speed rl.Vector3, deltaTime float32) {
	if c.UseGravity {
		if !c.isGrounded || c.velocity.Y > 0 {
			c.velocity.Y -= c.Gravity * deltaTime
		} else {
			// Small downward velocity keeps ground contact detectable.
			c.velocity.Y = -1
		}
	}

	motion := rl.Vector3{
		X: speed.X * deltaTime,
		Y: c.velocity.Y * deltaTime,
		Z: speed.Z * deltaTime,
	}

	c.isGrounded = false
	c.Move(motion)
}

func (c *CharacterController) IsGrounded() bool {
	return c.isGrounded
}

func (c *CharacterController) SetGrounded(grounded bool) {
	c.isGrounded = grounded
}

func (c *CharacterController) GetVelocity() rl.Vector3 {
	return c.velocity
}

// SetVelocityY sets the vertical velocity (for jumping)
func (c *CharacterController) SetVelocityY(vy float32) {
	c.velocity.Y = vy
}

func aabbOverlap(aMin, aMax, bMin, bMax rl.Vector3) bool {
	return aMin.X < bMax.X && aMax.X > bMin.X &&
		aMin.Y < bMax.Y && aMax.Y > bMin.Y &&
		aMin.Z < bMax.Z && aMax.Z > bMin.Z
}

// calculatePushOut returns the smallest single-axis move that separates a
// from b.
func calculatePushOut(aMin, aMax, bMin, bMax rl.Vector3) rl.Vector3 {
	pick := func(intoNeg, intoPos float32) float32 {
		if intoNeg < intoPos {
			return -intoNeg
		}
		return intoPos
	}
	pushX := pick(aMax.X-bMin.X, bMax.X-aMin.X)
	pushY := pick(aMax.Y-bMin.Y, bMax.Y-aMin.Y)
	pushZ := pick(aMax.Z-bMin.Z, bMax.Z-aMin.Z)

	absX, absY, absZ := absf(pushX), absf(pushY), absf(pushZ)
	switch {
	case absX <= absY && absX <= absZ:
		return rl.Vector3{X: pushX}
	case absY <= absX && absY <= absZ:
		return rl.Vector3{Y: pushY}
	default:
		return rl.Vector3{Z: pushZ}
	}
}
