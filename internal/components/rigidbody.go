package components

import (
	"detective/internal/engine"
	"detective/internal/interaction"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds, in centimetres.
const (
	SleepVelocityThreshold = 5.0 // cm/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity    rl.Vector3
	Mass        float32
	Bounciness  float32 // 0 = no bounce, 1 = perfect bounce
	Friction    float32 // 0 = ice, 1 = stops immediately
	UseGravity  bool
	IsKinematic bool // moves but doesn't get pushed by physics

	// SimulatePhysics turns integration and collision response off while an
	// object is carried.
	SimulatePhysics bool
	Collision       interaction.CollisionMode

	// force accumulated since the last physics step
	force rl.Vector3

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32
	CanSleep   bool
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:            1.0,
		Bounciness:      0.3,
		Friction:        0.1,
		UseGravity:      true,
		SimulatePhysics: true,
		Collision:       interaction.QueryAndPhysics,
		CanSleep:        true,
	}
}

// Simulated reports whether the physics step should move this body.
func (r *Rigidbody) Simulated() bool {
	return r.SimulatePhysics && !r.IsKinematic && r.Collides()
}

// Collides reports whether the body takes part in collision response.
// QueryOnly bodies are hit by traces but never push or get pushed.
func (r *Rigidbody) Collides() bool {
	return r.Collision == interaction.QueryAndPhysics
}

// Queryable reports whether traces can hit this body.
func (r *Rigidbody) Queryable() bool {
	return r.Collision != interaction.NoCollision
}

// AddForce accumulates a force (mass * cm/s^2) applied on the next step.
func (r *Rigidbody) AddForce(force rl.Vector3) {
	r.force = rl.Vector3Add(r.force, force)
	r.Wake()
}

// ConsumeForce returns the accumulated force and clears it.
func (r *Rigidbody) ConsumeForce() rl.Vector3 {
	f := r.force
	r.force = rl.Vector3{}
	return f
}

func (r *Rigidbody) PendingForce() rl.Vector3 {
	return r.force
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	if rl.Vector3Length(r.Velocity) < SleepVelocityThreshold {
		r.sleepTimer += deltaTime

		// Extra damping when nearly at rest to reduce jitter
		r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
