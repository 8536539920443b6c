package interaction

import (
	"errors"

	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoAnchor is returned when an object is picked up but no holding anchor
// was found for it. The object stays free.
var ErrNoAnchor = errors.New("pickup: holding anchor not resolved")

type CollisionMode int

const (
	NoCollision CollisionMode = iota
	QueryOnly
	QueryAndPhysics
)

func (m CollisionMode) String() string {
	switch m {
	case NoCollision:
		return "none"
	case QueryOnly:
		return "query"
	case QueryAndPhysics:
		return "query+physics"
	}
	return "unknown"
}

// PhysicsBody is the simulated body a Pickup drives.
type PhysicsBody interface {
	SetEnableGravity(v bool)
	SetSimulatePhysics(v bool)
	SetCollisionEnabled(mode CollisionMode)
	// AttachTo and Detach keep the world transform.
	AttachTo(parent *engine.GameObject)
	Detach()
	SetWorldLocation(pos rl.Vector3)
	SetWorldRotation(r Rotator)
	AddForce(force rl.Vector3)
	Mass() float32
}

// Anchor is the point held objects snap to.
type Anchor interface {
	GetGameObject() *engine.GameObject
}

// ViewSource is the controlling player's view.
type ViewSource interface {
	CameraForward() rl.Vector3
	ControlRotation() Rotator
}

// Pickup is the free/held state machine of a physics object.
type Pickup struct {
	Holding         bool
	GravityEnabled  bool
	SimulatePhysics bool
	Collision       CollisionMode
	TossScale       float32

	body   PhysicsBody
	anchor Anchor
	view   ViewSource
}

// NewPickup returns a free pickup and applies the free configuration to body.
func NewPickup(body PhysicsBody) *Pickup {
	p := &Pickup{
		GravityEnabled:  true,
		SimulatePhysics: true,
		Collision:       QueryAndPhysics,
		TossScale:       DefaultTossScale,
		body:            body,
	}
	body.SetEnableGravity(p.GravityEnabled)
	body.SetSimulatePhysics(p.SimulatePhysics)
	body.SetCollisionEnabled(p.Collision)
	return p
}

// Bind sets the anchor and view. Either may be nil.
func (p *Pickup) Bind(anchor Anchor, view ViewSource) {
	p.anchor = anchor
	p.view = view
}

func (p *Pickup) HasAnchor() bool {
	return p.anchor != nil && p.anchor.GetGameObject() != nil
}

// Pickup toggles between free and held and reports whether the object is
// held afterwards.
func (p *Pickup) Pickup() (bool, error) {
	if !p.Holding {
		if !p.HasAnchor() {
			return false, ErrNoAnchor
		}
		p.hold()
		return true, nil
	}
	p.release()
	return false, nil
}

func (p *Pickup) hold() {
	p.Holding = true
	p.GravityEnabled = false
	p.SimulatePhysics = false
	p.Collision = NoCollision
	p.body.SetEnableGravity(false)
	p.body.SetSimulatePhysics(false)
	p.body.SetCollisionEnabled(NoCollision)

	anchor := p.anchor.GetGameObject()
	p.body.AttachTo(anchor)
	p.body.SetWorldLocation(anchor.WorldPosition())
}

func (p *Pickup) release() {
	p.Holding = false
	p.GravityEnabled = true
	p.SimulatePhysics = true
	p.Collision = QueryAndPhysics
	p.body.SetEnableGravity(true)
	p.body.SetSimulatePhysics(true)
	p.body.SetCollisionEnabled(QueryAndPhysics)
	p.body.Detach()

	if p.view == nil {
		return
	}
	force := rl.Vector3Scale(p.view.CameraForward(), p.TossScale*p.body.Mass())
	p.body.AddForce(force)
}

// RotateActor snaps the object to the player's control rotation.
func (p *Pickup) RotateActor() {
	if p.view == nil {
		return
	}
	p.body.SetWorldRotation(p.view.ControlRotation())
}
