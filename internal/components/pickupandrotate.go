package components

import (
	"fmt"

	"detective/internal/engine"
	"detective/internal/interaction"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterScript("PickupAndRotate", pickupAndRotateFactory, pickupAndRotateSerializer)
}

func pickupAndRotateFactory(props map[string]any) (engine.Component, error) {
	p := NewPickupAndRotate()
	if v, ok := props["tossScale"]; ok {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("tossScale: want number, got %T", v)
		}
		p.TossScale = float32(f)
		p.tossFromScene = true
	}
	if v, ok := props["playerTag"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("playerTag: want string, got %T", v)
		}
		p.PlayerTag = s
	}
	return p, nil
}

func pickupAndRotateSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PickupAndRotate)
	if !ok {
		return nil
	}
	return map[string]any{
		"tossScale": p.TossScale,
		"playerTag": p.PlayerTag,
	}
}

// PickupAndRotate makes a rigidbody object something the player can carry,
// inspect and toss. The object needs a Rigidbody.
type PickupAndRotate struct {
	engine.BaseComponent
	TossScale float32
	PlayerTag string

	// tossFromScene pins TossScale against SetDefaultTossScale.
	tossFromScene bool

	pickup *interaction.Pickup
	rb     *Rigidbody
}

func NewPickupAndRotate() *PickupAndRotate {
	return &PickupAndRotate{
		TossScale: interaction.DefaultTossScale,
		PlayerTag: "Player",
	}
}

func (p *PickupAndRotate) Start() {
	p.ensure()
	if !p.resolve() {
		log.Warn("pickup: holding anchor not found", "object", p.GetGameObject().Name, "tag", p.PlayerTag)
	}
}

func (p *PickupAndRotate) ensure() {
	if p.pickup != nil {
		return
	}
	p.rb = engine.GetComponent[*Rigidbody](p.GetGameObject())
	if p.rb == nil {
		log.Warn("pickup: no rigidbody", "object", p.GetGameObject().Name)
	}
	p.pickup = interaction.NewPickup(p)
	p.pickup.TossScale = p.TossScale
}

// resolve binds the first tagged character that has a holding anchor.
func (p *PickupAndRotate) resolve() bool {
	g := p.GetGameObject()
	if g == nil || g.Scene == nil {
		return false
	}
	for _, player := range g.Scene.FindByTag(p.PlayerTag) {
		anchor := FindHoldingAnchor(player)
		if anchor == nil {
			continue
		}
		if ch := engine.GetComponent[*DetectiveCharacter](player); ch != nil {
			p.pickup.Bind(anchor, ch)
		} else {
			p.pickup.Bind(anchor, nil)
		}
		return true
	}
	return false
}

// Bound reports whether a holding anchor has been found.
func (p *PickupAndRotate) Bound() bool {
	return p.pickup != nil && p.pickup.HasAnchor()
}

// Holding reports whether the object is being carried.
func (p *PickupAndRotate) Holding() bool {
	return p.pickup != nil && p.pickup.Holding
}

// Pickup toggles between carried and free.
func (p *PickupAndRotate) Pickup() (bool, error) {
	p.ensure()
	if !p.pickup.Holding && !p.pickup.HasAnchor() {
		p.resolve()
	}
	p.pickup.TossScale = p.TossScale
	holding, err := p.pickup.Pickup()
	if err != nil {
		return holding, fmt.Errorf("%s: %w", p.GetGameObject().Name, err)
	}
	log.Debug("pickup", "object", p.GetGameObject().Name, "holding", holding)
	return holding, nil
}

// SetDefaultTossScale applies a game-wide toss scale unless the scene gave
// this object its own.
func (p *PickupAndRotate) SetDefaultTossScale(v float32) {
	if !p.tossFromScene {
		p.TossScale = v
	}
}

func (p *PickupAndRotate) RotateActor() {
	p.ensure()
	p.pickup.RotateActor()
}

func (p *PickupAndRotate) SetEnableGravity(v bool) {
	if p.rb != nil {
		p.rb.UseGravity = v
	}
}

func (p *PickupAndRotate) SetSimulatePhysics(v bool) {
	if p.rb == nil {
		return
	}
	p.rb.SimulatePhysics = v
	if v {
		p.rb.Wake()
	} else {
		p.rb.Velocity = rl.Vector3{}
		p.rb.ConsumeForce()
	}
}

func (p *PickupAndRotate) SetCollisionEnabled(mode interaction.CollisionMode) {
	if p.rb != nil {
		p.rb.Collision = mode
	}
}

func (p *PickupAndRotate) AttachTo(parent *engine.GameObject) {
	p.GetGameObject().AttachTo(parent)
}

func (p *PickupAndRotate) Detach() {
	p.GetGameObject().Detach()
}

func (p *PickupAndRotate) SetWorldLocation(pos rl.Vector3) {
	p.GetGameObject().SetWorldPosition(pos)
}

func (p *PickupAndRotate) SetWorldRotation(r interaction.Rotator) {
	p.GetGameObject().SetWorldRotation(r.Euler())
}

func (p *PickupAndRotate) AddForce(force rl.Vector3) {
	if p.rb != nil {
		p.rb.AddForce(force)
	}
}

func (p *PickupAndRotate) Mass() float32 {
	if p.rb == nil {
		return 1
	}
	return p.rb.Mass
}
