package interaction

import (
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TraceHit is the result of a line trace.
type TraceHit struct {
	Object engine.GameObjectRef
	Point  rl.Vector3
}

// Pickupable is an object the player can hold and inspect.
type Pickupable interface {
	// Pickup toggles between free and held and reports whether the object
	// is now held.
	Pickup() (bool, error)
	RotateActor()
}

// Body is everything the player state machine needs from its host.
type Body interface {
	// CameraView returns the camera origin and unit forward vector.
	CameraView() (origin, forward rl.Vector3)
	// LineTrace casts a visibility ray from start to end.
	LineTrace(start, end rl.Vector3) (TraceHit, bool)
	// ResolvePickup returns nil if ref is gone or is not a pickup.
	ResolvePickup(ref engine.GameObjectRef) Pickupable

	AddMovementInput(forward, right float32)
	AddControllerYawInput(v float32)
	AddControllerPitchInput(v float32)
	ControlRotation() Rotator
	SetControlRotation(r Rotator)
	Jump()
	StopJumping()

	SetPitchLimits(l PitchLimits)
	SetFieldOfView(fov float32)
	SetAnchorOffset(o Offset)
	SetUsePawnControlRotation(v bool)
	SetUseControllerRotationYaw(v bool)
}

// Player is the first-person interaction state machine: it tracks what the
// crosshair is on, what is held, and whether the player is inspecting.
type Player struct {
	CanMove     bool
	HoldingItem bool
	Inspecting  bool

	// Target is the pickup under the crosshair. Only set while not holding.
	Target engine.GameObjectRef
	// Held is the pickup attached to the holding anchor.
	Held engine.GameObjectRef

	SavedLook        Rotator
	PitchLimits      PitchLimits
	SavedPitchLimits PitchLimits

	UsePawnControlRotation bool
	UseControllerYaw       bool

	FOV          float32
	AnchorOffset Offset

	Settings Settings

	StateChanged engine.EventWithArg[StateChange]

	body     Body
	hasRifle bool
	last     State
}

func NewPlayer(body Body, settings Settings) *Player {
	return &Player{
		CanMove:                true,
		UsePawnControlRotation: true,
		UseControllerYaw:       true,
		FOV:                    settings.FOVDefault,
		AnchorOffset:           settings.AnchorNear,
		PitchLimits:            settings.PitchLimits,
		SavedPitchLimits:       settings.PitchLimits,
		Settings:               settings,
		body:                   body,
	}
}

// Start pushes the initial camera configuration to the body and snapshots
// the pitch limits that inspection later restores.
func (p *Player) Start() {
	p.SavedPitchLimits = p.Settings.PitchLimits
	p.PitchLimits = p.SavedPitchLimits
	p.body.SetPitchLimits(p.PitchLimits)
	p.body.SetFieldOfView(p.FOV)
	p.body.SetAnchorOffset(p.AnchorOffset)
	p.body.SetUsePawnControlRotation(p.UsePawnControlRotation)
	p.body.SetUseControllerRotationYaw(p.UseControllerYaw)
}

// ApplySettings swaps the tunables at runtime. While a held item is being
// inspected the widened limits stay and the new ones become the restore
// target.
func (p *Player) ApplySettings(s Settings) {
	p.Settings = s
	p.SavedPitchLimits = s.PitchLimits
	if p.Inspecting && p.HoldingItem {
		return
	}
	p.PitchLimits = s.PitchLimits
	p.body.SetPitchLimits(p.PitchLimits)
}

// State derives the current interaction state from the flags.
func (p *Player) State() State {
	switch {
	case p.HoldingItem && p.Inspecting:
		return HoldingInspect
	case p.HoldingItem:
		return HoldingFree
	case p.Inspecting:
		return InspectingNoItem
	case p.Target.IsValid():
		return Targeting
	}
	return Idle
}

func (p *Player) HasRifle() bool {
	return p.hasRifle
}

func (p *Player) SetHasRifle(v bool) {
	p.hasRifle = v
}

// OnTick runs once per frame.
func (p *Player) OnTick(deltaTime float32) {
	defer p.publish()

	origin, forward := p.body.CameraView()

	if !p.HoldingItem {
		end := rl.Vector3Add(origin, rl.Vector3Scale(forward, p.Settings.TraceLength))
		hit, ok := p.body.LineTrace(origin, end)
		if ok && p.body.ResolvePickup(hit.Object) != nil {
			p.Target = hit.Object
		} else {
			p.Target.Clear()
		}
	}

	var held Pickupable
	if p.HoldingItem {
		held = p.body.ResolvePickup(p.Held)
		if held == nil {
			p.releaseStale()
		}
	}

	goal := p.Settings.FOVDefault
	offset := p.Settings.AnchorNear
	if p.Inspecting {
		if p.HoldingItem {
			goal = p.Settings.FOVInspectHolding
			offset = p.Settings.AnchorFar
			wide := p.Settings.InspectPitchLimit
			p.PitchLimits = PitchLimits{Min: -wide, Max: wide}
			p.body.SetPitchLimits(p.PitchLimits)
			held.RotateActor()
		} else {
			goal = p.Settings.FOVInspectEmpty
		}
	}

	p.FOV = Lerp(p.FOV, goal, p.Settings.FOVEase)
	p.body.SetFieldOfView(p.FOV)

	p.AnchorOffset = offset
	p.body.SetAnchorOffset(offset)
}

// OnMove applies movement input. Ignored while movement is locked.
func (p *Player) OnMove(axis rl.Vector2) {
	if !p.CanMove {
		return
	}
	p.body.AddMovementInput(axis.Y, axis.X)
}

// OnLook applies look input. Always active: while inspecting it rotates the
// held object instead of the body.
func (p *Player) OnLook(axis rl.Vector2) {
	p.body.AddControllerYawInput(axis.X)
	p.body.AddControllerPitchInput(axis.Y)
}

func (p *Player) OnJumpPressed() {
	if p.CanMove {
		p.body.Jump()
	}
}

func (p *Player) OnJumpReleased() {
	p.body.StopJumping()
}

// OnAction picks up the target, or drops the held item. Disabled while
// inspecting.
func (p *Player) OnAction() error {
	if p.Inspecting {
		return nil
	}
	if !p.HoldingItem && !p.Target.IsValid() {
		return nil
	}
	return p.TogglePickup()
}

func (p *Player) OnInspectPressed() {
	defer p.publish()

	if p.HoldingItem {
		p.SavedLook = p.body.ControlRotation()
		p.ToggleMovementLock()
		return
	}
	p.Inspecting = true
}

func (p *Player) OnInspectReleased() {
	defer p.publish()

	if p.Inspecting && p.HoldingItem {
		p.endHeldInspection()
		return
	}
	p.Inspecting = false
}

// ToggleMovementLock switches between free movement and locked-body
// inspection, where look input drives the camera freely.
func (p *Player) ToggleMovementLock() {
	p.CanMove = !p.CanMove
	p.Inspecting = !p.Inspecting
	p.UsePawnControlRotation = !p.UsePawnControlRotation
	p.UseControllerYaw = !p.UseControllerYaw
	p.body.SetUsePawnControlRotation(p.UsePawnControlRotation)
	p.body.SetUseControllerRotationYaw(p.UseControllerYaw)
}

// TogglePickup picks up Target or releases Held. On error the state is left
// untouched.
func (p *Player) TogglePickup() error {
	defer p.publish()

	ref := p.Target
	if p.HoldingItem {
		ref = p.Held
	}

	item := p.body.ResolvePickup(ref)
	if item == nil {
		if p.HoldingItem {
			p.releaseStale()
		} else {
			p.Target.Clear()
		}
		return nil
	}

	holding, err := item.Pickup()
	if err != nil {
		return err
	}

	p.HoldingItem = holding
	p.Target.Clear()
	if holding {
		p.Held = ref
	} else {
		p.Held.Clear()
	}
	return nil
}

func (p *Player) endHeldInspection() {
	p.body.SetControlRotation(p.SavedLook)
	p.PitchLimits = p.SavedPitchLimits
	p.body.SetPitchLimits(p.PitchLimits)
	p.ToggleMovementLock()
}

// releaseStale forgets a held object that no longer exists.
func (p *Player) releaseStale() {
	if p.Inspecting {
		p.endHeldInspection()
	}
	p.HoldingItem = false
	p.Held.Clear()
}

func (p *Player) publish() {
	st := p.State()
	if st == p.last {
		return
	}
	change := StateChange{From: p.last, To: st, Target: p.Target, Held: p.Held}
	p.last = st
	p.StateChanged.Invoke(change)
}
