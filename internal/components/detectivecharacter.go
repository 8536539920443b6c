package components

import (
	"detective/internal/engine"
	"detective/internal/interaction"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DetectiveCharacter is the first-person body driven by interaction.Player.
// It owns the controller rotation, the camera rotation mode and the
// movement requested by input, and feeds them to the engine components on
// its object: a CharacterController on the body, a Camera child and a
// HoldingAnchor child.
type DetectiveCharacter struct {
	engine.BaseComponent

	MoveSpeed float32 // cm/s
	JumpSpeed float32 // cm/s
	EyeHeight float32 // used when the camera sits on the body itself

	Player *interaction.Player

	yaw, pitch float32
	bodyYaw    float32
	view       interaction.Rotator
	limits     interaction.PitchLimits

	usePawnControl   bool
	useControllerYaw bool

	moveForward, moveRight float32
	jumpHeld               bool

	controller *CharacterController
	camera     *Camera
	anchor     *HoldingAnchor
}

func NewDetectiveCharacter(settings interaction.Settings) *DetectiveCharacter {
	d := &DetectiveCharacter{
		MoveSpeed:        600,
		JumpSpeed:        420,
		EyeHeight:        60,
		limits:           settings.PitchLimits,
		usePawnControl:   true,
		useControllerYaw: true,
	}
	d.Player = interaction.NewPlayer(d, settings)
	d.Player.StateChanged.AddListener(func(c interaction.StateChange) {
		log.Info("interaction", "from", c.From, "to", c.To, "target", c.Target.UID, "held", c.Held.UID)
	})
	return d
}

func (d *DetectiveCharacter) Start() {
	g := d.GetGameObject()
	d.controller = engine.GetComponent[*CharacterController](g)
	d.camera = findCamera(g)
	d.anchor = FindHoldingAnchor(g)

	if d.controller == nil {
		log.Error("detective: no CharacterController", "object", g.Name)
	}
	if d.camera == nil {
		log.Error("detective: no Camera", "object", g.Name)
	}
	if d.anchor == nil {
		log.Warn("detective: no holding anchor", "object", g.Name, "want", HoldingAnchorName)
	}

	d.yaw = -g.Transform.Rotation.Y
	d.bodyYaw = d.yaw
	d.view = d.ControlRotation()
	d.Player.Start()
}

func findCamera(g *engine.GameObject) *Camera {
	if c := engine.GetComponent[*Camera](g); c != nil {
		return c
	}
	for _, child := range g.Children {
		if c := findCamera(child); c != nil {
			return c
		}
	}
	return nil
}

func (d *DetectiveCharacter) Update(deltaTime float32) {
	g := d.GetGameObject()

	if d.useControllerYaw {
		d.bodyYaw = d.yaw
		g.Transform.Rotation.Y = -d.bodyYaw
	}
	if d.usePawnControl {
		d.view = d.ControlRotation()
	}

	d.Player.OnTick(deltaTime)
	d.applyMovement(deltaTime)
}

func (d *DetectiveCharacter) applyMovement(deltaTime float32) {
	facing := interaction.Rotator{Yaw: d.bodyYaw}
	dir := rl.Vector3Add(
		rl.Vector3Scale(facing.Forward(), d.moveForward),
		rl.Vector3Scale(facing.Right(), d.moveRight),
	)
	if rl.Vector3Length(dir) > 1 {
		dir = rl.Vector3Normalize(dir)
	}
	d.moveForward, d.moveRight = 0, 0

	if d.controller == nil {
		return
	}
	if d.jumpHeld && d.controller.IsGrounded() {
		d.controller.SetVelocityY(d.JumpSpeed)
		d.controller.SetGrounded(false)
	}
	d.controller.SimpleMove(rl.Vector3Scale(dir, d.MoveSpeed), deltaTime)
}

// View returns the rotation the camera is currently rendering with.
func (d *DetectiveCharacter) View() interaction.Rotator {
	return d.view
}

// GetLookDirection implements engine.LookProvider.
func (d *DetectiveCharacter) GetLookDirection() rl.Vector3 {
	return d.view.Forward()
}

func (d *DetectiveCharacter) GetEyeHeight() float32 {
	return d.EyeHeight
}

// Input handlers.

func (d *DetectiveCharacter) OnMove(axis rl.Vector2) { d.Player.OnMove(axis) }
func (d *DetectiveCharacter) OnLook(axis rl.Vector2) { d.Player.OnLook(axis) }
func (d *DetectiveCharacter) OnInspectPressed()      { d.Player.OnInspectPressed() }
func (d *DetectiveCharacter) OnInspectReleased()     { d.Player.OnInspectReleased() }
func (d *DetectiveCharacter) OnJumpPressed()         { d.Player.OnJumpPressed() }
func (d *DetectiveCharacter) OnJumpReleased()        { d.Player.OnJumpReleased() }

func (d *DetectiveCharacter) OnAction() {
	if err := d.Player.OnAction(); err != nil {
		log.Warn("pickup failed", "err", err)
	}
}

// interaction.Body

func (d *DetectiveCharacter) CameraView() (origin, forward rl.Vector3) {
	if d.camera != nil {
		origin = d.camera.Position()
	} else {
		origin = d.GetGameObject().WorldPosition()
		origin.Y += d.EyeHeight
	}
	return origin, d.view.Forward()
}

func (d *DetectiveCharacter) LineTrace(start, end rl.Vector3) (interaction.TraceHit, bool) {
	g := d.GetGameObject()
	if g.Scene == nil || g.Scene.World == nil {
		return interaction.TraceHit{}, false
	}
	delta := rl.Vector3Subtract(end, start)
	dist := rl.Vector3Length(delta)
	if dist == 0 {
		return interaction.TraceHit{}, false
	}
	hit, ok := g.Scene.World.Raycast(start, delta, dist, g)
	if !ok {
		return interaction.TraceHit{}, false
	}
	return interaction.TraceHit{Object: engine.RefTo(hit.GameObject), Point: hit.Point}, true
}

func (d *DetectiveCharacter) ResolvePickup(ref engine.GameObjectRef) interaction.Pickupable {
	obj := ref.Get(d.GetGameObject().Scene)
	if p := engine.GetComponent[*PickupAndRotate](obj); p != nil {
		return p
	}
	return nil
}

func (d *DetectiveCharacter) AddMovementInput(forward, right float32) {
	d.moveForward += forward
	d.moveRight += right
}

func (d *DetectiveCharacter) AddControllerYawInput(v float32) {
	d.yaw += v
}

func (d *DetectiveCharacter) AddControllerPitchInput(v float32) {
	d.pitch = d.limits.Clamp(d.pitch + v)
}

func (d *DetectiveCharacter) ControlRotation() interaction.Rotator {
	return interaction.Rotator{Pitch: d.pitch, Yaw: d.yaw}
}

func (d *DetectiveCharacter) SetControlRotation(r interaction.Rotator) {
	d.yaw = r.Yaw
	d.pitch = d.limits.Clamp(r.Pitch)
}

// CameraForward is the toss direction for released pickups.
func (d *DetectiveCharacter) CameraForward() rl.Vector3 {
	return d.view.Forward()
}

func (d *DetectiveCharacter) Jump() {
	d.jumpHeld = true
}

func (d *DetectiveCharacter) StopJumping() {
	d.jumpHeld = false
}

func (d *DetectiveCharacter) SetPitchLimits(l interaction.PitchLimits) {
	d.limits = l
	d.pitch = l.Clamp(d.pitch)
}

func (d *DetectiveCharacter) PitchLimits() interaction.PitchLimits {
	return d.limits
}

func (d *DetectiveCharacter) SetFieldOfView(fov float32) {
	if d.camera != nil {
		d.camera.FOV = fov
	}
}

func (d *DetectiveCharacter) SetAnchorOffset(o interaction.Offset) {
	if d.anchor != nil {
		d.anchor.SetOffset(o)
	}
}

func (d *DetectiveCharacter) SetUsePawnControlRotation(v bool) {
	d.usePawnControl = v
}

func (d *DetectiveCharacter) SetUseControllerRotationYaw(v bool) {
	d.useControllerYaw = v
}

// NewDetective builds the character hierarchy: a tagged body with a
// CharacterController, a Camera child at eye height and the holding anchor.
// Dimensions follow a 55 x 96 capsule.
// Add it to a scene with Scene.AddHierarchy.
func NewDetective(name string, settings interaction.Settings) (*engine.GameObject, *DetectiveCharacter) {
	body := engine.NewGameObject(name)
	body.Tags = []string{"Player"}
	body.AddComponent(NewCharacterController())
	character := NewDetectiveCharacter(settings)
	body.AddComponent(character)

	cam := engine.NewGameObject("Camera")
	cam.Transform.Position = interaction.Offset{Forward: -10, Up: character.EyeHeight}.Local()
	camera := NewCamera()
	camera.FOV = settings.FOVDefault
	camera.IsMain = true
	cam.AddComponent(camera)
	body.AddChild(cam)

	anchor := engine.NewGameObject(HoldingAnchorName)
	anchor.AddComponent(NewHoldingAnchor(settings.AnchorNear))
	body.AddChild(anchor)

	return body, character
}
