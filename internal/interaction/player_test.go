package interaction

import (
	"errors"
	"math"
	"testing"

	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeItem struct {
	holding bool
	err     error
	pickups int
	rotates int
}

func (f *fakeItem) Pickup() (bool, error) {
	f.pickups++
	if f.err != nil {
		return f.holding, f.err
	}
	f.holding = !f.holding
	return f.holding, nil
}

func (f *fakeItem) RotateActor() { f.rotates++ }

type fakeBody struct {
	origin, forward rl.Vector3
	hit             *TraceHit
	traces          int
	lastTraceEnd    rl.Vector3
	items           map[uint64]Pickupable

	moveForward, moveRight float32
	yaw, pitch             float32
	control                Rotator
	jumping                bool

	limits      PitchLimits
	fov         float32
	offset      Offset
	pawnControl bool
	controlYaw  bool
}

func newFakeBody() *fakeBody {
	return &fakeBody{
		forward: rl.Vector3{X: 1},
		items:   map[uint64]Pickupable{},
	}
}

func (b *fakeBody) CameraView() (rl.Vector3, rl.Vector3) { return b.origin, b.forward }

func (b *fakeBody) LineTrace(start, end rl.Vector3) (TraceHit, bool) {
	b.traces++
	b.lastTraceEnd = end
	if b.hit == nil {
		return TraceHit{}, false
	}
	return *b.hit, true
}

func (b *fakeBody) ResolvePickup(ref engine.GameObjectRef) Pickupable {
	if !ref.IsValid() {
		return nil
	}
	return b.items[ref.UID]
}

func (b *fakeBody) AddMovementInput(forward, right float32) {
	b.moveForward += forward
	b.moveRight += right
}
func (b *fakeBody) AddControllerYawInput(v float32) { b.yaw += v }
func (b *fakeBody) AddControllerPitchInput(v float32) { b.pitch += v }
func (b *fakeBody) ControlRotation() Rotator { return b.control }
func (b *fakeBody) SetControlRotation(r Rotator) { b.control = r }
func (b *fakeBody) Jump() { b.jumping = true }
func (b *fakeBody) StopJumping() { b.jumping = false }
func (b *fakeBody) SetPitchLimits(l PitchLimits) { b.limits = l }
func (b *fakeBody) SetFieldOfView(fov float32) { b.fov = fov }
func (b *fakeBody) SetAnchorOffset(o Offset) { b.offset = o }
func (b *fakeBody) SetUsePawnControlRotation(v bool) { b.pawnControl = v }
func (b *fakeBody) SetUseControllerRotationYaw(v bool) {
	b.controlYaw = v
}

// aim points the fake trace at an item registered under uid.
func (b *fakeBody) aim(uid uint64, item Pickupable) {
	if item != nil {
		b.items[uid] = item
	}
	b.hit = &TraceHit{Object: engine.GameObjectRef{UID: uid}}
}

func newTestPlayer() (*Player, *fakeBody) {
	body := newFakeBody()
	p := NewPlayer(body, DefaultSettings())
	p.Start()
	return p, body
}

func TestPlayerStartPushesDefaults(t *testing.T) {
	p, body := newTestPlayer()

	if !p.CanMove || p.HoldingItem || p.Inspecting {
		t.Fatalf("unexpected initial flags: %+v", p)
	}
	if body.fov != 90 {
		t.Errorf("Expected FOV 90, got %f", body.fov)
	}
	if body.limits != DefaultSettings().PitchLimits {
		t.Errorf("Expected default pitch limits, got %+v", body.limits)
	}
	if !body.pawnControl || !body.controlYaw {
		t.Error("camera and body should follow the controller at start")
	}
	if p.State() != Idle {
		t.Errorf("Expected Idle, got %s", p.State())
	}
}

func TestPlayerTraceUsesFixedLength(t *testing.T) {
	p, body := newTestPlayer()
	body.origin = rl.Vector3{X: 1, Y: 2, Z: 3}
	body.forward = rl.Vector3{Z: 1}

	p.OnTick(1.0 / 60)

	want := rl.Vector3{X: 1, Y: 2, Z: 203}
	if body.lastTraceEnd != want {
		t.Errorf("Expected trace end %v, got %v", want, body.lastTraceEnd)
	}
}

func TestPlayerTargeting(t *testing.T) {
	p, body := newTestPlayer()
	item := &fakeItem{}

	body.aim(7, item)
	p.OnTick(0.016)
	if p.Target.UID != 7 || p.State() != Targeting {
		t.Fatalf("Expected target 7 in Targeting, got %d in %s", p.Target.UID, p.State())
	}

	// Hitting something that is not a pickup clears the target.
	body.aim(8, nil)
	p.OnTick(0.016)
	if p.Target.IsValid() {
		t.Error("non-pickup hit should clear the target")
	}

	body.aim(7, nil)
	p.OnTick(0.016)
	body.hit = nil
	p.OnTick(0.016)
	if p.Target.IsValid() {
		t.Error("a miss should clear the target")
	}
}

// Action on a traced pickup grabs it and clears the target.
func TestPlayerPickUpTarget(t *testing.T) {
	p, body := newTestPlayer()
	item := &fakeItem{}
	body.aim(3, item)
	p.OnTick(0.016)

	if err := p.OnAction(); err != nil {
		t.Fatalf("OnAction: %v", err)
	}

	if !p.HoldingItem || !item.holding {
		t.Fatal("item should be held")
	}
	if p.Target.IsValid() {
		t.Error("target must be cleared while holding")
	}
	if p.Held.UID != 3 {
		t.Errorf("Expected held 3, got %d", p.Held.UID)
	}
	if p.State() != HoldingFree {
		t.Errorf("Expected HoldingFree, got %s", p.State())
	}

	// No trace while holding.
	traces := body.traces
	p.OnTick(0.016)
	if body.traces != traces {
		t.Error("player should not trace while holding")
	}
	if p.Target.IsValid() {
		t.Error("target must stay empty while holding")
	}

	if err := p.OnAction(); err != nil {
		t.Fatalf("OnAction drop: %v", err)
	}
	if p.HoldingItem || item.holding || p.Held.IsValid() {
		t.Error("second action should drop the item")
	}
}

func TestPlayerActionWithoutTargetIsNoop(t *testing.T) {
	p, _ := newTestPlayer()

	if err := p.OnAction(); err != nil {
		t.Fatalf("OnAction: %v", err)
	}
	if p.HoldingItem {
		t.Error("nothing should be held")
	}
}

func TestPlayerActionIgnoredWhileInspecting(t *testing.T) {
	p, body := newTestPlayer()
	item := &fakeItem{}
	body.aim(4, item)
	p.OnTick(0.016)

	p.OnInspectPressed()
	_ = p.OnAction()

	if item.pickups != 0 {
		t.Error("action must be ignored while inspecting")
	}
}

func TestPlayerPickupErrorLeavesStateUntouched(t *testing.T) {
	p, body := newTestPlayer()
	item := &fakeItem{err: ErrNoAnchor}
	body.aim(5, item)
	p.OnTick(0.016)

	err := p.OnAction()
	if !errors.Is(err, ErrNoAnchor) {
		t.Fatalf("Expected ErrNoAnchor, got %v", err)
	}
	if p.HoldingItem || p.Held.IsValid() {
		t.Error("failed pickup must not mark the player as holding")
	}
	if p.Target.UID != 5 {
		t.Error("failed pickup keeps the target")
	}
}

// Inspecting a held item locks movement and widens pitch until release.
func TestPlayerInspectWhileHolding(t *testing.T) {
	p, body := newTestPlayer()
	item := &fakeItem{}
	body.aim(9, item)
	p.OnTick(0.016)
	_ = p.OnAction()

	saved := Rotator{Pitch: -12, Yaw: 33}
	body.control = saved

	p.OnInspectPressed()
	if p.CanMove || !p.Inspecting {
		t.Fatal("inspect while holding should lock movement")
	}
	if body.pawnControl || body.controlYaw {
		t.Error("inspection should free the camera and lock body yaw")
	}
	if p.State() != HoldingInspect {
		t.Errorf("Expected HoldingInspect, got %s", p.State())
	}

	p.OnMove(rl.Vector2{X: 1, Y: 1})
	if body.moveForward != 0 || body.moveRight != 0 {
		t.Error("movement must be ignored while locked")
	}
	p.OnLook(rl.Vector2{X: 5, Y: -3})
	if body.yaw != 5 || body.pitch != -3 {
		t.Error("look must stay active while locked")
	}

	p.OnTick(0.016)
	if body.limits.Max != 179.9 || body.limits.Min != -179.9 {
		t.Errorf("pitch limits should widen while inspecting, got %+v", body.limits)
	}
	if item.rotates != 1 {
		t.Errorf("held item should rotate once per tick, got %d", item.rotates)
	}
	if body.offset != DefaultSettings().AnchorFar {
		t.Errorf("Expected far anchor offset, got %+v", body.offset)
	}

	body.control = Rotator{Pitch: 150, Yaw: -70}
	p.OnInspectReleased()

	if !p.CanMove || p.Inspecting {
		t.Error("release should unlock movement")
	}
	if body.control != saved {
		t.Errorf("Expected look rotation %+v restored, got %+v", saved, body.control)
	}
	if body.limits != DefaultSettings().PitchLimits {
		t.Errorf("Expected pitch limits restored, got %+v", body.limits)
	}
	if !body.pawnControl || !body.controlYaw {
		t.Error("rotation modes should be restored")
	}

	p.OnTick(0.016)
	if body.offset != DefaultSettings().AnchorNear {
		t.Errorf("Expected near anchor offset, got %+v", body.offset)
	}
}

func TestPlayerReinspectResavesLook(t *testing.T) {
	p, body := newTestPlayer()
	body.aim(2, &fakeItem{})
	p.OnTick(0.016)
	_ = p.OnAction()

	body.control = Rotator{Yaw: 10}
	p.OnInspectPressed()
	p.OnInspectReleased()

	body.control = Rotator{Yaw: 20}
	p.OnInspectPressed()
	body.control = Rotator{Yaw: 99}
	p.OnInspectReleased()

	if body.control.Yaw != 20 {
		t.Errorf("last saved look should win, got %+v", body.control)
	}
}

func TestPlayerToggleMovementLockIsInvolution(t *testing.T) {
	p, _ := newTestPlayer()
	before := [4]bool{p.CanMove, p.Inspecting, p.UsePawnControlRotation, p.UseControllerYaw}

	p.ToggleMovementLock()
	mid := [4]bool{p.CanMove, p.Inspecting, p.UsePawnControlRotation, p.UseControllerYaw}
	for i := range mid {
		if mid[i] == before[i] {
			t.Fatalf("flag %d did not flip", i)
		}
	}

	p.ToggleMovementLock()
	after := [4]bool{p.CanMove, p.Inspecting, p.UsePawnControlRotation, p.UseControllerYaw}
	if after != before {
		t.Errorf("Expected %v after two toggles, got %v", before, after)
	}
}

// Inspecting with empty hands only narrows the view; movement stays free.
func TestPlayerInspectEmptyHandedZooms(t *testing.T) {
	p, body := newTestPlayer()

	p.OnInspectPressed()
	if !p.Inspecting || !p.CanMove {
		t.Fatal("empty-handed inspect zooms without locking movement")
	}
	if p.State() != InspectingNoItem {
		t.Errorf("Expected InspectingNoItem, got %s", p.State())
	}

	prev := p.FOV
	for range 60 {
		p.OnTick(0.016)
		if p.FOV >= prev {
			t.Fatalf("FOV should decrease toward 45, went %f -> %f", prev, p.FOV)
		}
		prev = p.FOV
	}
	if math.Abs(float64(p.FOV-45)) > 0.45 {
		t.Errorf("FOV should be within 1%% of 45 after 60 ticks, got %f", p.FOV)
	}
	if body.fov != p.FOV {
		t.Error("FOV should be pushed to the camera every tick")
	}

	p.OnInspectReleased()
	if p.Inspecting {
		t.Fatal("release should end inspection")
	}
	p.OnTick(0.016)
	if p.FOV <= prev {
		t.Error("FOV should ease back toward 90")
	}
}

func TestFOVConvergence(t *testing.T) {
	for _, tc := range []struct {
		name       string
		start, end float32
	}{
		{"zoom in", 90, 45},
		{"zoom out", 45, 120},
		{"reset", 120, 90},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fov := tc.start
			gap := math.Abs(float64(tc.end - fov))
			for range 60 {
				fov = Lerp(fov, tc.end, 0.1)
				g := math.Abs(float64(tc.end - fov))
				if g >= gap {
					t.Fatalf("gap did not shrink: %f -> %f", gap, g)
				}
				gap = g
			}
			if gap > 0.01*float64(tc.end) {
				t.Errorf("Expected within 1%% of %f, got %f", tc.end, fov)
			}
		})
	}
}

func TestPlayerHeldObjectDestroyed(t *testing.T) {
	p, body := newTestPlayer()
	body.aim(6, &fakeItem{})
	p.OnTick(0.016)
	_ = p.OnAction()
	body.control = Rotator{Yaw: 45}
	p.OnInspectPressed()

	delete(body.items, 6)
	body.control = Rotator{Yaw: 120}
	p.OnTick(0.016)

	if p.HoldingItem || p.Held.IsValid() {
		t.Error("destroyed item should be forgotten")
	}
	if p.Inspecting || !p.CanMove {
		t.Error("inspection should end when the held item disappears")
	}
	if body.control.Yaw != 45 {
		t.Errorf("look should be restored, got %+v", body.control)
	}
}

func TestPlayerTargetExclusivity(t *testing.T) {
	p, body := newTestPlayer()
	body.aim(1, &fakeItem{})

	steps := []func(){
		func() { p.OnTick(0.016) },
		func() { _ = p.OnAction() },
		func() { p.OnTick(0.016) },
		func() { p.OnInspectPressed() },
		func() { p.OnTick(0.016) },
		func() { p.OnInspectReleased() },
		func() { _ = p.OnAction() },
		func() { p.OnTick(0.016) },
	}
	for i, step := range steps {
		step()
		if p.HoldingItem && p.Target.IsValid() {
			t.Fatalf("step %d: target set while holding", i)
		}
	}
}

func TestPlayerStateChangedEvent(t *testing.T) {
	p, body := newTestPlayer()
	var changes []StateChange
	p.StateChanged.AddListener(func(c StateChange) { changes = append(changes, c) })

	body.aim(1, &fakeItem{})
	p.OnTick(0.016)
	p.OnTick(0.016)
	_ = p.OnAction()

	if len(changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d: %+v", len(changes), changes)
	}
	if changes[0].From != Idle || changes[0].To != Targeting {
		t.Errorf("unexpected first change %+v", changes[0])
	}
	if changes[1].To != HoldingFree || changes[1].Held.UID != 1 {
		t.Errorf("unexpected second change %+v", changes[1])
	}
}

func TestPlayerMoveAndJump(t *testing.T) {
	p, body := newTestPlayer()

	p.OnMove(rl.Vector2{X: 0.5, Y: 1})
	if body.moveForward != 1 || body.moveRight != 0.5 {
		t.Errorf("Expected forward 1 right 0.5, got %f %f", body.moveForward, body.moveRight)
	}

	p.OnJumpPressed()
	if !body.jumping {
		t.Error("jump should reach the body")
	}
	p.OnJumpReleased()
	if body.jumping {
		t.Error("jump release should reach the body")
	}
}

func TestPlayerRifleFlag(t *testing.T) {
	p, _ := newTestPlayer()
	if p.HasRifle() {
		t.Error("player starts without a rifle")
	}
	p.SetHasRifle(true)
	if !p.HasRifle() {
		t.Error("SetHasRifle(true) should stick")
	}
}

func TestApplySettings(t *testing.T) {
	p, body := newTestPlayer()
	s := DefaultSettings()
	s.TraceLength = 500
	s.PitchLimits = PitchLimits{Min: -60, Max: 60}

	p.ApplySettings(s)
	if body.limits != s.PitchLimits || p.PitchLimits != s.PitchLimits {
		t.Errorf("new limits should apply right away, got %+v", body.limits)
	}
	p.OnTick(0.016)
	if want := rl.Vector3Scale(body.forward, 500); body.lastTraceEnd != want {
		t.Errorf("Expected trace end %v, got %v", want, body.lastTraceEnd)
	}

	body.aim(9, &fakeItem{})
	p.OnTick(0.016)
	_ = p.OnAction()
	p.OnInspectPressed()
	p.OnTick(0.016)

	s.PitchLimits = PitchLimits{Min: -45, Max: 45}
	p.ApplySettings(s)
	if body.limits.Max != 179.9 {
		t.Errorf("inspection limits should survive a reload, got %+v", body.limits)
	}
	p.OnInspectReleased()
	if body.limits != s.PitchLimits {
		t.Errorf("release should restore the reloaded limits, got %+v", body.limits)
	}
}
