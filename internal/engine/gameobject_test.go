package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj2.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"enemy", "ai", "dangerous"}

	if !obj.HasTag("enemy") {
		t.Error("HasTag should return true for existing tag")
	}

	if !obj.HasTag("ai") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	// Test empty tags
	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	if parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child after removal, got %d", len(parent.Children))
	}

	if parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}

	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	// First call should set started = true
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	// Second call should be a no-op (no panic, no re-initialization)
	obj.Start() // Should not panic or cause issues
}

func TestGameObjectFindComponentByInterface(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &MockScript{}
	obj.AddComponent(comp)

	found := FindComponent[Component](obj)
	if found != comp {
		t.Error("FindComponent should match on interfaces")
	}
	if FindComponent[LookProvider](obj) != nil {
		t.Error("FindComponent should return zero when nothing implements the interface")
	}
}

func TestGameObjectFindChildByName(t *testing.T) {
	player := NewGameObject("Player")
	camera := NewGameObject("FirstPersonCamera")
	anchor := NewGameObject("HoldingComponent")

	player.AddChild(camera)
	camera.AddChild(anchor)

	if player.FindChildByName("HoldingComponent") != anchor {
		t.Error("FindChildByName should search the whole subtree")
	}
	if player.FindChildByName("Missing") != nil {
		t.Error("FindChildByName should return nil when nothing matches")
	}
}

func TestGameObjectAddChildReparents(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")

	a.AddChild(child)
	b.AddChild(child)

	if len(a.Children) != 0 {
		t.Error("child should leave its previous parent")
	}
	if child.Parent != b {
		t.Error("child should belong to the new parent")
	}
}

func vecNear(a, b rl.Vector3) bool {
	const eps = 1e-3
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

func TestGameObjectAttachKeepsWorldTransform(t *testing.T) {
	parent := NewGameObject("Anchor")
	parent.Transform.Position = rl.Vector3{X: 10, Y: 0, Z: 0}
	parent.Transform.Rotation = rl.Vector3{Y: 90}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	obj := NewGameObject("Box")
	obj.Transform.Position = rl.Vector3{X: 10, Y: 3, Z: 5}
	obj.Transform.Rotation = rl.Vector3{Y: 30}

	obj.AttachTo(parent)

	if obj.Parent != parent {
		t.Fatal("AttachTo should set the parent")
	}
	if got := obj.WorldPosition(); !vecNear(got, rl.Vector3{X: 10, Y: 3, Z: 5}) {
		t.Errorf("world position changed on attach: %v", got)
	}
	if got := obj.WorldRotation(); !vecNear(got, rl.Vector3{Y: 30}) {
		t.Errorf("world rotation changed on attach: %v", got)
	}
	if got := obj.WorldScale(); !vecNear(got, rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("world scale changed on attach: %v", got)
	}

	// Moving the parent carries the child along.
	parent.Transform.Position.Y += 4
	if got := obj.WorldPosition(); !vecNear(got, rl.Vector3{X: 10, Y: 7, Z: 5}) {
		t.Errorf("child should follow its parent, got %v", got)
	}

	obj.Detach()
	if obj.Parent != nil || len(parent.Children) != 0 {
		t.Fatal("Detach should unlink both sides")
	}
	if !vecNear(obj.Transform.Position, rl.Vector3{X: 10, Y: 7, Z: 5}) {
		t.Errorf("world position changed on detach: %v", obj.Transform.Position)
	}
}

func TestGameObjectSetWorldPositionUnderParent(t *testing.T) {
	parent := NewGameObject("Player")
	parent.Transform.Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	parent.Transform.Rotation = rl.Vector3{Y: -45}

	child := NewGameObject("Held")
	parent.AddChild(child)

	target := rl.Vector3{X: -4, Y: 6, Z: 8}
	child.SetWorldPosition(target)

	if got := child.WorldPosition(); !vecNear(got, target) {
		t.Errorf("Expected %v, got %v", target, got)
	}

	child.SetWorldRotation(rl.Vector3{X: 10, Y: 20, Z: 30})
	if got := child.WorldRotation(); !vecNear(got, rl.Vector3{X: 10, Y: 20, Z: 30}) {
		t.Errorf("unexpected world rotation %v", got)
	}
}
