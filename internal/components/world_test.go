package components

import (
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// testWorld is a minimal engine.WorldAccess over a scene. Raycast returns
// the configured hit unless its object is ignored.
type testWorld struct {
	scene  *engine.Scene
	hit    *engine.RaycastResult
	rays   int
	ignore []*engine.GameObject
}

func newTestWorld() *testWorld {
	w := &testWorld{scene: engine.NewScene("test")}
	w.scene.World = w
	return w
}

func (w *testWorld) GetCollidableObjects() []*engine.GameObject {
	return w.scene.GameObjects
}

func (w *testWorld) SpawnObject(g *engine.GameObject) {
	w.scene.AddHierarchy(g)
	g.Start()
}

func (w *testWorld) Destroy(g *engine.GameObject) {
	w.scene.RemoveGameObject(g)
}

func (w *testWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (engine.RaycastResult, bool) {
	w.rays++
	w.ignore = ignore
	if w.hit == nil {
		return engine.RaycastResult{}, false
	}
	for _, g := range ignore {
		if g == w.hit.GameObject {
			return engine.RaycastResult{}, false
		}
	}
	return *w.hit, true
}

func (w *testWorld) add(g *engine.GameObject) *engine.GameObject {
	w.scene.AddHierarchy(g)
	return g
}

func newFloor(size float32) *engine.GameObject {
	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -5}
	floor.AddComponent(NewBoxCollider(rl.Vector3{X: size, Y: 10, Z: size}))
	return floor
}

func newCrate(name string, pos rl.Vector3, mass float32) (*engine.GameObject, *Rigidbody, *PickupAndRotate) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(NewBoxCollider(rl.Vector3{X: 20, Y: 20, Z: 20}))
	rb := NewRigidbody()
	rb.Mass = mass
	g.AddComponent(rb)
	p := NewPickupAndRotate()
	g.AddComponent(p)
	return g, rb, p
}
