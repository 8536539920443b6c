package world

import (
	"detective/internal/components"
	"detective/internal/engine"
	"detective/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerStartTag marks the scene object whose transform places the player.
const PlayerStartTag = "PlayerStart"

// World ties the scene graph to the physics simulation and is the
// engine.WorldAccess handed to components.
type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld

	culled int
}

func New() *World {
	w := &World{
		Scene:   engine.NewScene("Main"),
		Physics: physics.NewPhysicsWorld(),
	}
	w.Scene.World = w
	return w
}

// Add registers g and its subtree without starting them. Used while
// loading, before Scene.Start.
func (w *World) Add(g *engine.GameObject) {
	w.Scene.AddHierarchy(g)
	w.addPhysics(g)
}

func (w *World) addPhysics(g *engine.GameObject) {
	w.Physics.AddObject(g)
	for _, child := range g.Children {
		w.addPhysics(child)
	}
}

// SpawnObject adds g at runtime and starts its whole subtree.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.Add(g)
	startAll(g)
}

func startAll(g *engine.GameObject) {
	g.Start()
	for _, child := range g.Children {
		startAll(child)
	}
}

// Destroy removes g and its subtree from the scene and the simulation.
func (w *World) Destroy(g *engine.GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	w.removePhysics(g)
	w.Scene.RemoveGameObject(g)
	log.Debug("destroyed", "object", g.Name, "uid", g.UID)
}

func (w *World) removePhysics(g *engine.GameObject) {
	w.Physics.RemoveObject(g)
	for _, child := range g.Children {
		w.removePhysics(child)
	}
	if r := engine.GetComponent[*components.MeshRenderer](g); r != nil {
		r.Unload()
	}
}

// GetCollidableObjects returns all GameObjects that have BoxColliders
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if collider := engine.GetComponent[*components.BoxCollider](g); collider != nil {
			result = append(result, g)
		}
	}
	return result
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*engine.GameObject) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, ignore...)
}

// PlayerStart returns the position and yaw of the first PlayerStart object.
func (w *World) PlayerStart() (rl.Vector3, float32, bool) {
	starts := w.Scene.FindByTag(PlayerStartTag)
	if len(starts) == 0 {
		return rl.Vector3{}, 0, false
	}
	start := starts[0]
	return start.WorldPosition(), -start.WorldRotation().Y, true
}

func (w *World) Start() {
	w.Scene.Start()
}

// Update runs components first, then steps physics so forces applied this
// frame take effect immediately.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
	w.Physics.Update(deltaTime)
}

// Draw renders every visible MeshRenderer. Must be called between
// BeginMode3D and EndMode3D.
func (w *World) Draw(camera rl.Camera3D, near, far, aspect float32) {
	for _, r := range w.visible(ExtractFrustum(camera, near, far, aspect)) {
		r.Draw()
	}
}

// visible returns the renderers inside f and counts the rest as culled. A
// carried item is always kept: during inspection it sits closer than the
// near plane.
func (w *World) visible(f Frustum) []*components.MeshRenderer {
	w.culled = 0
	var out []*components.MeshRenderer
	for _, g := range w.Scene.GameObjects {
		r := engine.GetComponent[*components.MeshRenderer](g)
		if r == nil || !g.Active {
			continue
		}
		if !carried(g) && !f.ContainsSphere(g.WorldPosition(), boundingRadius(r, g)) {
			w.culled++
			continue
		}
		out = append(out, r)
	}
	return out
}

func carried(g *engine.GameObject) bool {
	p := engine.GetComponent[*components.PickupAndRotate](g)
	return p != nil && p.Holding()
}

// Culled returns how many renderers the last Draw skipped.
func (w *World) Culled() int {
	return w.culled
}

func boundingRadius(r *components.MeshRenderer, g *engine.GameObject) float32 {
	s := g.WorldScale()
	size := rl.Vector3{X: r.Size.X * s.X, Y: r.Size.Y * s.Y, Z: r.Size.Z * s.Z}
	if r.MeshType == components.MeshSphere {
		return r.Size.X * max(abs(s.X), abs(s.Y), abs(s.Z))
	}
	return rl.Vector3Length(size) / 2
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func (w *World) Unload() {
	for _, g := range w.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.MeshRenderer](g); renderer != nil {
			renderer.Unload()
		}
	}
}
