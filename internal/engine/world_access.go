package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	// Raycast returns the closest query-enabled collider along the ray.
	// Objects in ignore are skipped (usually the caster itself).
	Raycast(origin, direction rl.Vector3, maxDistance float32, ignore ...*GameObject) (RaycastResult, bool)
}
