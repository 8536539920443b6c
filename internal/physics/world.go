package physics

import (
	"math"

	"detective/internal/components"
	"detective/internal/engine"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size in centimetres - objects within same or
// neighboring cells are checked against each other.
const CellSize = 200.0

// DefaultGravity is 9.8 m/s^2 in centimetres.
const DefaultGravity = 980.0

type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X / CellSize))),
		Y: int(math.Floor(float64(pos.Y / CellSize))),
		Z: int(math.Floor(float64(pos.Z / CellSize))),
	}
}

// pairKey orders two objects by UID so each pair is visited once.
type pairKey struct {
	A, B uint64
}

func makePair(a, b *engine.GameObject) pairKey {
	if a.UID > b.UID {
		return pairKey{A: b.UID, B: a.UID}
	}
	return pairKey{A: a.UID, B: b.UID}
}

type PhysicsWorld struct {
	Gravity    rl.Vector3
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies (moving platforms)
	Statics    []*engine.GameObject // no rigidbody (walls, floor)
	grid       map[CellKey][]*engine.GameObject

	contacts int
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:    rl.Vector3{Y: -DefaultGravity},
		Objects:    make([]*engine.GameObject, 0),
		Kinematics: make([]*engine.GameObject, 0),
		Statics:    make([]*engine.GameObject, 0),
		grid:       make(map[CellKey][]*engine.GameObject),
	}
}

// AddObject files g by its rigidbody. Objects without any collider or
// rigidbody are ignored.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](g)
	switch {
	case rb == nil:
		if !hasCollider(g) {
			return
		}
		p.Statics = append(p.Statics, g)
	case rb.IsKinematic:
		p.Kinematics = append(p.Kinematics, g)
	default:
		p.Objects = append(p.Objects, g)
	}
}

func hasCollider(g *engine.GameObject) bool {
	return engine.GetComponent[*components.BoxCollider](g) != nil ||
		engine.GetComponent[*components.SphereCollider](g) != nil
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	p.Objects = removeFrom(p.Objects, g)
	p.Kinematics = removeFrom(p.Kinematics, g)
	p.Statics = removeFrom(p.Statics, g)
}

func removeFrom(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (p *PhysicsWorld) Clear() {
	p.Objects = p.Objects[:0]
	p.Kinematics = p.Kinematics[:0]
	p.Statics = p.Statics[:0]
}

// All returns every tracked object: dynamics, then kinematics, then statics.
func (p *PhysicsWorld) All() []*engine.GameObject {
	all := make([]*engine.GameObject, 0, len(p.Objects)+len(p.Kinematics)+len(p.Statics))
	all = append(all, p.Objects...)
	all = append(all, p.Kinematics...)
	return append(all, p.Statics...)
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// Contacts returns the number of collisions resolved by the last Update.
func (p *PhysicsWorld) Contacts() int {
	return p.contacts
}

func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb == nil || !rb.Simulated() {
			continue
		}
		cell := posToCell(obj.WorldPosition())
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.WorldPosition())
	var result []*engine.GameObject
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{X: cell.X + dx, Y: cell.Y + dy, Z: cell.Z + dz}
				result = append(result, p.grid[key]...)
			}
		}
	}
	return result
}

// Update advances the simulation by deltaTime seconds. Bodies that do not
// simulate physics (carried objects) are neither moved nor collided.
func (p *PhysicsWorld) Update(deltaTime float32) {
	p.contacts = 0

	// 1. Apply forces and gravity, integrate
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !rb.Simulated() {
			continue
		}
		force := rb.ConsumeForce()
		if rb.IsSleeping {
			continue
		}

		var accel rl.Vector3
		if rb.Mass > 0 {
			accel = rl.Vector3Scale(force, 1/rb.Mass)
		}
		if rb.UseGravity {
			accel = rl.Vector3Add(accel, p.Gravity)
		}
		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(accel, deltaTime))
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(rb.Velocity, deltaTime))
	}

	// 2. Dynamic vs dynamic, spatial hashing
	p.rebuildGrid()
	checked := make(map[pairKey]bool)
	for _, cellObjs := range p.grid {
		for _, obj := range cellObjs {
			for _, other := range p.getNeighborObjects(obj) {
				if obj == other {
					continue
				}
				key := makePair(obj, other)
				if checked[key] {
					continue
				}
				checked[key] = true
				p.resolveCollision(obj, other)
			}
		}
	}

	// 3. Dynamic vs static and kinematic
	for _, obj := range p.Objects {
		for _, static := range p.Statics {
			p.resolveStaticCollision(obj, static, deltaTime)
		}
		for _, kinematic := range p.Kinematics {
			p.resolveStaticCollision(obj, kinematic, deltaTime)
		}
	}

	// 4. Sleep
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.Simulated() {
			rb.TrySleep(deltaTime)
		}
	}

	if p.contacts > 0 {
		log.Debug("physics step", "contacts", p.contacts, "dynamic", len(p.Objects))
	}
}

// shapeOf returns the collider bounds of g. Spheres are preferred over
// boxes when both exist.
func shapeOf(g *engine.GameObject) (sphere *components.SphereCollider, box AABB, ok bool) {
	if s := engine.GetComponent[*components.SphereCollider](g); s != nil {
		return s, AABB{}, true
	}
	if b := engine.GetComponent[*components.BoxCollider](g); b != nil {
		min, max := b.Bounds()
		return nil, AABB{Min: min, Max: max}, true
	}
	return nil, AABB{}, false
}

func sphereBounds(s *components.SphereCollider) AABB {
	r := s.GetWorldRadius()
	return NewAABBFromCenter(s.GetCenter(), rl.Vector3{X: 2 * r, Y: 2 * r, Z: 2 * r})
}

// contact finds the separation of a from b: a unit normal pointing toward a
// and the penetration depth along it.
func contact(a, b *engine.GameObject) (normal rl.Vector3, depth float32, ok bool) {
	sA, boxA, okA := shapeOf(a)
	sB, boxB, okB := shapeOf(b)
	if !okA || !okB {
		return rl.Vector3{}, 0, false
	}

	switch {
	case sA != nil && sB != nil:
		diff := rl.Vector3Subtract(sA.GetCenter(), sB.GetCenter())
		dist := rl.Vector3Length(diff)
		rsum := sA.GetWorldRadius() + sB.GetWorldRadius()
		if dist >= rsum || dist < 0.0001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(diff, 1/dist), rsum - dist, true

	case sA != nil:
		return sphereVsBox(sA, boxB)

	case sB != nil:
		n, d, ok := sphereVsBox(sB, boxA)
		return rl.Vector3Negate(n), d, ok
	}

	push := boxA.Resolve(boxB)
	depth = rl.Vector3Length(push)
	if depth < 0.0001 {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Scale(push, 1/depth), depth, true
}

// sphereVsBox returns a normal pointing from the box toward the sphere.
func sphereVsBox(s *components.SphereCollider, box AABB) (rl.Vector3, float32, bool) {
	center := s.GetCenter()
	radius := s.GetWorldRadius()
	closest := box.ClosestPoint(center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)

	if dist < 0.0001 {
		// Center inside the box: fall back to box push-out.
		push := sphereBounds(s).Resolve(box)
		depth := rl.Vector3Length(push)
		if depth < 0.0001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(push, 1/depth), depth, true
	}
	if dist >= radius {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Scale(diff, 1/dist), radius - dist, true
}

func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil || !rbA.Simulated() || !rbB.Simulated() {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	normal, depth, ok := contact(a, b)
	if !ok {
		return
	}
	p.contacts++

	// Split the push based on mass ratio
	totalMass := rbA.Mass + rbB.Mass
	ratioA := rbB.Mass / totalMass
	ratioB := rbA.Mass / totalMass
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(normal, depth*ratioA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(normal, depth*ratioB))

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Only resolve if objects are moving toward each other
	if velAlongNormal > 0 {
		return
	}

	// Wake sleepers only on a real hit, not on resting contact.
	if rl.Vector3Length(relVel) > components.SleepVelocityThreshold*2 {
		rbA.Wake()
		rbB.Wake()
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/rbA.Mass + 1/rbB.Mass)

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))
}

func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject, deltaTime float32) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || !rb.Simulated() || rb.IsSleeping {
		return
	}
	if srb := engine.GetComponent[*components.Rigidbody](static); srb != nil && !srb.Collides() {
		return
	}
	if obj == static || !static.Active {
		return
	}

	normal, depth, ok := contact(obj, static)
	if !ok {
		return
	}
	p.contacts++

	// Push fully out (static doesn't move)
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(normal, depth))

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
	if velAlongNormal >= 0 {
		return
	}

	// Reflect with bounciness. Bounces slower than one frame of gravity
	// are absorbed so resting bodies settle.
	rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(normal, velAlongNormal*(1+rb.Bounciness)))
	restSpeed := rl.Vector3Length(p.Gravity) * deltaTime * 2
	if vn := rl.Vector3DotProduct(rb.Velocity, normal); vn < restSpeed {
		rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(normal, vn))
	}

	// Friction on the tangential part
	vn := rl.Vector3DotProduct(rb.Velocity, normal)
	tangent := rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(normal, vn))
	rb.Velocity = rl.Vector3Add(rl.Vector3Scale(normal, vn), rl.Vector3Scale(tangent, 1-rb.Friction))
}
