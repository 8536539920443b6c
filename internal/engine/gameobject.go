package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of concrete type T.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent returns the first component implementing interface T.
func FindComponent[T any](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// FindChildByName searches the whole subtree, depth first.
func (g *GameObject) FindChildByName(name string) *GameObject {
	for _, c := range g.Children {
		if c.Name == name {
			return c
		}
		if found := c.FindChildByName(name); found != nil {
			return found
		}
	}
	return nil
}

// RotationMatrix turns Euler degrees into a matrix, applying X (roll), then
// Z (pitch), then Y (yaw).
func RotationMatrix(rot rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotZ), rotY)
}

// WorldMatrix is the scale, rotate, translate matrix of g in world space.
func (g *GameObject) WorldMatrix() rl.Matrix {
	s := g.WorldScale()
	p := g.WorldPosition()
	m := rl.MatrixMultiply(rl.MatrixScale(s.X, s.Y, s.Z), RotationMatrix(g.WorldRotation()))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(p.X, p.Y, p.Z))
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, RotationMatrix(g.Parent.WorldRotation()))
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// SetWorldPosition moves the object so that WorldPosition returns pos.
func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	rel := rl.Vector3Subtract(pos, g.Parent.WorldPosition())
	// Rotation matrices are orthonormal, the transpose undoes them.
	local := rl.Vector3Transform(rel, rl.MatrixTranspose(RotationMatrix(g.Parent.WorldRotation())))
	ps := g.Parent.WorldScale()
	g.Transform.Position = rl.Vector3{
		X: safeDiv(local.X, ps.X),
		Y: safeDiv(local.Y, ps.Y),
		Z: safeDiv(local.Z, ps.Z),
	}
}

func (g *GameObject) SetWorldRotation(rot rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Rotation = rot
		return
	}
	g.Transform.Rotation = rl.Vector3Subtract(rot, g.Parent.WorldRotation())
}

// AttachTo reparents g under parent, keeping its world transform.
func (g *GameObject) AttachTo(parent *GameObject) {
	if parent == nil || parent == g {
		return
	}
	pos, rot, scale := g.WorldPosition(), g.WorldRotation(), g.WorldScale()
	parent.AddChild(g)

	ps := parent.WorldScale()
	g.Transform.Scale = rl.Vector3{
		X: safeDiv(scale.X, ps.X),
		Y: safeDiv(scale.Y, ps.Y),
		Z: safeDiv(scale.Z, ps.Z),
	}
	g.SetWorldRotation(rot)
	g.SetWorldPosition(pos)
}

// Detach makes g a root object again, keeping its world transform.
func (g *GameObject) Detach() {
	if g.Parent == nil {
		return
	}
	pos, rot, scale := g.WorldPosition(), g.WorldRotation(), g.WorldScale()
	g.Parent.RemoveChild(g)
	g.Transform = Transform{Position: pos, Rotation: rot, Scale: scale}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return a
	}
	return a / b
}
