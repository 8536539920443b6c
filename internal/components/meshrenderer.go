package components

import (
	"detective/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

// ParseMeshType maps scene-file names to mesh types.
func ParseMeshType(name string) (MeshType, bool) {
	switch name {
	case "cube":
		return MeshCube, true
	case "sphere":
		return MeshSphere, true
	case "plane":
		return MeshPlane, true
	}
	return MeshCube, false
}

// MeshRenderer draws a generated primitive with the object's world
// transform. The GPU model is built on first Draw so scenes can be loaded
// without a window.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3

	model  rl.Model
	loaded bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

func (m *MeshRenderer) load() {
	var mesh rl.Mesh
	switch m.MeshType {
	case MeshSphere:
		mesh = rl.GenMeshSphere(m.Size.X, 16, 16)
	case MeshPlane:
		mesh = rl.GenMeshPlane(m.Size.X, m.Size.Z, 1, 1)
	default:
		mesh = rl.GenMeshCube(m.Size.X, m.Size.Y, m.Size.Z)
	}
	m.model = rl.LoadModelFromMesh(mesh)
	m.loaded = true
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}
	if !m.loaded {
		m.load()
	}

	m.model.Transform = g.WorldMatrix()
	rl.DrawModel(m.model, rl.Vector3Zero(), 1.0, m.Color)
}

func (m *MeshRenderer) Unload() {
	if m.loaded {
		rl.UnloadModel(m.model)
		m.loaded = false
	}
}
