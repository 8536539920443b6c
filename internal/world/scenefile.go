package world

import (
	"encoding/json"
	"fmt"
	"os"

	"detective/internal/components"
	"detective/internal/engine"
	"detective/internal/interaction"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components"`
	Children   []ObjectDef       `json:"children,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type  string     `json:"type"`
	Mesh  string     `json:"mesh"`
	Size  [3]float32 `json:"size"`
	Color string     `json:"color"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `json:"type"`
	Radius float32    `json:"radius"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type rigidbodyDef struct {
	Type            string  `json:"type"`
	Mass            float32 `json:"mass,omitempty"`
	Bounciness      float32 `json:"bounciness,omitempty"`
	Friction        float32 `json:"friction,omitempty"`
	UseGravity      *bool   `json:"useGravity,omitempty"`
	IsKinematic     bool    `json:"isKinematic,omitempty"`
	SimulatePhysics *bool   `json:"simulatePhysics,omitempty"`
	Collision       string  `json:"collision,omitempty"`
}

type scriptDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"DarkBrown": rl.DarkBrown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	if name != "" {
		log.Warn("unknown color, using white", "color", name)
	}
	return rl.White
}

func parseCollision(name string) (interaction.CollisionMode, error) {
	switch name {
	case "", "QueryAndPhysics":
		return interaction.QueryAndPhysics, nil
	case "QueryOnly":
		return interaction.QueryOnly, nil
	case "NoCollision":
		return interaction.NoCollision, nil
	}
	return 0, fmt.Errorf("unknown collision mode %q", name)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	if err := w.LoadSceneData(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Info("scene loaded", "path", path, "objects", len(w.Scene.GameObjects), "dynamic", w.Physics.DynamicObjectCount())
	return nil
}

// LoadSceneData adds the objects described by a JSON scene to the world.
// Objects are not started.
func (w *World) LoadSceneData(data []byte) error {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	for _, objDef := range sf.Objects {
		g, err := buildObject(objDef)
		if err != nil {
			return err
		}
		w.Add(g)
	}
	return nil
}

func buildObject(objDef ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(objDef.Name)
	g.Tags = objDef.Tags
	g.Transform.Position = vec3(objDef.Position)
	g.Transform.Rotation = vec3(objDef.Rotation)

	// Default scale to 1 if zero
	if objDef.Scale != [3]float32{} {
		g.Transform.Scale = vec3(objDef.Scale)
	}

	for i, raw := range objDef.Components {
		if err := loadComponent(g, raw); err != nil {
			return nil, fmt.Errorf("object %q component %d: %w", objDef.Name, i, err)
		}
	}

	for _, childDef := range objDef.Children {
		child, err := buildObject(childDef)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

func loadComponent(g *engine.GameObject, raw json.RawMessage) error {
	var header componentHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return fmt.Errorf("parse component: %w", err)
	}

	switch header.Type {
	case "MeshRenderer":
		return loadMeshRenderer(g, raw)
	case "BoxCollider":
		return loadBoxCollider(g, raw)
	case "SphereCollider":
		return loadSphereCollider(g, raw)
	case "Rigidbody":
		return loadRigidbody(g, raw)
	case "Script":
		return loadScript(g, raw)
	}
	return fmt.Errorf("unknown component type %q", header.Type)
}

func loadMeshRenderer(g *engine.GameObject, raw json.RawMessage) error {
	var def meshRendererDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parse MeshRenderer: %w", err)
	}
	meshType, ok := components.ParseMeshType(def.Mesh)
	if !ok {
		return fmt.Errorf("unknown mesh %q", def.Mesh)
	}
	g.AddComponent(components.NewMeshRenderer(meshType, lookupColor(def.Color), vec3(def.Size)))
	return nil
}

func loadBoxCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def boxColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parse BoxCollider: %w", err)
	}
	col := components.NewBoxCollider(vec3(def.Size))
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadSphereCollider(g *engine.GameObject, raw json.RawMessage) error {
	var def sphereColliderDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parse SphereCollider: %w", err)
	}
	if def.Radius <= 0 {
		return fmt.Errorf("sphere radius must be positive, got %v", def.Radius)
	}
	col := components.NewSphereCollider(def.Radius)
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadRigidbody(g *engine.GameObject, raw json.RawMessage) error {
	var def rigidbodyDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parse Rigidbody: %w", err)
	}
	rb := components.NewRigidbody()
	if def.Mass > 0 {
		rb.Mass = def.Mass
	}
	if def.Bounciness > 0 {
		rb.Bounciness = def.Bounciness
	}
	if def.Friction > 0 {
		rb.Friction = def.Friction
	}
	if def.UseGravity != nil {
		rb.UseGravity = *def.UseGravity
	}
	if def.SimulatePhysics != nil {
		rb.SimulatePhysics = *def.SimulatePhysics
	}
	mode, err := parseCollision(def.Collision)
	if err != nil {
		return err
	}
	rb.Collision = mode
	rb.IsKinematic = def.IsKinematic
	g.AddComponent(rb)
	return nil
}

func loadScript(g *engine.GameObject, raw json.RawMessage) error {
	var def scriptDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parse Script: %w", err)
	}
	comp, err := engine.CreateScript(def.Name, def.Props)
	if err != nil {
		return err
	}
	g.AddComponent(comp)
	return nil
}
