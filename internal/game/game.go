package game

import (
	"fmt"
	"time"

	"detective/internal/components"
	"detective/internal/config"
	"detective/internal/engine"
	"detective/internal/input"
	"detective/internal/interaction"
	"detective/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// defaultSpawn is used when the scene has no PlayerStart.
var defaultSpawn = rl.Vector3{Y: 200}

type Game struct {
	Env       config.Env
	Tunables  config.Tunables
	World     *world.World
	Player    *engine.GameObject
	Character *components.DetectiveCharacter
	Input     *input.Mapper
	DebugMode bool

	source  input.Source
	watcher *config.Watcher

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(env config.Env, tunables config.Tunables, source input.Source) (*Game, error) {
	mapper, err := input.NewMapper(tunables.Bindings)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	return &Game{
		Env:      env,
		Tunables: tunables,
		World:    world.New(),
		Input:    mapper,
		source:   source,
	}, nil
}

// Load reads the scene, spawns the detective and starts everything. It
// needs no window.
func (g *Game) Load() error {
	if err := g.World.LoadScene(g.Env.ScenePath); err != nil {
		return err
	}
	g.spawnPlayer()
	// Pickups bind to the player's anchor in Start, so the player goes in
	// first.
	g.World.Start()
	g.applyTunables(g.Tunables)
	return nil
}

func (g *Game) spawnPlayer() {
	body, character := components.NewDetective("Player", g.Tunables.Settings())
	pos, yaw, ok := g.World.PlayerStart()
	if !ok {
		log.Warn("scene has no player start", "tag", world.PlayerStartTag, "spawn", defaultSpawn)
		pos = defaultSpawn
	}
	body.Transform.Position = pos
	body.Transform.Rotation = interaction.Rotator{Yaw: yaw}.Euler()

	g.Player = body
	g.Character = character
	g.World.Add(body)
	log.Info("player spawned", "position", pos, "yaw", yaw)
}

// applyTunables pushes tunables into every live consumer.
func (g *Game) applyTunables(t config.Tunables) {
	g.Tunables = t
	if err := g.Input.Rebind(t.Bindings); err != nil {
		log.Error("bindings rejected", "err", err)
	}
	g.Input.LookSensitivity = t.Look.Sensitivity
	g.Input.InvertY = t.Look.InvertY

	if g.Character != nil {
		g.Character.Player.ApplySettings(t.Settings())
		g.Character.MoveSpeed = t.Movement.Speed
		g.Character.JumpSpeed = t.Movement.JumpSpeed
	}
	for _, obj := range g.World.Scene.GameObjects {
		if p := engine.GetComponent[*components.PickupAndRotate](obj); p != nil {
			p.SetDefaultTossScale(t.TossScale)
		}
	}
}

// Reload re-reads the tunables file. A bad file is logged and the current
// tunables stay.
func (g *Game) Reload() {
	t, err := config.LoadTunables(g.Env.ConfigPath)
	if err != nil {
		log.Error("reload failed, keeping current tunables", "err", err)
		return
	}
	g.applyTunables(t)
	log.Info("tunables reloaded", "path", g.Env.ConfigPath)
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if config.SameFile(name, g.Env.ConfigPath) {
				g.Reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

// Step advances one frame: input, then components (the detective ticks
// here), then physics.
func (g *Game) Step(deltaTime float32) {
	updateStart := time.Now()
	g.pollReload()

	var handler input.Handler = g.Character
	if g.DebugMode {
		handler = releasesOnly{g.Character}
	}
	g.Input.Dispatch(g.source, handler)

	if g.Input.JustPressed(input.ToggleDebug) {
		g.setDebug(!g.DebugMode)
	}
	if g.Input.JustPressed(input.ToggleRifle) {
		g.Character.Player.SetHasRifle(!g.Character.Player.HasRifle())
	}

	g.World.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) setDebug(on bool) {
	g.DebugMode = on
	if !rl.IsWindowReady() {
		return
	}
	if on {
		rl.EnableCursor()
	} else {
		rl.DisableCursor()
	}
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(g.Env.Width, g.Env.Height, "Detective")
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.Env.TargetFPS)
	rl.DisableCursor()
	setupHUDStyle()

	if err := g.Load(); err != nil {
		return err
	}
	defer g.World.Unload()

	if g.Env.HotReload {
		w, err := config.WatchFile(g.Env.ConfigPath)
		if err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	for !rl.WindowShouldClose() {
		g.Step(rl.GetFrameTime())
		g.Draw()
	}
	return nil
}

func (g *Game) camera() *components.Camera {
	for _, child := range g.Player.Children {
		if cam := engine.GetComponent[*components.Camera](child); cam != nil && cam.IsMain {
			return cam
		}
	}
	return nil
}

func (g *Game) Draw() {
	cam := g.camera()
	if cam == nil {
		return
	}
	camera := cam.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.World.Draw(camera, cam.Near, cam.Far, aspect)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

// releasesOnly swallows player input while the debug panel owns the mouse.
// Release edges still pass through: a button let go while the panel is open
// must still end the inspection or jump it started.
type releasesOnly struct {
	input.Handler
}

func (releasesOnly) OnMove(rl.Vector2) {}
func (releasesOnly) OnLook(rl.Vector2) {}
func (releasesOnly) OnAction()         {}
func (releasesOnly) OnInspectPressed() {}
func (releasesOnly) OnJumpPressed()    {}
