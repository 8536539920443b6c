package game

import (
	"fmt"
	"sort"
	"strings"

	"detective/internal/engine"
	"detective/internal/interaction"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorPanel  = rl.NewColor(18, 18, 24, 220)
	colorAccent = rl.NewColor(108, 99, 255, 255)
	colorText   = rl.NewColor(200, 200, 208, 255)
)

func setupHUDStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(28, 28, 38, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// crosshairColor highlights the crosshair when something can be picked up.
func crosshairColor(state interaction.State) rl.Color {
	switch state {
	case interaction.Targeting:
		return rl.Gold
	case interaction.HoldingFree, interaction.HoldingInspect:
		return colorAccent
	}
	return rl.RayWhite
}

func (g *Game) focused() *engine.GameObject {
	p := g.Character.Player
	if obj := p.Target.Get(g.World.Scene); obj != nil {
		return obj
	}
	return p.Held.Get(g.World.Scene)
}

func (g *Game) targetName() string {
	if obj := g.focused(); obj != nil {
		return obj.Name
	}
	return "-"
}

// scriptLines describes the scripts on obj with their current props.
func scriptLines(obj *engine.GameObject) []string {
	if obj == nil {
		return nil
	}
	var lines []string
	for _, c := range obj.Components() {
		name, props, ok := engine.SerializeScript(c)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, props[k])
		}
		lines = append(lines, fmt.Sprintf("%s %s", name, strings.Join(parts, " ")))
	}
	return lines
}

func (g *Game) DrawUI() {
	p := g.Character.Player
	state := p.State()

	cx := int32(rl.GetScreenWidth() / 2)
	cy := int32(rl.GetScreenHeight() / 2)
	color := crosshairColor(state)
	rl.DrawLine(cx-8, cy, cx+8, cy, color)
	rl.DrawLine(cx, cy-8, cx, cy+8, color)

	rl.DrawRectangle(10, 10, 300, 96, colorPanel)
	rl.DrawText(fmt.Sprintf("State: %s", state), 20, 18, 18, colorText)
	rl.DrawText(fmt.Sprintf("Object: %s", g.targetName()), 20, 40, 18, colorText)
	rl.DrawText(fmt.Sprintf("FOV: %.1f", p.FOV), 20, 62, 18, colorText)
	rl.DrawText("WASD move  E pick up  RMB inspect  F1 debug", 20, 84, 10, rl.Gray)

	if !g.DebugMode {
		return
	}
	g.drawDebugPanel()
}

func (g *Game) drawDebugPanel() {
	p := g.Character.Player
	x := float32(rl.GetScreenWidth() - 270)
	scripts := scriptLines(g.focused())
	rl.DrawRectangle(int32(x)-10, 10, 270, 236+int32(len(scripts))*16, colorPanel)

	rifle := gui.CheckBox(rl.Rectangle{X: x, Y: 20, Width: 16, Height: 16}, "Carrying rifle", p.HasRifle())
	if rifle != p.HasRifle() {
		p.SetHasRifle(rifle)
	}
	g.Input.InvertY = gui.CheckBox(rl.Rectangle{X: x, Y: 44, Width: 16, Height: 16}, "Invert mouse Y", g.Input.InvertY)
	g.Input.LookSensitivity = gui.Slider(
		rl.Rectangle{X: x + 70, Y: 68, Width: 150, Height: 16},
		"Look", fmt.Sprintf("%.2f", g.Input.LookSensitivity),
		g.Input.LookSensitivity, 0.01, 1,
	)

	dynamic := g.World.Physics.DynamicObjectCount()
	lines := []string{
		fmt.Sprintf("Update:   %.2f ms", g.updateMs),
		fmt.Sprintf("Draw:     %.2f ms", g.drawMs),
		fmt.Sprintf("Objects:  %d", len(g.World.Scene.GameObjects)),
		fmt.Sprintf("Dynamic:  %d", dynamic),
		fmt.Sprintf("Contacts: %d", g.World.Physics.Contacts()),
		fmt.Sprintf("Culled:   %d", g.World.Culled()),
	}
	for i, line := range lines {
		rl.DrawText(line, int32(x), 96+int32(i)*20, 16, rl.Green)
	}
	rl.DrawFPS(int32(x), 216)

	for i, line := range scripts {
		rl.DrawText(line, int32(x), 246+int32(i)*16, 12, colorText)
	}
}
