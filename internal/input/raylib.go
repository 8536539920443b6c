package input

import rl "github.com/gen2brain/raylib-go/raylib"

// RaylibSource reads the window's keyboard and mouse. Requires an open
// window.
type RaylibSource struct{}

func (RaylibSource) KeyDown(key int32) bool {
	return rl.IsKeyDown(key)
}

func (RaylibSource) MouseButtonDown(button int32) bool {
	switch button {
	case MouseLeft:
		return rl.IsMouseButtonDown(rl.MouseLeftButton)
	case MouseRight:
		return rl.IsMouseButtonDown(rl.MouseRightButton)
	case MouseMiddle:
		return rl.IsMouseButtonDown(rl.MouseMiddleButton)
	}
	return false
}

func (RaylibSource) MouseDelta() rl.Vector2 {
	return rl.GetMouseDelta()
}
