// Package input turns device state into player input events.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source reads raw device state once per frame.
type Source interface {
	KeyDown(key int32) bool
	MouseButtonDown(button int32) bool
	MouseDelta() rl.Vector2
}

// Handler receives the player input events.
type Handler interface {
	OnMove(axis rl.Vector2)
	OnLook(axis rl.Vector2)
	OnAction()
	OnInspectPressed()
	OnInspectReleased()
	OnJumpPressed()
	OnJumpReleased()
}

// DefaultLookSensitivity is degrees of rotation per pixel of mouse motion.
const DefaultLookSensitivity = 0.1

// Mapper polls a Source with fixed bindings. Move and Look are sent every
// frame; buttons are sent on their press and release edges.
type Mapper struct {
	LookSensitivity float32
	InvertY         bool

	buttons [actionCount]Button
	down    [actionCount]bool
	pressed [actionCount]bool
}

func NewMapper(b Bindings) (*Mapper, error) {
	buttons, err := b.Resolve()
	if err != nil {
		return nil, err
	}
	return &Mapper{LookSensitivity: DefaultLookSensitivity, buttons: buttons}, nil
}

// Rebind swaps the bindings. On error the old bindings stay.
func (m *Mapper) Rebind(b Bindings) error {
	buttons, err := b.Resolve()
	if err != nil {
		return err
	}
	m.buttons = buttons
	return nil
}

func (m *Mapper) isDown(src Source, a Action) bool {
	btn := m.buttons[a]
	if btn.Mouse {
		return src.MouseButtonDown(btn.Key)
	}
	return src.KeyDown(btn.Key)
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Dispatch polls src and forwards this frame's events to h.
func (m *Mapper) Dispatch(src Source, h Handler) {
	var now [actionCount]bool
	for a := range actionCount {
		now[a] = m.isDown(src, a)
		m.pressed[a] = now[a] && !m.down[a]
	}
	released := func(a Action) bool { return !now[a] && m.down[a] }

	h.OnMove(rl.Vector2{
		X: axis(now[MoveRight], now[MoveLeft]),
		Y: axis(now[MoveForward], now[MoveBack]),
	})

	// Screen Y grows downward; moving the mouse up pitches up.
	delta := src.MouseDelta()
	look := rl.Vector2{X: delta.X * m.LookSensitivity, Y: -delta.Y * m.LookSensitivity}
	if m.InvertY {
		look.Y = -look.Y
	}
	h.OnLook(look)

	if m.pressed[Use] {
		h.OnAction()
	}
	if m.pressed[Inspect] {
		h.OnInspectPressed()
	}
	if released(Inspect) {
		h.OnInspectReleased()
	}
	if m.pressed[Jump] {
		h.OnJumpPressed()
	}
	if released(Jump) {
		h.OnJumpReleased()
	}

	m.down = now
}

// JustPressed reports whether a went down during the last Dispatch.
func (m *Mapper) JustPressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return m.pressed[a]
}
