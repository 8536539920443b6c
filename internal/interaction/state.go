package interaction

import "detective/internal/engine"

// State is the derived interaction state of the player.
type State int

const (
	Idle State = iota
	Targeting
	HoldingFree
	HoldingInspect
	InspectingNoItem
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Targeting:
		return "targeting"
	case HoldingFree:
		return "holding"
	case HoldingInspect:
		return "holding-inspect"
	case InspectingNoItem:
		return "inspecting"
	}
	return "unknown"
}

// StateChange is published by Player.StateChanged.
type StateChange struct {
	From   State
	To     State
	Target engine.GameObjectRef
	Held   engine.GameObjectRef
}
