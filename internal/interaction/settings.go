package interaction

// Settings holds the gameplay tunables of the player state machine. The
// defaults are the shipped detective feel.
type Settings struct {
	TraceLength float32

	FOVDefault        float32
	FOVInspectHolding float32
	FOVInspectEmpty   float32
	FOVEase           float32

	AnchorNear Offset
	AnchorFar  Offset

	PitchLimits       PitchLimits
	InspectPitchLimit float32
}

func DefaultSettings() Settings {
	return Settings{
		TraceLength:       200,
		FOVDefault:        90,
		FOVInspectHolding: 120,
		FOVInspectEmpty:   45,
		FOVEase:           0.1,
		AnchorNear:        Offset{Forward: 50},
		AnchorFar:         Offset{Forward: 120, Up: 50},
		PitchLimits:       PitchLimits{Min: -89.9, Max: 89.9},
		InspectPitchLimit: 179.9,
	}
}

// DefaultTossScale multiplies mass to get the release force.
const DefaultTossScale = 10000
