// Package config loads gameplay tunables from YAML and process settings
// from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"detective/internal/input"
	"detective/internal/interaction"

	"gopkg.in/yaml.v3"
)

type OffsetSpec struct {
	Forward float32 `yaml:"forward"`
	Right   float32 `yaml:"right"`
	Up      float32 `yaml:"up"`
}

func (o OffsetSpec) Offset() interaction.Offset {
	return interaction.Offset{Forward: o.Forward, Right: o.Right, Up: o.Up}
}

type FOVSpec struct {
	Default        float32 `yaml:"default"`
	InspectHolding float32 `yaml:"inspect_holding"`
	InspectEmpty   float32 `yaml:"inspect_empty"`
	Ease           float32 `yaml:"ease"`
}

type AnchorSpec struct {
	Near OffsetSpec `yaml:"near"`
	Far  OffsetSpec `yaml:"far"`
}

type PitchSpec struct {
	Min     float32 `yaml:"min"`
	Max     float32 `yaml:"max"`
	Inspect float32 `yaml:"inspect"`
}

type MovementSpec struct {
	Speed     float32 `yaml:"speed"`
	JumpSpeed float32 `yaml:"jump_speed"`
}

type LookSpec struct {
	Sensitivity float32 `yaml:"sensitivity"`
	InvertY     bool    `yaml:"invert_y"`
}

// Tunables is the player.yaml document.
type Tunables struct {
	TraceLength float32        `yaml:"trace_length"`
	FOV         FOVSpec        `yaml:"fov"`
	Anchor      AnchorSpec     `yaml:"anchor"`
	Pitch       PitchSpec      `yaml:"pitch"`
	TossScale   float32        `yaml:"toss_scale"`
	Movement    MovementSpec   `yaml:"movement"`
	Look        LookSpec       `yaml:"look"`
	Bindings    input.Bindings `yaml:"bindings"`
}

func DefaultTunables() Tunables {
	s := interaction.DefaultSettings()
	return Tunables{
		TraceLength: s.TraceLength,
		FOV: FOVSpec{
			Default:        s.FOVDefault,
			InspectHolding: s.FOVInspectHolding,
			InspectEmpty:   s.FOVInspectEmpty,
			Ease:           s.FOVEase,
		},
		Anchor: AnchorSpec{
			Near: OffsetSpec{Forward: s.AnchorNear.Forward, Right: s.AnchorNear.Right, Up: s.AnchorNear.Up},
			Far:  OffsetSpec{Forward: s.AnchorFar.Forward, Right: s.AnchorFar.Right, Up: s.AnchorFar.Up},
		},
		Pitch: PitchSpec{
			Min:     s.PitchLimits.Min,
			Max:     s.PitchLimits.Max,
			Inspect: s.InspectPitchLimit,
		},
		TossScale: interaction.DefaultTossScale,
		Movement:  MovementSpec{Speed: 600, JumpSpeed: 420},
		Look:      LookSpec{Sensitivity: input.DefaultLookSensitivity},
		Bindings:  input.DefaultBindings(),
	}
}

// Settings converts the tunables for interaction.Player.
func (t Tunables) Settings() interaction.Settings {
	return interaction.Settings{
		TraceLength:       t.TraceLength,
		FOVDefault:        t.FOV.Default,
		FOVInspectHolding: t.FOV.InspectHolding,
		FOVInspectEmpty:   t.FOV.InspectEmpty,
		FOVEase:           t.FOV.Ease,
		AnchorNear:        t.Anchor.Near.Offset(),
		AnchorFar:         t.Anchor.Far.Offset(),
		PitchLimits:       interaction.PitchLimits{Min: t.Pitch.Min, Max: t.Pitch.Max},
		InspectPitchLimit: t.Pitch.Inspect,
	}
}

// Validate reports every out-of-range value.
func (t Tunables) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(t.TraceLength > 0, "trace_length must be positive, got %v", t.TraceLength)
	for name, fov := range map[string]float32{
		"default":         t.FOV.Default,
		"inspect_holding": t.FOV.InspectHolding,
		"inspect_empty":   t.FOV.InspectEmpty,
	} {
		check(fov > 0 && fov < 180, "fov.%s must be in (0, 180), got %v", name, fov)
	}
	check(t.FOV.Ease > 0 && t.FOV.Ease <= 1, "fov.ease must be in (0, 1], got %v", t.FOV.Ease)
	check(t.Pitch.Min < t.Pitch.Max, "pitch.min must be below pitch.max")
	check(t.Pitch.Inspect > 0, "pitch.inspect must be positive, got %v", t.Pitch.Inspect)
	check(t.TossScale >= 0, "toss_scale must not be negative, got %v", t.TossScale)
	check(t.Movement.Speed >= 0, "movement.speed must not be negative, got %v", t.Movement.Speed)
	check(t.Look.Sensitivity > 0, "look.sensitivity must be positive, got %v", t.Look.Sensitivity)
	if _, err := t.Bindings.Resolve(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseTunables decodes a YAML document over the defaults, so a file only
// needs the values it changes.
func ParseTunables(data []byte) (Tunables, error) {
	t := DefaultTunables()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tunables{}, fmt.Errorf("config: unmarshal tunables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tunables{}, fmt.Errorf("config: invalid tunables: %w", err)
	}
	return t, nil
}

func LoadTunables(path string) (Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	t, err := ParseTunables(data)
	if err != nil {
		return Tunables{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
