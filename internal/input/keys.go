package input

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button is a keyboard key or a mouse button.
type Button struct {
	Key   int32
	Mouse bool
}

// Mouse button codes, matching raylib's numbering.
const (
	MouseLeft int32 = iota
	MouseRight
	MouseMiddle
)

var buttonByName = map[string]Button{
	"space":       {Key: rl.KeySpace},
	"escape":      {Key: rl.KeyEscape},
	"enter":       {Key: rl.KeyEnter},
	"tab":         {Key: rl.KeyTab},
	"backspace":   {Key: rl.KeyBackspace},
	"leftshift":   {Key: rl.KeyLeftShift},
	"leftcontrol": {Key: rl.KeyLeftControl},
	"leftalt":     {Key: rl.KeyLeftAlt},
	"up":          {Key: rl.KeyUp},
	"down":        {Key: rl.KeyDown},
	"left":        {Key: rl.KeyLeft},
	"right":       {Key: rl.KeyRight},
	"mouseleft":   {Key: MouseLeft, Mouse: true},
	"mouseright":  {Key: MouseRight, Mouse: true},
	"mousemiddle": {Key: MouseMiddle, Mouse: true},
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		buttonByName[strings.ToLower(string(c))] = Button{Key: rl.KeyA + (c - 'A')}
	}
	for d := '0'; d <= '9'; d++ {
		buttonByName[string(d)] = Button{Key: rl.KeyZero + (d - '0')}
	}
	for f := int32(1); f <= 12; f++ {
		buttonByName[fmt.Sprintf("f%d", f)] = Button{Key: rl.KeyF1 + f - 1}
	}
}

// ParseButton resolves a binding name such as "E", "Space", "F1" or
// "MouseRight". Names are case-insensitive.
func ParseButton(name string) (Button, error) {
	b, ok := buttonByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Button{}, fmt.Errorf("unknown button %q", name)
	}
	return b, nil
}

// Action names a bindable input.
type Action int

const (
	MoveForward Action = iota
	MoveBack
	MoveLeft
	MoveRight
	Jump
	Use
	Inspect
	ToggleDebug
	ToggleRifle
	actionCount
)

var actionNames = [actionCount]string{
	"forward", "back", "left", "right", "jump", "action", "inspect", "debug", "rifle",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Bindings maps each action to a button name. Empty names fall back to
// DefaultBindings.
type Bindings struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Jump    string `yaml:"jump"`
	Action  string `yaml:"action"`
	Inspect string `yaml:"inspect"`
	Debug   string `yaml:"debug"`
	Rifle   string `yaml:"rifle"`
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward: "W",
		Back:    "S",
		Left:    "A",
		Right:   "D",
		Jump:    "Space",
		Action:  "E",
		Inspect: "MouseRight",
		Debug:   "F1",
		Rifle:   "R",
	}
}

func (b Bindings) names() [actionCount]string {
	return [actionCount]string{b.Forward, b.Back, b.Left, b.Right, b.Jump, b.Action, b.Inspect, b.Debug, b.Rifle}
}

// Resolve turns names into buttons. Every bad name is reported.
func (b Bindings) Resolve() ([actionCount]Button, error) {
	var out [actionCount]Button
	var bad []string
	defaults := DefaultBindings().names()
	for i, name := range b.names() {
		if name == "" {
			name = defaults[i]
		}
		btn, err := ParseButton(name)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", Action(i), err))
			continue
		}
		out[i] = btn
	}
	if len(bad) > 0 {
		return out, fmt.Errorf("bindings: %s", strings.Join(bad, "; "))
	}
	return out, nil
}
