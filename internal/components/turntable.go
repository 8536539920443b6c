package components

import (
	"fmt"

	"detective/internal/engine"
)

func init() {
	engine.RegisterScript("Turntable", turntableFactory, turntableSerializer)
}

func turntableFactory(props map[string]any) (engine.Component, error) {
	t := &Turntable{Speed: 30}
	if v, ok := props["speed"]; ok {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("speed: want number, got %T", v)
		}
		t.Speed = float32(f)
	}
	return t, nil
}

func turntableSerializer(c engine.Component) map[string]any {
	t, ok := c.(*Turntable)
	if !ok {
		return nil
	}
	return map[string]any{"speed": t.Speed}
}

// Turntable spins a display piece around Y, in degrees per second. It
// pauses while the object is being carried.
type Turntable struct {
	engine.BaseComponent
	Speed float32
}

func (t *Turntable) Update(deltaTime float32) {
	g := t.GetGameObject()
	if g == nil {
		return
	}
	if p := engine.GetComponent[*PickupAndRotate](g); p != nil && p.Holding() {
		return
	}
	g.Transform.Rotation.Y += t.Speed * deltaTime
	if g.Transform.Rotation.Y > 360 {
		g.Transform.Rotation.Y -= 360
	} else if g.Transform.Rotation.Y < -360 {
		g.Transform.Rotation.Y += 360
	}
}
