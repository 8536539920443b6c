package engine

import (
	"errors"
	"testing"
)

type MockScript struct {
	BaseComponent
	Speed  float32
	Anchor string
}

func mockFactory(props map[string]any) (Component, error) {
	script := &MockScript{Anchor: "HoldingComponent"}
	if v, ok := props["speed"].(float64); ok {
		script.Speed = float32(v)
	}
	if v, ok := props["anchor"].(string); ok {
		script.Anchor = v
	}
	return script, nil
}

func mockSerializer(c Component) map[string]any {
	s, ok := c.(*MockScript)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed":  s.Speed,
		"anchor": s.Anchor,
	}
}

func TestRegisterScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("Duplicate", mockFactory, mockSerializer)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory, mockSerializer)
}

func TestCreateScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	component, err := CreateScript("MockScript", map[string]any{
		"speed":  float64(10.5),
		"anchor": "Hand",
	})
	if err != nil {
		t.Fatalf("CreateScript: %v", err)
	}

	script, ok := component.(*MockScript)
	if !ok {
		t.Fatal("CreateScript didn't return MockScript")
	}
	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}
	if script.Anchor != "Hand" {
		t.Errorf("Expected Anchor 'Hand', got '%s'", script.Anchor)
	}
}

func TestCreateScriptNotFound(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	component, err := CreateScript("DoesNotExist", nil)
	if component != nil {
		t.Error("CreateScript should return nil for non-existent script")
	}
	if !errors.Is(err, ErrUnknownScript) {
		t.Errorf("Expected ErrUnknownScript, got %v", err)
	}
}

func TestCreateScriptFactoryError(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	boom := errors.New("boom")
	RegisterScript("Broken", func(map[string]any) (Component, error) {
		return nil, boom
	}, nil)

	if _, err := CreateScript("Broken", nil); !errors.Is(err, boom) {
		t.Errorf("Expected factory error to be wrapped, got %v", err)
	}
}

func TestSerializeScript(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("MockScript", mockFactory, mockSerializer)

	name, props, ok := SerializeScript(&MockScript{Speed: 15.0, Anchor: "Hand"})
	if !ok {
		t.Fatal("SerializeScript failed")
	}
	if name != "MockScript" {
		t.Errorf("Expected name 'MockScript', got '%s'", name)
	}
	if props["speed"] != float32(15.0) {
		t.Errorf("Expected speed 15.0, got %v", props["speed"])
	}

	if _, _, ok := SerializeScript(&BaseComponent{}); ok {
		t.Error("SerializeScript should not claim foreign components")
	}
}

func TestGetRegisteredScripts(t *testing.T) {
	scriptRegistry = map[string]scriptEntry{}

	RegisterScript("ScriptC", mockFactory, mockSerializer)
	RegisterScript("ScriptA", mockFactory, mockSerializer)
	RegisterScript("ScriptB", mockFactory, mockSerializer)

	scripts := GetRegisteredScripts()

	if len(scripts) != 3 {
		t.Fatalf("Expected 3 scripts, got %d", len(scripts))
	}
	if scripts[0] != "ScriptA" || scripts[1] != "ScriptB" || scripts[2] != "ScriptC" {
		t.Errorf("Scripts not in sorted order: %v", scripts)
	}
}
