package engine

import (
	"fmt"
	"sort"
	"strings"
)

// ScriptFactory creates a Component from scene-file props.
type ScriptFactory func(props map[string]any) (Component, error)

// ScriptSerializer converts a Component back to props. It returns nil for
// components it does not own.
type ScriptSerializer func(c Component) map[string]any

type scriptEntry struct {
	factory    ScriptFactory
	serializer ScriptSerializer
}

var scriptRegistry = map[string]scriptEntry{}

// RegisterScript registers a named script. Registering the same name twice
// panics: it is always a programming error.
func RegisterScript(name string, factory ScriptFactory, serializer ScriptSerializer) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = scriptEntry{factory: factory, serializer: serializer}
}

// CreateScript builds the named script from props.
func CreateScript(name string, props map[string]any) (Component, error) {
	entry, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("script %q: %w (registered: %s)", name, ErrUnknownScript, strings.Join(GetRegisteredScripts(), ", "))
	}
	c, err := entry.factory(props)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return c, nil
}

// SerializeScript finds the script that owns c and returns its props.
func SerializeScript(c Component) (string, map[string]any, bool) {
	for name, entry := range scriptRegistry {
		if entry.serializer == nil {
			continue
		}
		if props := entry.serializer(c); props != nil {
			return name, props, true
		}
	}
	return "", nil, false
}

// GetRegisteredScripts returns a sorted list of all registered script names.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
