package components

import (
	"detective/internal/engine"
	"detective/internal/interaction"
)

// HoldingAnchorName is the name of the child object held items snap to.
const HoldingAnchorName = "HoldingComponent"

// HoldingAnchor marks the point in front of the character where carried
// objects sit. Its object is a child of the character body.
type HoldingAnchor struct {
	engine.BaseComponent
	Offset interaction.Offset
}

func NewHoldingAnchor(offset interaction.Offset) *HoldingAnchor {
	return &HoldingAnchor{Offset: offset}
}

func (h *HoldingAnchor) Start() {
	h.SetOffset(h.Offset)
}

// SetOffset moves the anchor relative to the body.
func (h *HoldingAnchor) SetOffset(o interaction.Offset) {
	h.Offset = o
	if g := h.GetGameObject(); g != nil {
		g.Transform.Position = o.Local()
	}
}

// FindHoldingAnchor returns the anchor under body, or nil.
func FindHoldingAnchor(body *engine.GameObject) *HoldingAnchor {
	if body == nil {
		return nil
	}
	return engine.GetComponent[*HoldingAnchor](body.FindChildByName(HoldingAnchorName))
}
