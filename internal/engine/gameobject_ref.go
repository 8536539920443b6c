package engine

// GameObjectRef is a weak reference to a GameObject by UID. It never keeps
// the object alive: Get returns nil once the object has left the scene.
//
// Example:
//
//	type Lamp struct {
//	    engine.BaseComponent
//	    Switch engine.GameObjectRef
//	}
//
//	func (l *Lamp) Update(dt float32) {
//	    if sw := l.Switch.Get(l.GetGameObject().Scene); sw != nil {
//	        // ...
//	    }
//	}
type GameObjectRef struct {
	UID uint64 // 0 = none
}

// RefTo returns a reference to g, or an empty reference for nil.
func RefTo(g *GameObject) GameObjectRef {
	var r GameObjectRef
	r.Set(g)
	return r
}

// Get resolves the reference. Returns nil if the reference is empty or the
// object is no longer in the scene.
func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid reports whether the reference points at something. It does not
// check that the object still exists.
func (r GameObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at g. Pass nil to clear it.
func (r *GameObjectRef) Set(g *GameObject) {
	if g == nil {
		r.UID = 0
	} else {
		r.UID = g.UID
	}
}

func (r *GameObjectRef) Clear() {
	r.UID = 0
}
