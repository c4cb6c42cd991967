package motion

import "github.com/hajimehoshi/ebiten/v2"

// Triggers is the trigger source shared by the controllers of one host:
// hotkeys polled from the keyboard and scene-activation notifications.
type Triggers struct {
	hotkeys []*hotkeyEntry
	pollBuf []*hotkeyEntry

	sceneHandlers []sceneHandler
	current       SceneGraph

	keyPressed func(ebiten.Key) bool
	nextID     uint32
}

type sceneHandler struct {
	id uint32
	fn func(SceneGraph)
}

// NewTriggers creates a trigger source reading the keyboard through ebiten.
func NewTriggers() *Triggers {
	return &Triggers{keyPressed: ebiten.IsKeyPressed}
}

// SetKeyReader replaces the function used by Poll to read key state.
// Passing nil restores ebiten.IsKeyPressed.
func (tr *Triggers) SetKeyReader(fn func(ebiten.Key) bool) {
	if fn == nil {
		fn = ebiten.IsKeyPressed
	}
	tr.keyPressed = fn
}

// CallbackHandle allows removing a registered scene-change callback.
type CallbackHandle struct {
	id uint32
	tr *Triggers
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once and on the zero handle.
func (h CallbackHandle) Remove() {
	if h.tr == nil {
		return
	}
	s := h.tr.sceneHandlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = sceneHandler{}
			h.tr.sceneHandlers = s[:len(s)-1]
			return
		}
	}
}

// OnSceneChanged registers fn to be called with the new current scene each
// time SetCurrentScene switches scenes.
func (tr *Triggers) OnSceneChanged(fn func(SceneGraph)) CallbackHandle {
	tr.nextID++
	id := tr.nextID
	tr.sceneHandlers = append(tr.sceneHandlers, sceneHandler{id: id, fn: fn})
	return CallbackHandle{id: id, tr: tr}
}

// CurrentScene returns the scene most recently set as current, or nil.
func (tr *Triggers) CurrentScene() SceneGraph {
	return tr.current
}

// SetCurrentScene records scene as the program scene and notifies every
// scene-change callback. Setting the already current scene does nothing.
func (tr *Triggers) SetCurrentScene(scene SceneGraph) {
	if scene == tr.current {
		return
	}
	tr.current = scene
	// Handlers may remove themselves while being notified.
	handlers := append([]sceneHandler(nil), tr.sceneHandlers...)
	for _, h := range handlers {
		h.fn(scene)
	}
}
