package motion

// Element is a positioned visual item inside a scene, as exposed by the host
// scene graph. Controllers and transitions never keep an Element beyond a
// motion or transition without holding a reference via AddRef.
type Element interface {
	// Name is the name of the element's content; unique within a scene.
	Name() string
	// ID is stable for the lifetime of the element within its scene.
	ID() int64

	Transform() TransformSnapshot
	SetTransform(s TransformSnapshot)
	SetPosition(p Vec2)
	SetScale(s Vec2)

	// BaseSize is the intrinsic size of the content.
	BaseSize() (w, h int)
	// Size is the current pixel size of the content before scaling.
	Size() (w, h int)
	Visible() bool

	AddRef()
	Release()
}

// SceneGraph is an ordered collection of elements composited together.
type SceneGraph interface {
	// Name of the scene. Private program-output copies have no name.
	Name() string
	FindByName(name string) Element
	FindByID(id int64) Element
	// EnumItems calls fn for each element in composition order until fn
	// returns false.
	EnumItems(fn func(Element) bool)
	// Duplicate returns a private, independently mutable copy of the scene.
	Duplicate(name string) SceneGraph
	Release()
}

// Side identifies one of the two sources of a transition.
type Side uint8

const (
	SideA Side = iota // outgoing
	SideB             // incoming
)

// TransitionContext is the host side of a transition.
type TransitionContext interface {
	// Source returns the scene on the given side. ok is false when that
	// side is not a scene (or is empty).
	Source(side Side) (scene SceneGraph, ok bool)
	AddActiveChild(scene SceneGraph)
	RemoveActiveChild(scene SceneGraph)
}

// Renderer receives the output of a transition frame.
type Renderer interface {
	// RenderScene draws a private duplicate owned by the transition.
	RenderScene(scene SceneGraph)
	// RenderDirect draws the untouched transition source.
	RenderDirect(side Side)
}

// scaleForSize returns the scale that displays item's content at w×h pixels.
// ok is false when the content has no size.
func scaleForSize(item Element, w, h int) (Vec2, bool) {
	cw, ch := item.Size()
	if cw == 0 || ch == 0 {
		return Vec2{}, false
	}
	return Vec2{float64(w) / float64(cw), float64(h) / float64(ch)}, true
}

// hasContentSize reports whether item's content can be scaled.
func hasContentSize(item Element) bool {
	w, h := item.Size()
	return w != 0 && h != 0
}

// findItem resolves an element by name, falling back to its stable id.
// byID reports whether the fallback was used.
func findItem(scene SceneGraph, name string, id int64) (item Element, byID bool) {
	if scene == nil {
		return nil, false
	}
	if name != "" {
		if item = scene.FindByName(name); item != nil {
			return item, false
		}
	}
	if id >= 0 {
		if item = scene.FindByID(id); item != nil {
			return item, true
		}
	}
	return nil, false
}
