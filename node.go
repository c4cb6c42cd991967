package motion

import "github.com/hajimehoshi/ebiten/v2"

// nodeIDCounter is a plain counter; the host loop is single-threaded.
var nodeIDCounter int64

func nextNodeID() int64 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element type of the in-memory scene graph host. A single flat
// struct holds identity, transform and content size; it implements Element.
type Node struct {
	// Identity
	id   int64
	name string

	// Transform
	X, Y            float64
	ScaleX, ScaleY  float64
	Rotation        float64 // degrees
	BoundsW         float64
	BoundsH         float64
	Alignment       Alignment
	BoundsType      BoundsType
	BoundsAlignment Alignment
	Crop            Crop

	// Content size. Width/Height of zero fall back to the base size.
	BaseWidth, BaseHeight int
	Width, Height         int

	// Image is the node's content; nil draws a solid rectangle in Color.
	Image   *ebiten.Image
	Color   Color
	visible bool

	// Lifetime
	scene    *Scene
	refs     int
	disposed bool

	// transformWrites counts transform mutations; used to detect double
	// writes within one frame.
	transformWrites int
}

// NewNode creates a visible node whose content is w×h pixels, placed at the
// origin with unit scale and top-left alignment.
func NewNode(name string, w, h int) *Node {
	return &Node{
		id:         nextNodeID(),
		name:       name,
		ScaleX:     1,
		ScaleY:     1,
		Alignment:  AlignTopLeft,
		BaseWidth:  w,
		BaseHeight: h,
		Color:      ColorWhite,
		visible:    true,
	}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// ID returns the node's stable identity. Duplicated scenes keep the ids of
// the nodes they were copied from.
func (n *Node) ID() int64 { return n.id }

// Scene returns the scene the node belongs to, or nil.
func (n *Node) Scene() *Scene { return n.scene }

// Rename changes the node's name.
func (n *Node) Rename(name string) { n.name = name }

// Transform returns a snapshot of the node's placement.
func (n *Node) Transform() TransformSnapshot {
	return TransformSnapshot{
		Position:        Vec2{n.X, n.Y},
		Scale:           Vec2{n.ScaleX, n.ScaleY},
		Rotation:        n.Rotation,
		Bounds:          Vec2{n.BoundsW, n.BoundsH},
		Alignment:       n.Alignment,
		BoundsType:      n.BoundsType,
		BoundsAlignment: n.BoundsAlignment,
		Crop:            n.Crop,
	}
}

// SetTransform applies every field of s.
func (n *Node) SetTransform(s TransformSnapshot) {
	n.X, n.Y = s.Position.X, s.Position.Y
	n.ScaleX, n.ScaleY = s.Scale.X, s.Scale.Y
	n.Rotation = s.Rotation
	n.BoundsW, n.BoundsH = s.Bounds.X, s.Bounds.Y
	n.Alignment = s.Alignment
	n.BoundsType = s.BoundsType
	n.BoundsAlignment = s.BoundsAlignment
	n.Crop = s.Crop
	n.transformWrites++
}

// SetPosition sets the node's X and Y.
func (n *Node) SetPosition(p Vec2) {
	n.X, n.Y = p.X, p.Y
	n.transformWrites++
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(s Vec2) {
	n.ScaleX, n.ScaleY = s.X, s.Y
	n.transformWrites++
}

// BaseSize returns the intrinsic content size.
func (n *Node) BaseSize() (w, h int) {
	return n.BaseWidth, n.BaseHeight
}

// Size returns the current content size.
func (n *Node) Size() (w, h int) {
	w, h = n.Width, n.Height
	if w == 0 && h == 0 {
		return n.BaseWidth, n.BaseHeight
	}
	return w, h
}

// Visible reports whether the node is drawn.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node.
func (n *Node) SetVisible(v bool) { n.visible = v }

// --- Lifetime ---

// AddRef records a holder that keeps the node usable after it leaves its scene.
func (n *Node) AddRef() {
	n.refs++
}

// Release drops a holder added with AddRef. A detached node is disposed when
// its last holder releases it.
func (n *Node) Release() {
	if n.refs > 0 {
		n.refs--
	}
	if n.refs == 0 && n.scene == nil {
		n.dispose()
	}
}

// Refs returns the number of outstanding AddRef holders.
func (n *Node) Refs() int { return n.refs }

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool { return n.disposed }

func (n *Node) dispose() {
	n.disposed = true
	n.scene = nil
}

// clone copies the node for a duplicated scene, keeping its identity.
func (n *Node) clone() *Node {
	c := *n
	c.scene = nil
	c.refs = 0
	c.disposed = false
	c.transformWrites = 0
	return &c
}
