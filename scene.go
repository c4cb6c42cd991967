package motion

// Scene is the in-memory scene graph host. It owns an ordered list of nodes
// (composition order, back to front) and implements SceneGraph.
type Scene struct {
	name     string
	items    []*Node
	private  bool
	released bool

	// Background fill used by Draw.
	ClearColor Color
}

// NewScene creates an empty named scene.
func NewScene(name string) *Scene {
	return &Scene{name: name}
}

// Name returns the scene name; private duplicates may be unnamed.
func (s *Scene) Name() string { return s.name }

// Private reports whether the scene is a duplicate owned by a transition or
// by the program output.
func (s *Scene) Private() bool { return s.private }

// IsReleased reports whether Release has been called.
func (s *Scene) IsReleased() bool { return s.released }

// AddItem appends node to the top of the scene.
// If node belongs to another scene it is removed from that scene first.
// Panics if node is nil.
func (s *Scene) AddItem(node *Node) {
	if node == nil {
		panic("motion: cannot add nil node")
	}
	if node.scene != nil {
		node.scene.removeByPtr(node)
	}
	node.scene = s
	s.items = append(s.items, node)
}

// RemoveItem detaches node from the scene. Panics if node.Scene() != s.
// The node is disposed unless a holder still references it.
func (s *Scene) RemoveItem(node *Node) {
	if node.scene != s {
		panic("motion: node does not belong to this scene")
	}
	s.removeByPtr(node)
	node.scene = nil
	if node.refs == 0 {
		node.dispose()
	}
}

// Items returns the node list. The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Items() []*Node {
	return s.items
}

// NumItems returns the number of nodes.
func (s *Scene) NumItems() int {
	return len(s.items)
}

// Node returns the first node with the given name, or nil.
func (s *Scene) Node(name string) *Node {
	for _, n := range s.items {
		if n.name == name {
			return n
		}
	}
	return nil
}

// FindByName implements SceneGraph.
func (s *Scene) FindByName(name string) Element {
	if n := s.Node(name); n != nil {
		return n
	}
	return nil
}

// FindByID implements SceneGraph.
func (s *Scene) FindByID(id int64) Element {
	for _, n := range s.items {
		if n.id == id {
			return n
		}
	}
	return nil
}

// EnumItems implements SceneGraph.
func (s *Scene) EnumItems(fn func(Element) bool) {
	for _, n := range s.items {
		if !fn(n) {
			return
		}
	}
}

// Duplicate returns a private copy of the scene. Nodes are copied with
// their names and ids, so lookups against the copy resolve the same items.
func (s *Scene) Duplicate(name string) SceneGraph {
	return s.duplicate(name)
}

func (s *Scene) duplicate(name string) *Scene {
	dup := &Scene{
		name:       name,
		private:    true,
		ClearColor: s.ClearColor,
		items:      make([]*Node, 0, len(s.items)),
	}
	for _, n := range s.items {
		c := n.clone()
		c.scene = dup
		dup.items = append(dup.items, c)
	}
	return dup
}

// Release drops the scene. Nodes without outstanding holders are disposed;
// held nodes are detached and disposed on their last Release.
// Calling Release more than once is a no-op.
func (s *Scene) Release() {
	if s.released {
		return
	}
	s.released = true
	for _, n := range s.items {
		n.scene = nil
		if n.refs == 0 {
			n.dispose()
		}
	}
	s.items = nil
}

// removeByPtr removes node from s.items without clearing node.scene.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (s *Scene) removeByPtr(node *Node) {
	for i, n := range s.items {
		if n == node {
			copy(s.items[i:], s.items[i+1:])
			s.items[len(s.items)-1] = nil
			s.items = s.items[:len(s.items)-1]
			return
		}
	}
}
