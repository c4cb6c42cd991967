package motion

import "github.com/rs/zerolog"

// Settings keys of a Transition. Both hold values in [-0.5, 0.5].
const (
	KeyBezierX = "bezier_x"
	KeyBezierY = "bezier_y"
)

// Names given to the private scene duplicates of a running transition.
const (
	outgoingSceneName = "motion-transition-a"
	incomingSceneName = "motion-transition-b"
)

// Classification is how a transition animates one element.
type Classification uint8

const (
	Morph           Classification = iota // present in both scenes
	FadeOutToPoint                        // only in the outgoing scene
	FadeInFromPoint                       // only in the incoming scene
)

// String returns a short name for the classification.
func (c Classification) String() string {
	switch c {
	case Morph:
		return "morph"
	case FadeOutToPoint:
		return "fade-out"
	case FadeInFromPoint:
		return "fade-in"
	default:
		return "unknown"
	}
}

// MovingItem is the per-element descriptor of a running transition.
// Element belongs to one of the transition's private scene duplicates.
type MovingItem struct {
	Element Element
	Kind    Classification
	Start   TransformSnapshot
	End     TransformSnapshot
	// Control bends a morph's position path when Curved is set.
	Control Vec2
	Curved  bool

	// incoming items take their own placement from End, outgoing from Start.
	incoming bool
}

// localT maps the global transition parameter to the item's own progress.
// Morphs span the whole transition; fades use their half of it.
func (m *MovingItem) localT(t float64) float64 {
	switch m.Kind {
	case FadeOutToPoint:
		return t * 2
	case FadeInFromPoint:
		return t*2 - 1
	default:
		return t
	}
}

// At returns the item's transform at global transition parameter t. The
// alignment and bounds settings are always the element's own, so a morph
// between differently placed elements keeps its type on both sides.
func (m *MovingItem) At(t float64) TransformSnapshot {
	lt := m.localT(t)
	s := LerpSnapshot(m.Start, m.End, lt)
	own := m.Start
	if m.incoming {
		own = m.End
	}
	s.Alignment = own.Alignment
	s.BoundsType = own.BoundsType
	s.BoundsAlignment = own.BoundsAlignment
	if m.Curved {
		pts := [3]Vec2{m.Start.Position, m.Control, m.End.Position}
		s.Position = BezierVec(pts[:], lt, 2)
	}
	return s
}

// apply writes the item's transform for t in a single call.
func (m *MovingItem) apply(t float64) {
	m.Element.SetTransform(m.At(t))
}

// itemList is the descriptor list of one side of a transition.
type itemList struct {
	scene SceneGraph
	items []*MovingItem
}

func (l *itemList) update(t float64) {
	for _, m := range l.items {
		m.apply(t)
	}
}

// Transition morphs an outgoing scene into an incoming one. Elements present
// in both scenes move between their two placements; the rest collapse into
// or grow out of their own centre.
//
// Start schedules the match; the lists are built on the next Render. The
// host calls Render once per frame with t in [0, 1] and Stop when the
// transition ends.
type Transition struct {
	name   string
	ctx    TransitionContext
	events EventSink
	log    zerolog.Logger

	biasX, biasY float64

	out, in       itemList
	pendingStart  bool
	sceneMode     bool // both sources are scenes
	transitioning bool
	entered       bool // a frame inside (0, 1) has been rendered
}

// NewTransition creates a transition for the host context ctx.
func NewTransition(name string, ctx TransitionContext, settings *Settings) *Transition {
	tr := &Transition{
		name: name,
		ctx:  ctx,
		log:  logger.With().Str("transition", name).Logger(),
	}
	tr.Update(settings)
	return tr
}

// SetLogger replaces the transition's logger.
func (tr *Transition) SetLogger(l zerolog.Logger) {
	tr.log = l.With().Str("transition", tr.name).Logger()
}

// SetEventSink sets the receiver of the transition's events; nil disables them.
func (tr *Transition) SetEventSink(sink EventSink) {
	tr.events = sink
}

// Name returns the transition name.
func (tr *Transition) Name() string { return tr.name }

// Update reads the path bias. A setting x in [-0.5, 0.5] becomes a control
// point placed at fraction -x+0.5 between the two endpoints.
func (tr *Transition) Update(settings *Settings) {
	if settings == nil {
		settings = NewSettings()
	}
	tr.biasX = -clamp(settings.Float(KeyBezierX), -0.5, 0.5) + 0.5
	tr.biasY = -clamp(settings.Float(KeyBezierY), -0.5, 0.5) + 0.5
}

// Bias returns the control point fractions used by the outgoing list.
func (tr *Transition) Bias() (x, y float64) { return tr.biasX, tr.biasY }

// Start marks the beginning of a transition. Any transition still running
// is stopped on the next Render before the new one is built.
func (tr *Transition) Start() {
	tr.pendingStart = true
}

// Transitioning reports whether match lists and duplicates are held.
func (tr *Transition) Transitioning() bool { return tr.transitioning }

// Outgoing returns the descriptors of the outgoing scene.
func (tr *Transition) Outgoing() []*MovingItem { return tr.out.items }

// Incoming returns the descriptors of the incoming scene.
func (tr *Transition) Incoming() []*MovingItem { return tr.in.items }

// init duplicates both scenes and builds the match lists. When either side
// is not a scene the transition falls back to a direct cut.
func (tr *Transition) init() {
	tr.pendingStart = false
	if tr.transitioning {
		tr.Stop()
	}

	a, okA := tr.ctx.Source(SideA)
	b, okB := tr.ctx.Source(SideB)
	tr.sceneMode = okA && okB && a != nil && b != nil
	if !tr.sceneMode {
		tr.log.Debug().Msg("sources are not scenes, cutting directly")
		return
	}

	tr.out.scene = a.Duplicate(outgoingSceneName)
	tr.ctx.AddActiveChild(tr.out.scene)
	tr.in.scene = b.Duplicate(incomingSceneName)
	tr.ctx.AddActiveChild(tr.in.scene)

	tr.out.items = tr.buildList(tr.out.scene, tr.in.scene, true)
	tr.in.items = tr.buildList(tr.in.scene, tr.out.scene, false)
	tr.transitioning = true

	n := len(tr.out.items) + len(tr.in.items)
	tr.log.Debug().Int("items", n).Msg("transition started")
	if tr.events != nil {
		tr.events.EmitEvent(Event{Type: EventTransitionStarted, Source: tr.name, Items: n})
	}
}

// matchItems calls visit for each element of scene with its same-named
// counterpart in other (nil when absent), in enumeration order, until visit
// returns false.
func matchItems(scene, other SceneGraph, visit func(item, match Element) bool) {
	scene.EnumItems(func(item Element) bool {
		return visit(item, other.FindByName(item.Name()))
	})
}

// buildList classifies the elements of scene against other. outgoing
// selects which endpoint the element's own transform fills.
func (tr *Transition) buildList(scene, other SceneGraph, outgoing bool) []*MovingItem {
	bx, by := tr.biasX, tr.biasY
	if !outgoing {
		bx, by = 1-bx, 1-by
	}

	var items []*MovingItem
	matchItems(scene, other, func(item, match Element) bool {
		own := item.Transform()
		var counterpart TransformSnapshot
		m := &MovingItem{Element: item, incoming: !outgoing}

		if match != nil {
			counterpart = match.Transform()
			m.Kind = Morph
			if SameTransformType(own, counterpart) && item.Visible() == match.Visible() {
				m.Curved = true
				m.Control = Vec2{
					Lerp(own.Position.X, counterpart.Position.X, bx),
					Lerp(own.Position.Y, counterpart.Position.Y, by),
				}
			}
		} else {
			counterpart = collapsed(item, own)
			m.Kind = FadeInFromPoint
			if outgoing {
				m.Kind = FadeOutToPoint
			}
		}

		if outgoing {
			m.Start, m.End = own, counterpart
		} else {
			m.Start, m.End = counterpart, own
		}
		item.AddRef()
		items = append(items, m)
		return true
	})
	return items
}

// collapsed returns s shrunk to nothing at the centre of item's content.
func collapsed(item Element, s TransformSnapshot) TransformSnapshot {
	c := s
	c.Position = contentCenter(item, s)
	c.Scale = Vec2{}
	if s.BoundsType != BoundsNone {
		c.Bounds = Vec2{}
	}
	return c
}

// Render draws the transition frame at t. Within (0, 1) the outgoing
// duplicate is animated and drawn up to the midpoint and the incoming one
// after it; outside that range, or when the sources are not scenes, the
// untouched source of the nearer side is drawn directly. Reaching t >= 1
// ends the transition, as does returning to t <= 0 after a frame inside
// (0, 1).
func (tr *Transition) Render(t float64, r Renderer) {
	if tr.pendingStart {
		tr.init()
	}

	switch {
	case t > 0 && t < 1 && tr.sceneMode && tr.transitioning:
		tr.entered = true
		if t <= 0.5 {
			tr.out.update(t)
			r.RenderScene(tr.out.scene)
		} else {
			tr.in.update(t)
			r.RenderScene(tr.in.scene)
		}
	case t <= 0.5:
		r.RenderDirect(SideA)
	default:
		r.RenderDirect(SideB)
	}

	if tr.transitioning && (t >= 1 || (t <= 0 && tr.entered)) {
		tr.Stop()
	}
}

// Stop releases the duplicates, their active-child registrations and the
// element references of the match lists. Safe to call more than once.
func (tr *Transition) Stop() {
	if !tr.transitioning {
		return
	}
	tr.transitioning = false
	tr.entered = false
	for _, l := range []*itemList{&tr.in, &tr.out} {
		for _, m := range l.items {
			m.Element.Release()
		}
		if l.scene != nil {
			tr.ctx.RemoveActiveChild(l.scene)
			l.scene.Release()
		}
		*l = itemList{}
	}
	tr.log.Debug().Msg("transition stopped")
	if tr.events != nil {
		tr.events.EmitEvent(Event{Type: EventTransitionStopped, Source: tr.name})
	}
}

// Destroy stops the transition and drops any pending start.
func (tr *Transition) Destroy() {
	tr.pendingStart = false
	tr.Stop()
}

// ActiveScenes calls fn for each duplicate while a transition is running.
func (tr *Transition) ActiveScenes(fn func(SceneGraph)) {
	if !tr.transitioning {
		return
	}
	tr.AllScenes(fn)
}

// AllScenes calls fn for each duplicate currently held.
func (tr *Transition) AllScenes(fn func(SceneGraph)) {
	if tr.out.scene != nil {
		fn(tr.out.scene)
	}
	if tr.in.scene != nil {
		fn(tr.in.scene)
	}
}

// MixWeights returns the audio weights of the outgoing and incoming
// sources at t.
func MixWeights(t float64) (a, b float64) {
	return 1 - t, t
}
