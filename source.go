package motion

import "fmt"

// Kind selects the implementation behind a Source.
type Kind uint8

const (
	KindMotion     Kind = iota // triggered one-way motion
	KindRoundTrip              // reversible motion
	KindTransition             // scene morph transition
)

// String returns the host-facing id of the kind.
func (k Kind) String() string {
	switch k {
	case KindMotion:
		return "motion-filter"
	case KindRoundTrip:
		return "motion-round-trip"
	case KindTransition:
		return "motion-transition"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind id as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindMotion; k <= KindTransition; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown source kind %q", s)
}

// Source is the capability set a host drives for every element kind. The
// host calls Update on configuration changes, Tick and Render once per
// frame, Save before persisting settings and Remove on teardown.
type Source interface {
	Update(settings *Settings)
	Tick(seconds float64)
	Render(r Renderer)
	Remove()
	Save(settings *Settings)
}

// SourceContext carries the host collaborators a Source may need. Scene
// and Triggers serve motion kinds; Transition and Time serve transitions.
type SourceContext struct {
	Name     string
	Settings *Settings

	Scene    SceneGraph
	Triggers *Triggers

	Transition TransitionContext
	// Time returns the host's transition parameter in [0, 1].
	Time func() float64

	Events EventSink
}

// Defaults registers the default settings of kind on s.
func Defaults(kind Kind, s *Settings) {
	switch kind {
	case KindMotion, KindRoundTrip:
		behavior := BehaviorOneWay
		if kind == KindRoundTrip {
			behavior = BehaviorRoundTrip
		}
		s.SetDefault(KeyMotionEnd, false)
		s.SetDefault(KeyBehavior, int64(behavior))
		s.SetDefault(KeyPathType, int64(PathLinear))
		s.SetDefault(KeyVariationType, int64(VariationPosition))
		s.SetDefault(KeyDuration, 1.0)
		s.SetDefault(KeySourceItemID, int64(-1))
	case KindTransition:
		s.SetDefault(KeyBezierX, 0.0)
		s.SetDefault(KeyBezierY, 0.0)
	}
}

// NewSource creates the implementation of kind, with its defaults applied
// to ctx.Settings.
func NewSource(kind Kind, ctx SourceContext) (Source, error) {
	if ctx.Settings == nil {
		ctx.Settings = NewSettings()
	}
	switch kind {
	case KindMotion, KindRoundTrip:
		Defaults(kind, ctx.Settings)
		c := NewController(ctx.Name, ctx.Scene, ctx.Settings, ctx.Triggers)
		c.SetEventSink(ctx.Events)
		return motionSource{c}, nil
	case KindTransition:
		if ctx.Transition == nil {
			return nil, fmt.Errorf("new %s source %q: no transition context", kind, ctx.Name)
		}
		Defaults(kind, ctx.Settings)
		tr := NewTransition(ctx.Name, ctx.Transition, ctx.Settings)
		tr.SetEventSink(ctx.Events)
		return &transitionSource{Transition: tr, time: ctx.Time}, nil
	default:
		return nil, fmt.Errorf("new source %q: unknown kind %d", ctx.Name, kind)
	}
}

// motionSource adapts a Controller. Motion sources draw nothing of their own.
type motionSource struct {
	*Controller
}

func (motionSource) Render(Renderer) {}

// ControllerOf returns the controller behind a motion source, or nil.
func ControllerOf(s Source) *Controller {
	if ms, ok := s.(motionSource); ok {
		return ms.Controller
	}
	return nil
}

// transitionSource adapts a Transition to the per-frame calls.
type transitionSource struct {
	*Transition
	time func() float64
}

func (s *transitionSource) Tick(float64) {}

func (s *transitionSource) Render(r Renderer) {
	var t float64
	if s.time != nil {
		t = s.time()
	}
	s.Transition.Render(t, r)
}

func (s *transitionSource) Remove() { s.Destroy() }

func (s *transitionSource) Save(*Settings) {}

// TransitionOf returns the transition behind a transition source, or nil.
func TransitionOf(s Source) *Transition {
	if ts, ok := s.(*transitionSource); ok {
		return ts.Transition
	}
	return nil
}
