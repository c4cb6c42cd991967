package motion

// EventType identifies a kind of motion event.
type EventType uint8

const (
	EventMotionStarted     EventType = iota // a controller accepted a trigger
	EventMotionFinished                     // a controller reached the end of its path
	EventMotionRecovered                    // a controller snapped its target back to the start
	EventTransitionStarted                  // a transition built its match lists
	EventTransitionStopped                  // a transition released its duplicates
)

// String returns a short name for the event type.
func (e EventType) String() string {
	switch e {
	case EventMotionStarted:
		return "motion-started"
	case EventMotionFinished:
		return "motion-finished"
	case EventMotionRecovered:
		return "motion-recovered"
	case EventTransitionStarted:
		return "transition-started"
	case EventTransitionStopped:
		return "transition-stopped"
	default:
		return "unknown"
	}
}

// Event carries a state change of a controller or transition.
type Event struct {
	Type EventType
	// Source is the name of the controller or transition.
	Source string
	// Element is the target element name (controller events only).
	Element string
	// AtDestination is the resting side after the event (controller events only).
	AtDestination bool
	// Reverse is true when the started or finished motion walked the path backward.
	Reverse bool
	// Items is the number of matched elements (transition start only).
	Items int
}

// EventSink receives motion events. Set one on a Controller or Transition to
// forward state changes to an ECS or other observer.
type EventSink interface {
	EmitEvent(event Event)
}
