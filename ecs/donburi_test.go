package ecs

import (
	"testing"

	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []motion.Event
	MotionEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(motion.Event{
		Type:    motion.EventMotionStarted,
		Source:  "slide",
		Element: "logo",
	})
	sink.EmitEvent(motion.Event{
		Type:   motion.EventTransitionStarted,
		Source: "morph",
		Items:  3,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	MotionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != motion.EventMotionStarted || e.Element != "logo" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != motion.EventTransitionStarted || e.Items != 3 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_ControllerEvents(t *testing.T) {
	world := donburi.NewWorld()

	scene := motion.NewScene("main")
	scene.AddItem(motion.NewNode("logo", 10, 10))

	s := motion.NewSettings()
	s.SetString(motion.KeySource, "logo")
	s.SetInt(motion.KeyBehavior, int64(motion.BehaviorRoundTrip))
	s.SetInt(motion.KeyVariationType, int64(motion.VariationPosition))
	s.SetInt(motion.KeyDstX, 100)
	s.SetFloat(motion.KeyDuration, 1)

	c := motion.NewController("slide", scene, s, nil)
	c.SetEventSink(NewDonburiSink(world))

	var types []motion.EventType
	MotionEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		types = append(types, e.Type)
	})

	if !c.Forward() {
		t.Fatal("Forward rejected")
	}
	c.Tick(1)
	c.Remove()
	events.ProcessAllEvents(world)

	want := []motion.EventType{
		motion.EventMotionStarted,
		motion.EventMotionFinished,
		motion.EventMotionRecovered,
	}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	MotionEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		count1++
	})
	MotionEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		count2++
	})

	sink.EmitEvent(motion.Event{Type: motion.EventTransitionStopped})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
