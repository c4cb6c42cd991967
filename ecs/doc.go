// Package ecs provides ECS adapters for motion events.
//
// The primary adapter is [NewDonburiSink], which forwards controller and
// transition events (motion started, finished, recovered; transition
// started, stopped) into a [Donburi] world as typed events. Subscribe to
// [MotionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller.SetEventSink(sink)
//	transition.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
