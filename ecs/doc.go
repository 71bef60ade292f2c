// Package ecs provides ECS adapters for motor's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges node lifecycle
// events (attached, detached, visible, mounted, unmounted, resized) into a
// [Donburi] world as typed events. Subscribe to [LifecycleEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene := motor.NewScene("main", motor.WithEventSink(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
