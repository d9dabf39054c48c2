// Package ecs provides ECS adapters for sway's animation lifecycle.
//
// The primary adapter is [NewListener], which bridges animation callbacks
// (start, repeat, end, cancel) into a [Donburi] world as typed events.
// Subscribe to [LifecycleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	l := ecs.NewListener(world)
//	scene.Animate(node).SetListener(l)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
