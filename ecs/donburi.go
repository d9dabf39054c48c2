package ecs

import (
	"github.com/phanxgames/sway"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Kind identifies an animation lifecycle transition.
type Kind uint8

const (
	KindStart Kind = iota
	KindRepeat
	KindEnd
	KindCancel
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindRepeat:
		return "repeat"
	case KindEnd:
		return "end"
	case KindCancel:
		return "cancel"
	}
	return "unknown"
}

// LifecycleEvent carries one lifecycle callback into the ECS.
type LifecycleEvent struct {
	Kind      Kind
	Animation *sway.Animation
	Target    any
	// Iteration counts OnRepeat deliveries seen for Animation, starting at 0.
	Iteration int
}

// LifecycleEventType is the Donburi event type for animation lifecycle
// events. Subscribe to it in your ECS systems.
var LifecycleEventType = events.NewEventType[LifecycleEvent]()

type donburiListener struct {
	world   donburi.World
	repeats map[*sway.Animation]int
}

// NewListener returns a sway.Listener that publishes every callback to
// LifecycleEventType on world. Events queue until ProcessEvents is called,
// typically from the ECS update after Scene.Update.
func NewListener(world donburi.World) sway.Listener {
	return &donburiListener{world: world, repeats: make(map[*sway.Animation]int)}
}

func (l *donburiListener) publish(kind Kind, a *sway.Animation) {
	LifecycleEventType.Publish(l.world, LifecycleEvent{
		Kind:      kind,
		Animation: a,
		Target:    a.Target(),
		Iteration: l.repeats[a],
	})
}

func (l *donburiListener) OnStart(a *sway.Animation) {
	l.publish(KindStart, a)
}

func (l *donburiListener) OnRepeat(a *sway.Animation) {
	l.repeats[a]++
	l.publish(KindRepeat, a)
}

func (l *donburiListener) OnEnd(a *sway.Animation) {
	l.publish(KindEnd, a)
	delete(l.repeats, a)
}

func (l *donburiListener) OnCancel(a *sway.Animation) {
	l.publish(KindCancel, a)
	delete(l.repeats, a)
}
