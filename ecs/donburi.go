package ecs

import (
	"github.com/phanxgames/motor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type scene lifecycle events are
// published to. Each event names the node (ID, name, user data), the scene
// it belongs to, the node epoch and its resolved size at the time of the
// change. Detached events carry the scene the node left and the new epoch,
// so systems can drop per-node state keyed by the old one.
var LifecycleEventType = events.NewEventType[motor.LifecycleEvent]()

type donburiStore struct {
	world donburi.World
	// accept is nil when every event type is published.
	accept map[motor.EventType]bool
}

// NewDonburiStore creates an EventSink that publishes a scene's lifecycle
// events into world. With no types every event is published; otherwise only
// the listed types are, which keeps high-volume EventResized traffic out of
// worlds that only track attachment.
//
// Events are queued in the world until the game calls
// LifecycleEventType.ProcessEvents (or events.ProcessAllEvents), usually once
// per ECS tick after Scene.Update.
func NewDonburiStore(world donburi.World, types ...motor.EventType) motor.EventSink {
	s := &donburiStore{world: world}
	if len(types) > 0 {
		s.accept = make(map[motor.EventType]bool, len(types))
		for _, t := range types {
			s.accept[t] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event motor.LifecycleEvent) {
	if s.accept != nil && !s.accept[event.Type] {
		return
	}
	LifecycleEventType.Publish(s.world, event)
}
