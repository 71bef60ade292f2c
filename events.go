package motor

import "fmt"

// EventType identifies a kind of lifecycle event.
type EventType uint8

const (
	EventAttached   EventType = iota // node joined a scene
	EventDetached                    // node left a scene; Scene names the old one
	EventVisible                     // node's visibility signal resolved
	EventMounted                     // scene was mounted onto a host
	EventUnmounted                   // scene was unmounted from its host
	EventResized                     // attached node's resolved size changed
)

func (t EventType) String() string {
	switch t {
	case EventAttached:
		return "attached"
	case EventDetached:
		return "detached"
	case EventVisible:
		return "visible"
	case EventMounted:
		return "mounted"
	case EventUnmounted:
		return "unmounted"
	case EventResized:
		return "resized"
	default:
		return fmt.Sprintf("event(%d)", uint8(t))
	}
}

// LifecycleEvent describes one lifecycle or sizing change of a node.
type LifecycleEvent struct {
	Type     EventType
	NodeID   uint32
	NodeName string
	Scene    string
	Epoch    uint64
	Size     Size
	UserData any
}

// EventSink is the interface for optional lifecycle event forwarding, for
// example into an ECS world. When set on a Scene, every lifecycle event of
// the scene's nodes is delivered to it in order, on the goroutine driving the
// tree. Events raised by an operation are queued and delivered once the
// operation has finished propagating, so a sink may mutate the tree; events
// raised by such a mutation are delivered after the ones already queued.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// emit queues a lifecycle event for n. Queued events reach the sink on the
// next flush.
func (s *Scene) emit(t EventType, n *Node) {
	if s.events == nil {
		return
	}
	s.pending = append(s.pending, LifecycleEvent{
		Type:     t,
		NodeID:   n.ID,
		NodeName: n.Name,
		Scene:    s.node.Name,
		Epoch:    n.epoch,
		Size:     n.resolved,
		UserData: n.UserData,
	})
}

// flush delivers queued events to the sink. A flush started while another
// one is running returns at once; the running flush drains the new events.
func (s *Scene) flush() {
	if s == nil || s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()
	for len(s.pending) > 0 {
		e := s.pending[0]
		s.pending[0] = LifecycleEvent{}
		s.pending = s.pending[1:]
		if s.events != nil {
			s.events.EmitEvent(e)
		}
	}
	s.pending = nil
}

// flushEvents flushes every non-nil scene in order.
func flushEvents(scenes ...*Scene) {
	for _, s := range scenes {
		s.flush()
	}
}
