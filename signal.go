package motor

import "context"

// Signal is a one-shot deferred value that resolves with the Scene a node
// belongs to. Each Signal is tied to one epoch of its node; when the node is
// detached the node receives a fresh Signal and the old one is never
// resolved.
//
// Resolution happens on the goroutine driving the tree. Waiting is safe from
// any goroutine.
type Signal struct {
	done  chan struct{}
	scene *Scene
	epoch uint64
}

func newSignal(epoch uint64) *Signal {
	return &Signal{done: make(chan struct{}), epoch: epoch}
}

// resolve completes the signal with s. Calls after the first are ignored.
func (sg *Signal) resolve(s *Scene) bool {
	if sg.Resolved() {
		return false
	}
	sg.scene = s
	close(sg.done)
	return true
}

// Done returns a channel that is closed when the signal resolves.
func (sg *Signal) Done() <-chan struct{} {
	return sg.done
}

// Resolved reports whether the signal has resolved.
func (sg *Signal) Resolved() bool {
	select {
	case <-sg.done:
		return true
	default:
		return false
	}
}

// Scene returns the resolved scene, or false if the signal is unresolved.
func (sg *Signal) Scene() (*Scene, bool) {
	if !sg.Resolved() {
		return nil, false
	}
	return sg.scene, true
}

// Epoch returns the node epoch this signal belongs to.
func (sg *Signal) Epoch() uint64 {
	return sg.epoch
}

// Wait blocks until the signal resolves or ctx is done. A superseded signal
// never resolves, so callers that may detach the node should pass a
// cancellable context.
func (sg *Signal) Wait(ctx context.Context) (*Scene, error) {
	select {
	case <-sg.done:
		return sg.scene, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
