package motor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SizeTween animates one size input of a Node. Create one with
// TweenAbsoluteSize or TweenProportionalSize and call Update(dt) each frame.
// Every step goes through the node's setter, so proportional descendants
// follow the animation. If the target node is disposed or a step is
// rejected, the tween stops immediately and Err reports why.
//
// There is no global animation manager; users call Update themselves.
type SizeTween struct {
	tween  *gween.Tween
	target *Node
	axis   Axis
	set    func(Axis, float64) error
	Done   bool
	err    error
}

// Update advances the tween by dt seconds and writes the value to the node.
func (t *SizeTween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target.IsDisposed() {
		t.Done = true
		return
	}
	val, finished := t.tween.Update(dt)
	if err := t.set(t.axis, float64(val)); err != nil {
		t.err = err
		t.Done = true
		return
	}
	t.Done = finished
}

// Err returns the error that stopped the tween, if any.
func (t *SizeTween) Err() error {
	return t.err
}

// TweenAbsoluteSize creates a SizeTween that animates the node's absolute
// size on axis a to the given value over duration seconds.
func TweenAbsoluteSize(node *Node, a Axis, to float64, duration float32, fn ease.TweenFunc) *SizeTween {
	return &SizeTween{
		tween:  gween.New(float32(node.AbsoluteSize(a)), float32(to), duration, fn),
		target: node,
		axis:   a,
		set:    node.SetAbsoluteSize,
	}
}

// TweenProportionalSize creates a SizeTween that animates the node's
// proportional factor on axis a to the given value over duration seconds.
func TweenProportionalSize(node *Node, a Axis, to float64, duration float32, fn ease.TweenFunc) *SizeTween {
	return &SizeTween{
		tween:  gween.New(float32(node.ProportionalSize(a)), float32(to), duration, fn),
		target: node,
		axis:   a,
		set:    node.SetProportionalSize,
	}
}
