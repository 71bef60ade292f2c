package motor

import (
	"fmt"
	"math"
)

// --- Size property setters ---

// SetSizeMode sets how the node's size is computed on axis a and cascades
// the change into size-sensitive descendants.
func (n *Node) SetSizeMode(a Axis, m SizeMode) error {
	if err := n.checkSizeInput("size mode", a); err != nil {
		return err
	}
	if !m.valid() {
		return fmt.Errorf("set %s size mode of %q to %s: %w", a, n.Name, m, ErrInvalidSize)
	}
	if n.sizeMode[a] == m {
		return nil
	}
	n.sizeMode[a] = m
	n.sizeInputChanged(true)
	return nil
}

// SetAbsoluteSize sets the raw absolute size on axis a. The value is used
// while the axis is in SizeAbsolute mode.
func (n *Node) SetAbsoluteSize(a Axis, v float64) error {
	if err := n.checkSizeValue("absolute size", a, v); err != nil {
		return err
	}
	if n.absoluteSize[a] == v {
		return nil
	}
	n.absoluteSize[a] = v
	n.sizeInputChanged(false)
	return nil
}

// SetProportionalSize sets the proportional factor on axis a, where 1 means
// the full size of the dependency. The value is used while the axis is in
// SizeProportional mode.
func (n *Node) SetProportionalSize(a Axis, f float64) error {
	if err := n.checkSizeValue("proportional size", a, f); err != nil {
		return err
	}
	if n.proportionalSize[a] == f {
		return nil
	}
	n.proportionalSize[a] = f
	n.sizeInputChanged(false)
	return nil
}

// SetSize sets the mode of axis a together with the raw value that mode
// reads, in one cascade.
func (n *Node) SetSize(a Axis, m SizeMode, v float64) error {
	if err := n.checkSizeValue(m.String()+" size", a, v); err != nil {
		return err
	}
	if !m.valid() {
		return fmt.Errorf("set %s size of %q: mode %s: %w", a, n.Name, m, ErrInvalidSize)
	}
	raw := &n.absoluteSize[a]
	if m == SizeProportional {
		raw = &n.proportionalSize[a]
	}
	if n.sizeMode[a] == m && *raw == v {
		return nil
	}
	modeChanged := n.sizeMode[a] != m
	n.sizeMode[a] = m
	*raw = v
	n.sizeInputChanged(modeChanged)
	return nil
}

// SetAlign sets the alignment of the node within its parent's bounds on axis
// a, as a fraction of the parent's size (0 = start, 1 = end).
func (n *Node) SetAlign(a Axis, v float64) error {
	if err := n.checkOffsetValue("align", a, v); err != nil {
		return err
	}
	if n.align[a] == v {
		return nil
	}
	n.align[a] = v
	n.sizeInputChanged(false)
	return nil
}

// SetMountPoint sets the anchor point of the node on axis a, as a fraction
// of its own size, that is placed at the aligned position.
func (n *Node) SetMountPoint(a Axis, v float64) error {
	if err := n.checkOffsetValue("mount point", a, v); err != nil {
		return err
	}
	if n.mountPoint[a] == v {
		return nil
	}
	n.mountPoint[a] = v
	n.sizeInputChanged(false)
	return nil
}

// --- Size property getters ---

// SizeMode returns the size mode of axis a.
func (n *Node) SizeMode(a Axis) SizeMode {
	if !a.valid() {
		return SizeAbsolute
	}
	return n.sizeMode[a]
}

// AbsoluteSize returns the raw absolute size of axis a.
func (n *Node) AbsoluteSize(a Axis) float64 {
	if !a.valid() {
		return 0
	}
	return n.absoluteSize[a]
}

// ProportionalSize returns the raw proportional factor of axis a.
func (n *Node) ProportionalSize(a Axis) float64 {
	if !a.valid() {
		return 0
	}
	return n.proportionalSize[a]
}

// Align returns the alignment of axis a.
func (n *Node) Align(a Axis) float64 {
	if !a.valid() {
		return 0
	}
	return n.align[a]
}

// MountPoint returns the mount point of axis a.
func (n *Node) MountPoint(a Axis) float64 {
	if !a.valid() {
		return 0
	}
	return n.mountPoint[a]
}

// ResolvedSize returns the cached resolved size. Proportional axes stay
// unknown until the node is attached and its dependency is resolved.
func (n *Node) ResolvedSize() Size {
	return n.resolved
}

// ResolvedOffset returns the cached offset of the node inside its parent's
// bounds: align*parentSize - mountPoint*ownSize on each axis.
func (n *Node) ResolvedOffset() Size {
	return n.offset
}

// --- Resolution ---

// dependency returns the size a proportional axis of n is measured against:
// the host size for a scene root, the parent's resolved size otherwise. A
// detached node has no dependency.
func (n *Node) dependency(a Axis) Dim {
	if n.Type == NodeTypeScene {
		if n.scene == nil {
			return Dim{}
		}
		return n.scene.hostDim(a)
	}
	if n.scene == nil || n.parent == nil {
		return Dim{}
	}
	return n.parent.resolved.Axis(a)
}

// computeSize recomputes the resolved size and offset from the node's
// inputs and reports whether the resolved size changed.
func (n *Node) computeSize() bool {
	var size, offset Size
	for _, a := range axes {
		var d Dim
		switch n.sizeMode[a] {
		case SizeAbsolute:
			d = known(n.absoluteSize[a])
		case SizeProportional:
			if dep := n.dependency(a); dep.Known {
				d = known(n.proportionalSize[a] * dep.Value)
			}
		}
		size.set(a, d)
		offset.set(a, n.axisOffset(a, d))
	}
	changed := size != n.resolved
	n.resolved = size
	n.offset = offset
	return changed
}

// axisOffset computes align*parent - mountPoint*own for one axis. A zero
// factor contributes a known zero even when its size is unknown.
func (n *Node) axisOffset(a Axis, own Dim) Dim {
	v := 0.0
	if n.align[a] != 0 {
		dep := n.dependency(a)
		if !dep.Known {
			return Dim{}
		}
		v += n.align[a] * dep.Value
	}
	if n.mountPoint[a] != 0 {
		if !own.Known {
			return Dim{}
		}
		v -= n.mountPoint[a] * own.Value
	}
	return known(v)
}

// updateSize recomputes the node's own size and reports a resize to the
// scene's event sink when an attached node's size changed.
func (n *Node) updateSize() {
	if n.computeSize() && n.scene != nil {
		n.scene.emit(EventResized, n)
	}
}

// sizeSensitive reports whether the node's resolution depends on its
// parent's geometry.
func (n *Node) sizeSensitive() bool {
	for _, a := range axes {
		if n.sizeMode[a] == SizeProportional || n.align[a] != 0 || n.mountPoint[a] != 0 {
			return true
		}
	}
	return false
}

// recomputeSubtree recomputes n, schedules its surface apply, and descends
// into size-sensitive children only. A child that is not sensitive is skipped
// together with its whole subtree, even if a deeper descendant is.
func (n *Node) recomputeSubtree() {
	n.updateSize()
	n.markApply()
	for _, child := range n.children {
		if child.sizeSensitive() {
			child.recomputeSubtree()
		}
	}
}

// sizeInputChanged runs the cascade after a setter stored a new value.
func (n *Node) sizeInputChanged(modeChanged bool) {
	n.recomputeSubtree()
	if modeChanged && n.Type == NodeTypeScene && n.scene != nil {
		n.scene.watchHost()
	}
	n.scene.flush()
}

// --- Validation ---

func (n *Node) checkSizeInput(what string, a Axis) error {
	if n.disposed {
		return fmt.Errorf("set %s of %q: %w", what, n.Name, ErrDisposed)
	}
	if !a.valid() {
		return fmt.Errorf("set %s of %q on %s: %w", what, n.Name, a, ErrInvalidSize)
	}
	return nil
}

// checkSizeValue accepts finite, non-negative values.
func (n *Node) checkSizeValue(what string, a Axis, v float64) error {
	if err := n.checkSizeInput(what, a); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("set %s %s of %q to %v: %w", a, what, n.Name, v, ErrInvalidSize)
	}
	return nil
}

// checkOffsetValue accepts any finite value.
func (n *Node) checkOffsetValue(what string, a Axis, v float64) error {
	if err := n.checkSizeInput(what, a); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("set %s %s of %q to %v: %w", a, what, n.Name, v, ErrInvalidSize)
	}
	return nil
}
