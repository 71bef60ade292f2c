package motor

import "context"

// Scene returns the Scene this node is attached to, or nil when the node is
// not under a scene root. The first lookup walks up the parent chain; the
// result is cached on every node visited.
func (n *Node) Scene() *Scene {
	if n.scene != nil {
		return n.scene
	}
	var found *Scene
	for p := n.parent; p != nil; p = p.parent {
		if p.scene != nil {
			found = p.scene
			break
		}
	}
	if found == nil {
		return nil
	}
	for p := n; p != nil && p.scene == nil; p = p.parent {
		p.scene = found
	}
	return found
}

// IsAttached reports whether the node currently belongs to a scene.
func (n *Node) IsAttached() bool {
	return n.Scene() != nil
}

// IsVisible reports whether the node's scene is currently mounted.
func (n *Node) IsVisible() bool {
	s := n.Scene()
	return s != nil && s.mounted
}

// Epoch returns the node's current epoch. It increases every time the node
// is detached from its tree.
func (n *Node) Epoch() uint64 {
	return n.epoch
}

// AttachmentSignal returns the signal for the current epoch that resolves
// once the node joins a scene. A new signal is issued on every detachment.
func (n *Node) AttachmentSignal() *Signal {
	return n.attached
}

// VisibilitySignal returns the signal for the current epoch that resolves
// once the node's scene is mounted. A new signal is issued on every
// detachment, and for a scene root on every unmount.
func (n *Node) VisibilitySignal() *Signal {
	return n.visible
}

// WaitForVisible blocks until the node is attached to a mounted scene or ctx
// is done. A scene root's visibility is controlled directly through Mount,
// so for a scene root it returns immediately.
func (n *Node) WaitForVisible(ctx context.Context) error {
	if n.Type == NodeTypeScene {
		return nil
	}
	_, err := n.visible.Wait(ctx)
	return err
}

// attachTo attaches n and its subtree to s, top-down in child order. Every
// visited node has its attachment signal resolved before any of its
// descendants.
func (n *Node) attachTo(s *Scene) {
	n.scene = s
	s.linkSurface(n)
	if n.attached.resolve(s) {
		s.emit(EventAttached, n)
	}
	n.updateSize()
	if s.mounted && n.visible.resolve(s) {
		s.emit(EventVisible, n)
	}
	n.markApply()
	for _, child := range n.children {
		child.attachTo(s)
	}
}

// detachFrom ends the current epoch of n and its subtree. old is the scene
// the subtree belonged to, nil when it was already detached.
func (n *Node) detachFrom(old *Scene) {
	n.scene = nil
	n.epoch++
	n.attached = newSignal(n.epoch)
	n.visible = newSignal(n.epoch)
	n.computeSize()
	if old != nil {
		old.emit(EventDetached, n)
	}
	for _, child := range n.children {
		child.detachFrom(old)
	}
}

// revealTo resolves visibility for n and its subtree after s was mounted,
// and schedules a surface apply for every node.
func (n *Node) revealTo(s *Scene) {
	if n.visible.resolve(s) {
		s.emit(EventVisible, n)
	}
	n.markApply()
	for _, child := range n.children {
		child.revealTo(s)
	}
}
