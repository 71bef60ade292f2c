package motor

// Surface is an opaque handle to the visual output of one node, created and
// interpreted only by the Renderer that produced it.
type Surface any

// Renderer creates, links, and sizes the visual output of nodes. The core
// calls it in response to tree mutation and size resolution; how a surface
// is drawn is up to the implementation.
type Renderer interface {
	// CreateSurface returns a new surface for n.
	CreateSurface(n *Node) Surface
	// Attach links child under parent. Linking a child that is already
	// under parent must be a no-op.
	Attach(parent, child Surface)
	// Detach unlinks child from its parent surface.
	Detach(child Surface)
	// ApplyResolvedSize applies a node's resolved size to its surface.
	ApplyResolvedSize(s Surface, size Size)
}

// OffsetApplier is implemented by renderers that also position surfaces
// within their parent using the node's resolved offset.
type OffsetApplier interface {
	ApplyResolvedOffset(s Surface, offset Size)
}

// Surface returns the node's renderer surface, or nil if none was created.
func (n *Node) Surface() Surface {
	return n.surface
}

// linkSurface makes sure n has a surface owned by the scene's renderer and
// links it under its parent's surface.
func (s *Scene) linkSurface(n *Node) {
	if s.renderer == nil {
		return
	}
	if n.surface == nil || n.surfaceOwner != s.renderer {
		n.surface = s.renderer.CreateSurface(n)
		n.surfaceOwner = s.renderer
	}
	if p := n.parent; p != nil && p.surface != nil {
		s.renderer.Attach(p.surface, n.surface)
	}
}

// markApply schedules a surface apply for n. Nodes that are not yet visible
// are applied when they attach to a mounted scene or when their scene is
// mounted.
func (n *Node) markApply() {
	s := n.scene
	if s == nil || !s.mounted {
		return
	}
	s.scheduler.ScheduleApply(n, n.applySurface)
}

// applySurface pushes the node's resolved geometry to its surface.
func (n *Node) applySurface() {
	s := n.scene
	if s == nil || s.renderer == nil || n.surface == nil {
		return
	}
	s.renderer.ApplyResolvedSize(n.surface, n.resolved)
	if oa, ok := s.renderer.(OffsetApplier); ok {
		oa.ApplyResolvedOffset(n.surface, n.offset)
	}
}
