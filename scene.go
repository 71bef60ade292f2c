package motor

import (
	"fmt"
	"log/slog"
)

// Scene is a root of attachment. It owns a root node of type NodeTypeScene,
// the renderer and scheduler used by every node attached under it, and the
// binding to the host that supplies its size once mounted.
type Scene struct {
	node      *Node
	renderer  Renderer
	scheduler Scheduler
	frames    *FrameScheduler // non-nil when the scene owns its scheduler
	events    EventSink
	pending   []LifecycleEvent
	flushing  bool
	logger    *slog.Logger
	debug     bool

	// Host binding
	mounted   bool
	host      HostSizeSource
	unwatch   func()
	hostW     float64
	hostH     float64
	hostKnown bool
}

// SceneOption is a functional option for configuring a Scene.
type SceneOption func(*Scene)

// WithRenderer sets the renderer that creates and sizes the scene's surfaces.
// Without one the scene resolves sizes but produces no visual output.
func WithRenderer(r Renderer) SceneOption {
	return func(s *Scene) {
		s.renderer = r
	}
}

// WithScheduler replaces the default FrameScheduler. The caller is then
// responsible for running its cycles; Scene.Update no longer does.
func WithScheduler(sched Scheduler) SceneOption {
	return func(s *Scene) {
		if sched != nil {
			s.scheduler = sched
			s.frames = nil
		}
	}
}

// WithEventSink sets the optional lifecycle event sink.
func WithEventSink(sink EventSink) SceneOption {
	return func(s *Scene) {
		s.events = sink
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebug enables debug mode; see SetDebugMode.
func WithDebug(enabled bool) SceneOption {
	return func(s *Scene) {
		s.debug = enabled
	}
}

// NewScene creates an unmounted scene. Its root node is proportionally sized
// on X and Y (factor 1, filling the host) and absolute 0 on Z.
func NewScene(name string, opts ...SceneOption) *Scene {
	frames := NewFrameScheduler()
	s := &Scene{
		scheduler: frames,
		frames:    frames,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	root := &Node{Name: name, Type: NodeTypeScene}
	nodeDefaults(root)
	root.sizeMode[AxisX] = SizeProportional
	root.sizeMode[AxisY] = SizeProportional
	root.scene = s
	root.attached.resolve(s)
	s.node = root
	if s.renderer != nil {
		root.surface = s.renderer.CreateSurface(root)
		root.surfaceOwner = s.renderer
	}
	root.computeSize()
	return s
}

// Node returns the scene's root node.
func (s *Scene) Node() *Node {
	return s.node
}

// Name returns the name of the scene's root node.
func (s *Scene) Name() string {
	return s.node.Name
}

// AddChild adds child under the scene's root node.
func (s *Scene) AddChild(child *Node) error {
	return s.node.AddChild(child)
}

// RemoveChild removes child from the scene's root node.
func (s *Scene) RemoveChild(child *Node) error {
	return s.node.RemoveChild(child)
}

// Renderer returns the scene's renderer, or nil.
func (s *Scene) Renderer() Renderer {
	return s.renderer
}

// Scheduler returns the scheduler surface applies are queued on.
func (s *Scene) Scheduler() Scheduler {
	return s.scheduler
}

// SetEventSink sets the optional lifecycle event sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.events = sink
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged as nodes are attached under the scene.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// IsMounted reports whether the scene is mounted onto a host.
func (s *Scene) IsMounted() bool {
	return s.mounted
}

// HostSize returns the last size reported by the host. ok is false until the
// host reports a size after Mount, and again after Unmount.
func (s *Scene) HostSize() (width, height float64, ok bool) {
	return s.hostW, s.hostH, s.hostKnown
}

// Mount binds the scene to host and makes it visible: the scene's visibility
// signal and those of every attached node resolve, and every node is
// scheduled for a surface apply. Mounting onto the host the scene is already
// mounted on is a no-op; mounting onto a different host rebinds. A host that
// cannot report a size (nil, a typed nil pointer, or a PollingHost without a
// measure func) returns ErrMountTarget and leaves the scene as it was.
func (s *Scene) Mount(host HostSizeSource) error {
	if !usableHost(host) {
		return fmt.Errorf("mount scene %q: %w", s.node.Name, ErrMountTarget)
	}
	if s.mounted && s.host == host {
		return nil
	}
	if s.mounted {
		s.stopWatching()
	}
	s.host = host
	s.mounted = true
	s.logger.Debug("scene mounted", "scene", s.node.Name)
	s.emit(EventMounted, s.node)
	s.watchHost()
	s.node.revealTo(s)
	s.flush()
	return nil
}

// usableHost rejects nil hosts, including typed nil pointers of the host
// types in this package and a PollingHost without a measure func.
func usableHost(host HostSizeSource) bool {
	switch h := host.(type) {
	case nil:
		return false
	case *Host:
		return h != nil
	case *PollingHost:
		return h != nil && h.measure != nil
	default:
		return true
	}
}

// Unmount unbinds the scene from its host. The scene's own visibility signal
// is replaced so new waiters block until the next Mount; signals already
// resolved on descendants stay resolved. The host size is forgotten, so
// proportional axes that depend on it become unknown. No-op when not mounted.
func (s *Scene) Unmount() {
	if !s.mounted {
		return
	}
	s.stopWatching()
	s.mounted = false
	s.host = nil
	s.node.visible = newSignal(s.node.epoch)
	s.logger.Debug("scene unmounted", "scene", s.node.Name)
	s.emit(EventUnmounted, s.node)
	if s.hostKnown {
		s.hostKnown = false
		s.node.recomputeSubtree()
	}
	s.flush()
}

// Update polls a polling host and runs one cycle of the scene's own
// FrameScheduler. Call it once per frame.
func (s *Scene) Update() {
	if s.mounted && s.unwatch != nil {
		if p, ok := s.host.(poller); ok {
			p.Poll()
		}
	}
	if s.frames != nil {
		s.frames.RunCycle()
	}
}

// hostDim returns the host size on axis a. Hosts are flat, so Z is never
// known.
func (s *Scene) hostDim(a Axis) Dim {
	if !s.hostKnown {
		return Dim{}
	}
	switch a {
	case AxisX:
		return known(s.hostW)
	case AxisY:
		return known(s.hostH)
	default:
		return Dim{}
	}
}

// watchHost subscribes to the host while the scene is mounted and any axis of
// its root is proportional, and unsubscribes otherwise.
func (s *Scene) watchHost() {
	if !s.mounted {
		return
	}
	if !s.tracksHost() {
		s.stopWatching()
		return
	}
	if s.unwatch != nil {
		return
	}
	s.unwatch = s.host.OnSizeChange(s.hostChanged)
	w, h := s.host.CurrentSize()
	s.hostResized(w, h)
}

// tracksHost reports whether the root's size depends on the host.
func (s *Scene) tracksHost() bool {
	for _, a := range axes {
		if s.node.sizeMode[a] == SizeProportional {
			return true
		}
	}
	return false
}

func (s *Scene) stopWatching() {
	if s.unwatch == nil {
		return
	}
	s.unwatch()
	s.unwatch = nil
}

// hostChanged is the host listener. Events raised by the cascade are
// delivered before it returns.
func (s *Scene) hostChanged(w, h float64) {
	s.hostResized(w, h)
	s.flush()
}

// hostResized stores a new host size and cascades it. Reports of an
// unchanged size are ignored.
func (s *Scene) hostResized(w, h float64) {
	if s.hostKnown && s.hostW == w && s.hostH == h {
		return
	}
	s.hostW, s.hostH, s.hostKnown = w, h, true
	s.logger.Debug("host resized", "scene", s.node.Name, "width", w, "height", h)
	s.node.recomputeSubtree()
}
