package motor

import "testing"

// recordingRenderer is a Renderer that records every call.
type recordingRenderer struct {
	created  []*Node
	attached [][2]*Node
	detached []*Node
	applied  map[*Node]int
	sizes    map[*Node]Size
}

type recordedSurface struct {
	node   *Node
	parent *recordedSurface
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{applied: make(map[*Node]int), sizes: make(map[*Node]Size)}
}

func (r *recordingRenderer) CreateSurface(n *Node) Surface {
	r.created = append(r.created, n)
	return &recordedSurface{node: n}
}

func (r *recordingRenderer) Attach(parent, child Surface) {
	p, c := parent.(*recordedSurface), child.(*recordedSurface)
	if c.parent == p {
		return
	}
	c.parent = p
	r.attached = append(r.attached, [2]*Node{p.node, c.node})
}

func (r *recordingRenderer) Detach(child Surface) {
	c := child.(*recordedSurface)
	c.parent = nil
	r.detached = append(r.detached, c.node)
}

func (r *recordingRenderer) ApplyResolvedSize(s Surface, size Size) {
	n := s.(*recordedSurface).node
	r.applied[n]++
	r.sizes[n] = size
}

func (r *recordingRenderer) totalApplies() int {
	total := 0
	for _, c := range r.applied {
		total += c
	}
	return total
}

func (r *recordingRenderer) resetApplies() {
	r.applied = make(map[*Node]int)
}

// recordingSink is an EventSink that keeps every event.
type recordingSink struct {
	events []LifecycleEvent
}

func (s *recordingSink) EmitEvent(e LifecycleEvent) {
	s.events = append(s.events, e)
}

func (s *recordingSink) names(t EventType) []string {
	var out []string
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e.NodeName)
		}
	}
	return out
}

// sinkFunc adapts a function to EventSink.
type sinkFunc func(LifecycleEvent)

func (f sinkFunc) EmitEvent(e LifecycleEvent) { f(e) }

// pushHost is a HostSizeSource that notifies on every Push, even when the
// size did not change.
type pushHost struct {
	w, h      float64
	listeners sizeListeners
}

func (p *pushHost) CurrentSize() (float64, float64) { return p.w, p.h }

func (p *pushHost) OnSizeChange(fn func(w, h float64)) func() { return p.listeners.add(fn) }

func (p *pushHost) Push(w, h float64) {
	p.w, p.h = w, h
	p.listeners.notify(w, h)
}

func mustAdd(t *testing.T, parent, child *Node) {
	t.Helper()
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild(%q, %q): %v", parent.Name, child.Name, err)
	}
}

func mustRemove(t *testing.T, parent, child *Node) {
	t.Helper()
	if err := parent.RemoveChild(child); err != nil {
		t.Fatalf("RemoveChild(%q, %q): %v", parent.Name, child.Name, err)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// mountedScene creates a scene mounted onto a Host of the given size.
func mountedScene(t *testing.T, w, h float64, opts ...SceneOption) (*Scene, *Host) {
	t.Helper()
	s := NewScene("root", opts...)
	host := NewHost(w, h)
	if err := s.Mount(host); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return s, host
}

func assertDim(t *testing.T, what string, d Dim, want float64) {
	t.Helper()
	if !d.Known {
		t.Errorf("%s unknown, want %v", what, want)
		return
	}
	if d.Value != want {
		t.Errorf("%s = %v, want %v", what, d.Value, want)
	}
}

func assertUnknown(t *testing.T, what string, d Dim) {
	t.Helper()
	if d.Known {
		t.Errorf("%s = %v, want unknown", what, d.Value)
	}
}
