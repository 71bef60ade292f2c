package motor

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAttachResolvesSignalWithScene(t *testing.T) {
	s := NewScene("root")
	a := NewNode("a")
	mustNoErr(t, s.AddChild(a))

	got, ok := a.AttachmentSignal().Scene()
	if !ok || got != s {
		t.Fatalf("attachment signal = (%v, %v), want (%v, true)", got, ok, s)
	}
	if a.Scene() != s || !a.IsAttached() {
		t.Error("a should be attached to s")
	}
}

func TestAttachWaitsForRoot(t *testing.T) {
	s := NewScene("R")
	b := NewNode("B")
	c := NewNode("C")

	mustAdd(t, b, c)
	if c.AttachmentSignal().Resolved() {
		t.Fatal("C must not resolve before B joins a scene")
	}
	mustNoErr(t, s.AddChild(b))

	got, ok := c.AttachmentSignal().Scene()
	if !ok || got != s {
		t.Fatalf("C resolved with (%v, %v), want R", got, ok)
	}
}

func TestAttachPropagatesTopDown(t *testing.T) {
	sink := &recordingSink{}
	s := NewScene("R", WithEventSink(sink))
	b := NewNode("B")
	c1 := NewNode("C1")
	c2 := NewNode("C2")
	d := NewNode("D")
	mustAdd(t, b, c1)
	mustAdd(t, b, c2)
	mustAdd(t, c1, d)

	mustNoErr(t, s.AddChild(b))

	got := sink.names(EventAttached)
	want := []string{"B", "C1", "D", "C2"}
	if len(got) != len(want) {
		t.Fatalf("attached = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("attached = %v, want %v", got, want)
		}
	}
}

func TestAddThenRemoveIssuesFreshSignals(t *testing.T) {
	for _, underScene := range []bool{false, true} {
		var p *Node
		if underScene {
			p = NewScene("R").Node()
		} else {
			p = NewNode("P")
		}
		c := NewNode("C")
		mustAdd(t, p, c)
		oldAttached, oldVisible := c.AttachmentSignal(), c.VisibilitySignal()
		oldEpoch := c.Epoch()

		mustRemove(t, p, c)

		if c.IsAttached() {
			t.Errorf("underScene=%v: C should be detached", underScene)
		}
		if c.AttachmentSignal() == oldAttached || c.VisibilitySignal() == oldVisible {
			t.Errorf("underScene=%v: signals should be replaced", underScene)
		}
		if c.AttachmentSignal() == c.VisibilitySignal() {
			t.Errorf("underScene=%v: signals should be distinct", underScene)
		}
		if c.AttachmentSignal().Resolved() || c.VisibilitySignal().Resolved() {
			t.Errorf("underScene=%v: fresh signals should be unresolved", underScene)
		}
		if c.Epoch() != oldEpoch+1 || c.AttachmentSignal().Epoch() != c.Epoch() {
			t.Errorf("underScene=%v: epoch = %d (signal %d), want %d",
				underScene, c.Epoch(), c.AttachmentSignal().Epoch(), oldEpoch+1)
		}
		if oldAttached.Resolved() != underScene {
			t.Errorf("underScene=%v: old attachment resolved = %v", underScene, oldAttached.Resolved())
		}
	}
}

func TestDetachResetsWholeSubtree(t *testing.T) {
	s := NewScene("R")
	a := NewNode("A")
	b := NewNode("B")
	c := NewNode("C")
	mustAdd(t, a, b)
	mustAdd(t, b, c)
	mustNoErr(t, s.AddChild(a))

	old := c.AttachmentSignal()
	mustNoErr(t, s.RemoveChild(a))

	for _, n := range []*Node{a, b, c} {
		if n.scene != nil || n.IsAttached() {
			t.Errorf("%q should be detached", n.Name)
		}
		if n.AttachmentSignal().Resolved() {
			t.Errorf("%q should have an unresolved attachment signal", n.Name)
		}
	}
	if c.AttachmentSignal() == old {
		t.Error("descendant signals should be replaced")
	}
	if b.Parent() != a || c.Parent() != b {
		t.Error("detaching must keep the subtree's own structure")
	}
}

func TestReattachStartsNewEpoch(t *testing.T) {
	s1 := NewScene("S1")
	s2 := NewScene("S2")
	a := NewNode("A")
	mustNoErr(t, s1.AddChild(a))
	first := a.AttachmentSignal()

	mustNoErr(t, s2.AddChild(a))
	second := a.AttachmentSignal()
	if first == second {
		t.Fatal("reparenting should start a new epoch")
	}
	if got, _ := first.Scene(); got != s1 {
		t.Error("first epoch should stay resolved with S1")
	}
	if got, _ := second.Scene(); got != s2 {
		t.Error("second epoch should resolve with S2")
	}
}

func TestSceneDiscoveryCachesOnVisitedNodes(t *testing.T) {
	s := NewScene("R")
	a := NewNode("A")
	b := NewNode("B")
	mustNoErr(t, s.AddChild(a))
	mustAdd(t, a, b)

	// Drop the cache on b; discovery should restore it from a.
	b.scene = nil
	if b.Scene() != s {
		t.Fatal("discovery should find R through A")
	}
	if b.scene != s {
		t.Error("discovery should cache the scene on b")
	}
}

func TestMountResolvesVisibility(t *testing.T) {
	sink := &recordingSink{}
	s := NewScene("R", WithEventSink(sink))
	a := NewNode("A")
	b := NewNode("B")
	mustNoErr(t, s.AddChild(a))
	mustAdd(t, a, b)

	if a.VisibilitySignal().Resolved() || a.IsVisible() {
		t.Fatal("A must not be visible before mount")
	}
	mustNoErr(t, s.Mount(NewHost(100, 100)))

	for _, n := range []*Node{s.Node(), a, b} {
		if got, ok := n.VisibilitySignal().Scene(); !ok || got != s {
			t.Errorf("%q visibility = (%v, %v), want R", n.Name, got, ok)
		}
		if !n.IsVisible() {
			t.Errorf("%q should be visible", n.Name)
		}
	}

	late := NewNode("late")
	mustAdd(t, b, late)
	if !late.VisibilitySignal().Resolved() {
		t.Error("nodes attached to a mounted scene should become visible immediately")
	}
	if len(sink.names(EventVisible)) != 4 {
		t.Errorf("visible events = %v, want 4", sink.names(EventVisible))
	}
}

func TestUnmountKeepsDescendantSignals(t *testing.T) {
	s, _ := mountedScene(t, 100, 100)
	a := NewNode("A")
	mustNoErr(t, s.AddChild(a))
	rootSignal := s.Node().VisibilitySignal()

	s.Unmount()

	if !a.VisibilitySignal().Resolved() {
		t.Error("descendant visibility signals are one-shot and stay resolved")
	}
	if a.IsVisible() {
		t.Error("IsVisible should report the live state")
	}
	if s.Node().VisibilitySignal() == rootSignal || s.Node().VisibilitySignal().Resolved() {
		t.Error("unmount should replace the scene's own visibility signal")
	}

	b := NewNode("B")
	mustNoErr(t, s.AddChild(b))
	if b.VisibilitySignal().Resolved() {
		t.Error("nodes attached while unmounted must wait for the next mount")
	}
	mustNoErr(t, s.Mount(NewHost(10, 10)))
	if !b.VisibilitySignal().Resolved() || !s.Node().VisibilitySignal().Resolved() {
		t.Error("remount should resolve the new signals")
	}
}

func TestWaitForVisible(t *testing.T) {
	s := NewScene("R")
	a := NewNode("A")
	mustNoErr(t, s.AddChild(a))

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- a.WaitForVisible(ctx)
	}()

	mustNoErr(t, s.Mount(NewHost(10, 10)))
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WaitForVisible: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForVisible did not return after mount")
	}
}

func TestWaitForVisibleScene(t *testing.T) {
	s := NewScene("R")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Node().WaitForVisible(ctx); err != nil {
		t.Errorf("scene root WaitForVisible = %v, want nil", err)
	}
}

func TestSupersededSignalNeverResolves(t *testing.T) {
	s := NewScene("R")
	a := NewNode("A")
	mustNoErr(t, s.AddChild(a))
	stale := a.VisibilitySignal()
	mustNoErr(t, s.RemoveChild(a))
	mustNoErr(t, s.Mount(NewHost(10, 10)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := stale.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("stale Wait = %v, want DeadlineExceeded", err)
	}
}

func TestDetachedEventNamesOldScene(t *testing.T) {
	sink := &recordingSink{}
	s := NewScene("R", WithEventSink(sink))
	a := NewNode("A")
	mustNoErr(t, s.AddChild(a))
	mustNoErr(t, s.RemoveChild(a))

	var found bool
	for _, e := range sink.events {
		if e.Type == EventDetached && e.NodeName == "A" {
			found = true
			if e.Scene != "R" {
				t.Errorf("detached event scene = %q, want R", e.Scene)
			}
		}
	}
	if !found {
		t.Error("no detached event for A")
	}
}

// --- Sinks that mutate the tree ---

func TestSinkRemovingNodeDuringAttach(t *testing.T) {
	var seen []string
	var b, c1, c2 *Node
	sink := sinkFunc(func(e LifecycleEvent) {
		seen = append(seen, e.Type.String()+":"+e.NodeName)
		if e.Type == EventAttached && e.NodeName == "C1" {
			if err := b.RemoveChild(c1); err != nil {
				t.Errorf("RemoveChild from sink: %v", err)
			}
		}
	})
	s := NewScene("R", WithEventSink(sink))
	b, c1, c2 = NewNode("B"), NewNode("C1"), NewNode("C2")
	mustAdd(t, b, c1)
	mustAdd(t, b, c2)

	mustNoErr(t, s.AddChild(b))

	if !c2.IsAttached() || !c2.AttachmentSignal().Resolved() {
		t.Error("C2 should be attached")
	}
	if c1.IsAttached() || c1.AttachmentSignal().Resolved() || c1.Parent() != nil {
		t.Error("C1 should be detached with a fresh signal")
	}
	if b.NumChildren() != 1 || b.ChildAt(0) != c2 {
		t.Errorf("B children = %v, want [C2]", b.Children())
	}
	want := []string{"attached:B", "attached:C1", "attached:C2", "detached:C1"}
	if len(seen) != len(want) {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("events = %v, want %v", seen, want)
		}
	}
}

func TestSinkSeesFinishedPropagation(t *testing.T) {
	var c *Node
	checked := false
	sink := sinkFunc(func(e LifecycleEvent) {
		if e.Type == EventAttached && e.NodeName == "B" {
			checked = true
			if !c.AttachmentSignal().Resolved() {
				t.Error("descendants should be attached before events are delivered")
			}
		}
	})
	s := NewScene("R", WithEventSink(sink))
	b := NewNode("B")
	c = NewNode("C")
	mustAdd(t, b, c)
	mustNoErr(t, s.AddChild(b))
	if !checked {
		t.Error("sink never saw B attach")
	}
}

func TestSinkAddingNodesDuringMount(t *testing.T) {
	extra := NewNode("extra")
	var s *Scene
	sink := sinkFunc(func(e LifecycleEvent) {
		if e.Type == EventVisible && e.NodeName == "A" {
			if err := s.AddChild(extra); err != nil {
				t.Errorf("AddChild from sink: %v", err)
			}
		}
	})
	s = NewScene("R", WithEventSink(sink))
	a, b := NewNode("A"), NewNode("B")
	mustNoErr(t, s.Node().AddChildren(a, b))

	mustNoErr(t, s.Mount(NewHost(10, 10)))
	for _, n := range []*Node{a, b, extra} {
		if !n.VisibilitySignal().Resolved() {
			t.Errorf("%q should be visible", n.Name)
		}
	}
	if s.Node().NumChildren() != 3 {
		t.Errorf("root children = %d, want 3", s.Node().NumChildren())
	}
}

func TestSinkDisposingDuringResize(t *testing.T) {
	var a, b *Node
	sink := sinkFunc(func(e LifecycleEvent) {
		if e.Type == EventResized && e.NodeName == "A" && e.Size.X.Value == 400 {
			b.Dispose()
		}
	})
	s, host := mountedScene(t, 800, 600, WithEventSink(sink))
	a, b = NewNode("A"), NewNode("B")
	mustNoErr(t, a.SetSizeMode(AxisX, SizeProportional))
	mustNoErr(t, b.SetSizeMode(AxisX, SizeProportional))
	mustNoErr(t, s.Node().AddChildren(a, b))

	host.Resize(400, 600)
	if !b.IsDisposed() || b.Parent() != nil {
		t.Error("B should be disposed by the sink")
	}
	assertDim(t, "A.x", a.ResolvedSize().X, 400)
	if s.Node().NumChildren() != 1 {
		t.Errorf("root children = %d, want 1", s.Node().NumChildren())
	}
}
