// Package motor is a retained-mode scene-graph runtime.
//
// Motor maintains a tree of nodes, tracks when each node joins a scene and
// when that scene becomes visible, and cascades per-axis size resolution
// through the tree. Drawing is left to a [Renderer]; [ImageRenderer] is a
// reference implementation on [Ebitengine] offscreen images.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window, mounts the
// scene onto it, and drives the frame loop:
//
//	scene := motor.NewScene("main", motor.WithRenderer(motor.NewImageRenderer()))
//	panel := motor.NewNode("panel")
//	panel.SetSize(motor.AxisX, motor.SizeProportional, 0.5)
//	panel.SetSize(motor.AxisY, motor.SizeAbsolute, 120)
//	scene.AddChild(panel)
//	motor.Run(scene, motor.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// For full control, mount the scene onto any [HostSizeSource] and call
// [Scene.Update] once per frame.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree under the root node of a
// [Scene]. A node has at most one parent; adding it to another parent
// removes it from the first. Tree operations return errors instead of
// corrupting the tree: [ErrAlreadyChild], [ErrNotAChild], [ErrCycle].
//
// # Lifecycle
//
// A node is detached until a chain of parents leads to a scene root, at which
// point the node and its whole subtree are attached top-down and each node's
// [Node.AttachmentSignal] resolves. Once the scene is mounted with
// [Scene.Mount], every attached node's [Node.VisibilitySignal] resolves.
// Removing a node starts a new epoch for its subtree: the old signals are
// abandoned and fresh unresolved ones are issued.
//
//	sig := node.AttachmentSignal()
//	go func() {
//		scene, err := sig.Wait(ctx)
//		// ...
//	}()
//
// # Sizing
//
// Each axis is either [SizeAbsolute] (a raw value) or [SizeProportional] (a
// factor of the parent's resolved size, or of the host size for a scene
// root). Proportional axes stay unknown ([Dim.Known] is false) until the
// dependency is known. Changing a size input recomputes the node and
// descends into children whose size or offset depends on it; surface applies
// are queued on the scene's [Scheduler] and run by [Scene.Update].
//
// Size inputs can be animated with [TweenAbsoluteSize] and
// [TweenProportionalSize] (via [gween]). Lifecycle events can be forwarded
// to an [EventSink], for example to a [Donburi] world with motor/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package motor
