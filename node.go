package motor

import "fmt"

// nodeIDCounter is a plain counter (no atomic, the tree is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct carries
// the tree, lifecycle, and sizing state of both plain nodes and scene roots;
// Type tells them apart.
//
// Parent, children, and the cached scene are only changed through the tree
// methods so lifecycle and size caches stay consistent.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Metadata
	UserData any

	// Hierarchy
	parent   *Node
	children []*Node

	// Lifecycle (lifecycle.go)
	scene    *Scene
	epoch    uint64
	attached *Signal
	visible  *Signal

	// Sizing inputs (size.go)
	sizeMode         [numAxes]SizeMode
	absoluteSize     [numAxes]float64
	proportionalSize [numAxes]float64
	align            [numAxes]float64
	mountPoint       [numAxes]float64

	// Sizing results
	resolved Size
	offset   Size

	// Renderer handle, created by the owning scene's renderer.
	surface      Surface
	surfaceOwner Renderer

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.attached = newSignal(0)
	n.visible = newSignal(0)
	for i := range n.proportionalSize {
		n.proportionalSize[i] = 1
	}
	n.computeSize()
}

// NewNode creates a detached plain node. All axes start absolute with size 0
// and a proportional factor of 1.
func NewNode(name string) *Node {
	n := &Node{Name: name, Type: NodeTypePlain}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a different parent, it is removed from that parent
// first, ending its current epoch. When this node is attached to a scene the
// child's subtree is attached top-down.
func (n *Node) AddChild(child *Node) error {
	if err := n.checkAdd(child); err != nil {
		return err
	}
	old := child.scene
	n.insertChild(child, len(n.children))
	flushEvents(old, n.scene)
	return nil
}

// AddChildAt inserts child at the given index.
// Same reparenting and lifecycle behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) error {
	if err := n.checkAdd(child); err != nil {
		return err
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("add %q to %q at %d: %w", child.Name, n.Name, index, ErrIndexOutOfRange)
	}
	old := child.scene
	n.insertChild(child, index)
	flushEvents(old, n.scene)
	return nil
}

// AddChildren appends children in order. Every child is validated before
// any of them is added, so on error the tree is unchanged.
func (n *Node) AddChildren(children ...*Node) error {
	seen := make(map[*Node]struct{}, len(children))
	for _, child := range children {
		if err := n.checkAdd(child); err != nil {
			return err
		}
		if _, dup := seen[child]; dup {
			return fmt.Errorf("add %q to %q: listed twice: %w", child.Name, n.Name, ErrAlreadyChild)
		}
		seen[child] = struct{}{}
	}
	scenes := make([]*Scene, 0, len(children)+1)
	for _, child := range children {
		scenes = append(scenes, child.scene)
		n.insertChild(child, len(n.children))
	}
	flushEvents(append(scenes, n.scene)...)
	return nil
}

// RemoveChild detaches child from this node. The child and its subtree
// start a new epoch with fresh, unresolved signals.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil {
		return fmt.Errorf("remove child from %q: %w", n.Name, ErrNilNode)
	}
	if child.parent != n {
		return fmt.Errorf("remove %q from %q: %w", child.Name, n.Name, ErrNotAChild)
	}
	old := child.scene
	n.detachChild(child)
	flushEvents(old)
	return nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("remove child %d from %q: %w", index, n.Name, ErrIndexOutOfRange)
	}
	child := n.children[index]
	old := child.scene
	n.detachChild(child)
	flushEvents(old)
	return child, nil
}

// RemoveChildNodes detaches the given children. Every node is validated
// before any is removed, so on error the tree is unchanged.
func (n *Node) RemoveChildNodes(children ...*Node) error {
	seen := make(map[*Node]struct{}, len(children))
	for _, child := range children {
		if child == nil {
			return fmt.Errorf("remove child from %q: %w", n.Name, ErrNilNode)
		}
		_, dup := seen[child]
		if dup || child.parent != n {
			return fmt.Errorf("remove %q from %q: %w", child.Name, n.Name, ErrNotAChild)
		}
		seen[child] = struct{}{}
	}
	old := n.Scene()
	for _, child := range children {
		n.detachChild(child)
	}
	flushEvents(old)
	return nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node in order.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	old := n.Scene()
	for len(n.children) > 0 {
		n.detachChild(n.children[0])
	}
	flushEvents(old)
}

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list. Mutating it has no effect on
// the tree.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	old := n.scene
	if n.parent != nil {
		n.parent.detachChild(n)
	}
	n.dispose()
	flushEvents(old)
}

func (n *Node) dispose() {
	for len(n.children) > 0 {
		child := n.children[0]
		n.detachChild(child)
		child.dispose()
	}
	n.disposed = true
	n.children = nil
	n.surface = nil
	n.surfaceOwner = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// checkAdd validates an AddChild call before any state changes.
func (n *Node) checkAdd(child *Node) error {
	if child == nil {
		return fmt.Errorf("add child to %q: %w", n.Name, ErrNilNode)
	}
	if n.disposed {
		return fmt.Errorf("add %q to %q: parent: %w", child.Name, n.Name, ErrDisposed)
	}
	if child.disposed {
		return fmt.Errorf("add %q to %q: child: %w", child.Name, n.Name, ErrDisposed)
	}
	if child.Type == NodeTypeScene {
		return fmt.Errorf("add %q to %q: %w", child.Name, n.Name, ErrSceneChild)
	}
	if child.parent == n {
		return fmt.Errorf("add %q to %q: %w", child.Name, n.Name, ErrAlreadyChild)
	}
	if isAncestor(child, n) {
		return fmt.Errorf("add %q to %q: %w", child.Name, n.Name, ErrCycle)
	}
	return nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// insertChild links child under n at index and runs lifecycle propagation.
// The caller has validated the call.
func (n *Node) insertChild(child *Node, index int) {
	if child.parent != nil {
		child.parent.detachChild(child)
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childAdded(child)
}

// detachChild unlinks child from n and ends the epoch of its subtree.
// The caller has already checked that child.parent == n.
func (n *Node) detachChild(child *Node) {
	old := child.scene
	if old != nil && old.renderer != nil && child.surface != nil && child.surfaceOwner == old.renderer {
		old.renderer.Detach(child.surface)
	}
	n.removeChildByPtr(child)
	child.parent = nil
	child.detachFrom(old)
}

// childAdded runs lifecycle propagation after child has been linked under n.
func (n *Node) childAdded(child *Node) {
	s := n.Scene()
	if s == nil {
		child.recomputeSubtree()
		return
	}
	child.attachTo(s)
	if s.debug {
		s.debugCheckTreeDepth(child)
		s.debugCheckChildCount(n)
	}
}
