package motor

import "errors"

// Tree errors
var (
	// ErrNilNode indicates that a nil node was passed to a tree operation.
	ErrNilNode = errors.New("nil node")

	// ErrAlreadyChild indicates that the child is already parented by this node.
	ErrAlreadyChild = errors.New("node is already a child of this parent")

	// ErrNotAChild indicates that the child is not parented by this node.
	ErrNotAChild = errors.New("node is not a child of this parent")

	// ErrCycle indicates that the operation would make a node its own ancestor.
	ErrCycle = errors.New("adding child would create a cycle")

	// ErrSceneChild indicates an attempt to parent a scene root under another node.
	ErrSceneChild = errors.New("a scene root cannot be added as a child")

	// ErrIndexOutOfRange indicates a child index outside the children list.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrDisposed indicates that a disposed node was used in a tree operation.
	ErrDisposed = errors.New("node is disposed")
)

// Sizing errors
var (
	// ErrInvalidSize indicates a size mode, axis, or value outside its domain.
	ErrInvalidSize = errors.New("invalid size value")
)

// Scene errors
var (
	// ErrMountTarget indicates that a scene was mounted onto an unusable host.
	ErrMountTarget = errors.New("invalid mount target")
)
