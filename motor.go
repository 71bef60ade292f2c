package motor

import "fmt"

// Axis selects one of the three size axes.
type Axis uint8

const (
	AxisX Axis = iota // width
	AxisY             // height
	AxisZ             // depth
)

// numAxes is the number of size axes carried by every node.
const numAxes = 3

// axes lists every axis in resolution order.
var axes = [numAxes]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", uint8(a))
	}
}

func (a Axis) valid() bool {
	return a < numAxes
}

// SizeMode selects how a node's size is computed on one axis.
type SizeMode uint8

const (
	SizeAbsolute     SizeMode = iota // raw absolute value, always resolvable
	SizeProportional                 // factor times the dependency's resolved size
)

func (m SizeMode) String() string {
	switch m {
	case SizeAbsolute:
		return "absolute"
	case SizeProportional:
		return "proportional"
	default:
		return fmt.Sprintf("sizemode(%d)", uint8(m))
	}
}

func (m SizeMode) valid() bool {
	return m == SizeAbsolute || m == SizeProportional
}

// Dim is a resolved value on a single axis. Known is false while the value
// cannot be resolved yet; Value is meaningless in that case and is not zero
// by contract.
type Dim struct {
	Value float64
	Known bool
}

// known returns a resolved Dim.
func known(v float64) Dim {
	return Dim{Value: v, Known: true}
}

// Size is a per-axis resolved size or offset.
type Size struct {
	X, Y, Z Dim
}

// Axis returns the Dim for the given axis. Unknown axes return a zero Dim.
func (s Size) Axis(a Axis) Dim {
	switch a {
	case AxisX:
		return s.X
	case AxisY:
		return s.Y
	case AxisZ:
		return s.Z
	default:
		return Dim{}
	}
}

// set stores d on axis a.
func (s *Size) set(a Axis, d Dim) {
	switch a {
	case AxisX:
		s.X = d
	case AxisY:
		s.Y = d
	case AxisZ:
		s.Z = d
	}
}

// Complete reports whether every axis is known.
func (s Size) Complete() bool {
	return s.X.Known && s.Y.Known && s.Z.Known
}

// NodeType distinguishes a plain node from the root node owned by a Scene.
type NodeType uint8

const (
	NodeTypePlain NodeType = iota // ordinary tree node
	NodeTypeScene                 // root node of a Scene; its own root of attachment
)

func (t NodeType) String() string {
	switch t {
	case NodeTypePlain:
		return "plain"
	case NodeTypeScene:
		return "scene"
	default:
		return fmt.Sprintf("nodetype(%d)", uint8(t))
	}
}
