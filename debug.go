package motor

// debugMaxTreeDepth is the depth above which debug mode warns.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the deepest node of n's subtree sits more
// than debugMaxTreeDepth levels below the scene root.
func (s *Scene) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	depth += subtreeHeight(n) - 1
	if depth > debugMaxTreeDepth {
		s.logger.Warn("tree depth exceeds threshold",
			"scene", s.node.Name, "node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which debug mode warns.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		s.logger.Warn("child count exceeds threshold",
			"scene", s.node.Name, "node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// subtreeHeight returns the number of levels in n's subtree, counting n.
func subtreeHeight(n *Node) int {
	h := 0
	for _, c := range n.children {
		if ch := subtreeHeight(c); ch > h {
			h = ch
		}
	}
	return h + 1
}
