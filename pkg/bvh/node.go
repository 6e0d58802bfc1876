package bvh

import "github.com/kjarosh/gobvh/pkg/vecmath"

// NodeKind tags which variant a Node holds.
type NodeKind uint8

const (
	// NodeLeaf holds a single primitive reference.
	NodeLeaf NodeKind = iota
	// NodeInternal holds two children and their AABBs.
	NodeInternal
)

// RootIndex is the reserved array position of the tree root. A node at
// RootIndex whose Parent also equals RootIndex is the root; every other
// node's Parent points to the internal node that owns it.
const RootIndex = 0

// Node is a tagged union of the BVH's two node variants. Internal nodes
// hold each child's AABB on themselves, not on the child: traversal
// decides which subtree(s) to enter using data already local to the
// current node, rather than following a pointer first.
type Node struct {
	Kind   NodeKind
	Parent int

	// Valid when Kind == NodeLeaf.
	ShapeIndex int

	// Valid when Kind == NodeInternal.
	ChildL, ChildR int
	AABBL, AABBR   vecmath.AABB
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool { return n.Kind == NodeLeaf }

// side names one of an internal node's two child slots, used by rotation
// and removal code that must treat left/right symmetrically.
type side int

const (
	sideL side = iota
	sideR
)

func otherSide(s side) side {
	if s == sideL {
		return sideR
	}
	return sideL
}

func (n Node) child(s side) int {
	if s == sideL {
		return n.ChildL
	}
	return n.ChildR
}

func (n Node) childAABB(s side) vecmath.AABB {
	if s == sideL {
		return n.AABBL
	}
	return n.AABBR
}

func (n *Node) setChild(s side, idx int) {
	if s == sideL {
		n.ChildL = idx
	} else {
		n.ChildR = idx
	}
}

func (n *Node) setChildAABBAt(s side, box vecmath.AABB) {
	if s == sideL {
		n.AABBL = box
	} else {
		n.AABBR = box
	}
}

// BVH is a binary bounding volume hierarchy stored as a densely packed
// node array; index RootIndex is the root when the tree is non-empty.
type BVH struct {
	Nodes []Node
}

// IsEmpty reports whether the tree holds zero shapes.
func (t *BVH) IsEmpty() bool { return len(t.Nodes) == 0 }

// Len returns the number of nodes in the tree (2n-1 for n shapes, 0 for
// an empty tree).
func (t *BVH) Len() int { return len(t.Nodes) }
