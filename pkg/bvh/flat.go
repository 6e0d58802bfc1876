package bvh

import "github.com/kjarosh/gobvh/pkg/vecmath"

// FlatNodeLeafSentinel marks a FlatNode as internal (it carries no shape).
const FlatNodeLeafSentinel = -1

// flattenExitSentinel marks "no next node" for the last node visited in
// the DFS — there is nowhere left to go on a miss.
const flattenExitSentinel = -1

// FlatNode is one entry of a DFS-linearized BVH: an AABB plus the index
// to jump to when a query hits it (EntryIndex) and the index to jump to
// when it misses (ExitIndex). A caller with no call stack can traverse
// the whole tree by repeatedly testing AABB and following one pointer or
// the other, starting at index 0 and stopping once the followed index
// falls outside [0, len(nodes)) — the sentinel flattenExitSentinel (-1)
// for the final node's ExitIndex, or one past the end for its EntryIndex
// when that node is the last leaf emitted. ShapeIndex is
// FlatNodeLeafSentinel for internal nodes.
type FlatNode struct {
	AABB       vecmath.AABB
	EntryIndex int
	ExitIndex  int
	ShapeIndex int
}

// Flatten produces the DFS-linearized form of tree. It does not modify
// tree or any shape's stored node index; the result is read-only derived
// data suitable for a shader-style iterative consumer (spec.md §4.6,
// out of scope beyond producing this slice — see spec.md §6).
func (t *BVH) Flatten(shapes []BHShape) []FlatNode {
	if t.IsEmpty() {
		return nil
	}

	sizes := make([]int, len(t.Nodes))
	t.subtreeSizes(RootIndex, sizes)

	out := make([]FlatNode, 0, len(t.Nodes))
	flattenWalk(t, shapes, sizes, RootIndex, flattenExitSentinel, &out)
	return out
}

// subtreeSizes fills sizes[idx] with the node-array entry count of the
// subtree rooted at idx (1 for a leaf, 1+left+right for an internal
// node), for every node reachable from idx. Computed once up front so
// flattenWalk can locate each right child's eventual flat index without
// re-walking its left sibling.
func (t *BVH) subtreeSizes(idx int, sizes []int) int {
	n := t.Nodes[idx]
	if n.IsLeaf() {
		sizes[idx] = 1
		return 1
	}
	size := 1 + t.subtreeSizes(n.ChildL, sizes) + t.subtreeSizes(n.ChildR, sizes)
	sizes[idx] = size
	return size
}

// flattenWalk appends the pre-order DFS of the subtree rooted at nodeIdx
// to out. exit is the flat index to jump to when a query misses this
// node's own AABB, supplied by the caller (the parent, or
// flattenExitSentinel at the true root).
func flattenWalk(t *BVH, shapes []BHShape, sizes []int, nodeIdx, exit int, out *[]FlatNode) {
	node := t.Nodes[nodeIdx]
	flatIdx := len(*out)

	if node.IsLeaf() {
		shape := shapes[node.ShapeIndex]
		*out = append(*out, FlatNode{
			AABB:       shape.AABB(),
			EntryIndex: flatIdx + 1,
			ExitIndex:  exit,
			ShapeIndex: node.ShapeIndex,
		})
		return
	}

	*out = append(*out, FlatNode{
		AABB:       node.AABBL.Join(node.AABBR),
		EntryIndex: flatIdx + 1,
		ExitIndex:  exit,
		ShapeIndex: FlatNodeLeafSentinel,
	})

	rightFlatIdx := flatIdx + 1 + sizes[node.ChildL]
	flattenWalk(t, shapes, sizes, node.ChildL, rightFlatIdx, out)
	flattenWalk(t, shapes, sizes, node.ChildR, exit, out)
}
