package bvh

import "github.com/kjarosh/gobvh/pkg/vecmath"

// AddNode inserts shapes[shapeIndex] into tree using greedy-SAH
// insertion: it descends from the root always choosing the child whose
// AABB would grow least, splits the chosen leaf into a new internal node
// holding the old and new shapes, then walks back to the root updating
// ancestor AABBs and attempting a rotation at each one. The shape's AABB
// must be current at the time of the call.
func AddNode(tree *BVH, shapes []BHShape, shapeIndex int) {
	newAABB := shapes[shapeIndex].AABB()

	if tree.IsEmpty() {
		tree.Nodes = append(tree.Nodes, Node{Kind: NodeLeaf, Parent: RootIndex, ShapeIndex: shapeIndex})
		shapes[shapeIndex].SetNodeIndex(RootIndex)
		return
	}

	leafIdx := tree.findInsertionLeaf(newAABB)
	oldLeaf := tree.Nodes[leafIdx]
	oldShapeIdx := oldLeaf.ShapeIndex
	oldAABB := shapes[oldShapeIdx].AABB()
	parent := oldLeaf.Parent

	relocatedIdx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{Kind: NodeLeaf, Parent: leafIdx, ShapeIndex: oldShapeIdx})
	shapes[oldShapeIdx].SetNodeIndex(relocatedIdx)

	newLeafIdx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{Kind: NodeLeaf, Parent: leafIdx, ShapeIndex: shapeIndex})
	shapes[shapeIndex].SetNodeIndex(newLeafIdx)

	tree.Nodes[leafIdx] = Node{
		Kind:   NodeInternal,
		Parent: parent,
		ChildL: relocatedIdx,
		ChildR: newLeafIdx,
		AABBL:  oldAABB,
		AABBR:  newAABB,
	}

	tree.climbAndRotate(leafIdx)
}

// findInsertionLeaf descends from the root choosing, at each internal
// node, the child whose stored AABB would grow least when unioned with
// newAABB.
func (t *BVH) findInsertionLeaf(newAABB vecmath.AABB) int {
	cur := RootIndex
	for {
		node := t.Nodes[cur]
		if node.IsLeaf() {
			return cur
		}
		growL := node.AABBL.Join(newAABB).SurfaceArea() - node.AABBL.SurfaceArea()
		growR := node.AABBR.Join(newAABB).SurfaceArea() - node.AABBR.SurfaceArea()
		if growL <= growR {
			cur = node.ChildL
		} else {
			cur = node.ChildR
		}
	}
}

// RemoveNode deletes shapes[shapeIndex]'s leaf from tree, splicing its
// sibling into the grandparent's slot and reclaiming the two freed node
// slots from the tail of the array. It returns ErrNodeIndexOutOfRange or
// ErrShapeNotFound if the shape's stored node index does not reference
// its own leaf (the shape was never added, or was already removed).
func RemoveNode(tree *BVH, shapes []BHShape, shapeIndex int) error {
	if tree.IsEmpty() {
		return ErrEmptyTree
	}

	leafIdx := shapes[shapeIndex].NodeIndex()
	if leafIdx < 0 || leafIdx >= len(tree.Nodes) {
		return ErrNodeIndexOutOfRange
	}
	leaf := tree.Nodes[leafIdx]
	if !leaf.IsLeaf() || leaf.ShapeIndex != shapeIndex {
		return ErrShapeNotFound
	}

	if len(tree.Nodes) == 1 {
		tree.Nodes = nil
		return nil
	}

	parentIdx := leaf.Parent
	parent := tree.Nodes[parentIdx]

	var leafSide side
	if parent.ChildL == leafIdx {
		leafSide = sideL
	} else {
		leafSide = sideR
	}
	siblingSide := otherSide(leafSide)
	siblingIdx := parent.child(siblingSide)

	if parentIdx == RootIndex {
		siblingContent := tree.Nodes[siblingIdx]
		tree.Nodes[RootIndex] = siblingContent
		tree.Nodes[RootIndex].Parent = RootIndex
		tree.fixupOwnBacklinks(RootIndex, shapes)
		tree.removeTwo(shapes, leafIdx, siblingIdx)
		return nil
	}

	grandparentIdx := parent.Parent
	siblingAABB := parent.childAABB(siblingSide)

	gp := &tree.Nodes[grandparentIdx]
	var parentSide side
	if gp.ChildL == parentIdx {
		parentSide = sideL
	} else {
		parentSide = sideR
	}
	gp.setChild(parentSide, siblingIdx)
	gp.setChildAABBAt(parentSide, siblingAABB)
	tree.Nodes[siblingIdx].Parent = grandparentIdx

	remap := tree.removeTwo(shapes, leafIdx, parentIdx)
	tree.climbAndRotate(remapLookup(remap, grandparentIdx))
	return nil
}

// fixupOwnBacklinks updates references FROM node idx to its children (or,
// for a leaf, the shape's stored node index) after idx's content has
// changed identity — used both when a sibling's content is copied
// directly into the root slot, and as part of removeTwo's tail-swap.
func (t *BVH) fixupOwnBacklinks(idx int, shapes []BHShape) {
	n := t.Nodes[idx]
	if n.IsLeaf() {
		shapes[n.ShapeIndex].SetNodeIndex(idx)
		return
	}
	t.Nodes[n.ChildL].Parent = idx
	t.Nodes[n.ChildR].Parent = idx
}

// removeTwo deletes node slots a and b (distinct, neither RootIndex) by
// swapping each with the array's tail element and truncating. It returns
// a map from any index relocated during the process to its new index, so
// callers holding other indices into the tree can resolve them
// afterward via remapLookup.
func (t *BVH) removeTwo(shapes []BHShape, a, b int) map[int]int {
	remap := map[int]int{}
	idxs := [2]int{a, b}
	if idxs[0] < idxs[1] {
		idxs[0], idxs[1] = idxs[1], idxs[0]
	}

	for _, idx := range idxs {
		last := len(t.Nodes) - 1
		if idx == last {
			t.Nodes = t.Nodes[:last]
			continue
		}

		moved := t.Nodes[last]
		t.Nodes[idx] = moved
		remap[last] = idx
		t.Nodes = t.Nodes[:last]

		t.fixupOwnBacklinks(idx, shapes)

		movedParent := remapLookup(remap, moved.Parent)
		if movedParent != idx {
			pn := &t.Nodes[movedParent]
			if pn.ChildL == last {
				pn.ChildL = idx
			} else if pn.ChildR == last {
				pn.ChildR = idx
			}
		}
	}
	return remap
}

// remapLookup chases a chain of relocations recorded by removeTwo until
// it reaches an index that was never itself relocated.
func remapLookup(remap map[int]int, idx int) int {
	for {
		next, ok := remap[idx]
		if !ok {
			return idx
		}
		idx = next
	}
}

// internalUnion returns the union of an internal node's two stored child
// AABBs — its own subtree's bounding box.
func (t *BVH) internalUnion(idx int) vecmath.AABB {
	n := t.Nodes[idx]
	return n.AABBL.Join(n.AABBR)
}

// updateChildAABB rewrites whichever of parentIdx's two child slots holds
// childIdx to box.
func (t *BVH) updateChildAABB(parentIdx, childIdx int, box vecmath.AABB) {
	p := &t.Nodes[parentIdx]
	if p.ChildL == childIdx {
		p.AABBL = box
	} else {
		p.AABBR = box
	}
}

// climbAndRotate walks from start to the root, re-deriving each visited
// node's stored AABB on its parent from the node's own two children and
// attempting a rotation at each one. Used by both AddNode and RemoveNode
// to amortize tree-quality drift after a mutation, per spec.md's "run the
// same rotation pass as on insert" for removal.
func (t *BVH) climbAndRotate(start int) {
	cur := start
	for cur != RootIndex {
		parent := t.Nodes[cur].Parent
		t.updateChildAABB(parent, cur, t.internalUnion(cur))
		t.tryRotate(parent)
		cur = parent
	}
}

// rotationCandidate describes one of the (up to) four rotations
// considered at a node: swapping grandchild gIdx (reached via child
// xSide then grandchild-slot gSide) with uncle uIdx (the node's other
// child).
type rotationCandidate struct {
	xSide, gSide side
	xIdx, gIdx   int
	uIdx         int
	uAABB        vecmath.AABB
	gAABB        vecmath.AABB
	newXAABB     vecmath.AABB
	sum          vecmath.Real
}

// tryRotate considers swapping each grandchild of nodeIdx with nodeIdx's
// other child, applying whichever candidate most reduces the sum of
// nodeIdx's two child-AABB surface areas, provided it reduces it at all.
func (t *BVH) tryRotate(nodeIdx int) {
	node := t.Nodes[nodeIdx]
	currentSum := node.AABBL.SurfaceArea() + node.AABBR.SurfaceArea()

	var best *rotationCandidate
	sides := [2]side{sideL, sideR}

	for _, xs := range sides {
		us := otherSide(xs)
		xIdx := node.child(xs)
		xNode := t.Nodes[xIdx]
		if xNode.IsLeaf() {
			continue
		}
		uIdx := node.child(us)
		uAABB := node.childAABB(us)

		for _, gs := range sides {
			gIdx := xNode.child(gs)
			gAABB := xNode.childAABB(gs)
			keepAABB := xNode.childAABB(otherSide(gs))
			newXAABB := keepAABB.Join(uAABB)
			sum := newXAABB.SurfaceArea() + gAABB.SurfaceArea()

			if best == nil || sum < best.sum {
				best = &rotationCandidate{
					xSide: xs, gSide: gs,
					xIdx: xIdx, gIdx: gIdx, uIdx: uIdx,
					uAABB: uAABB, gAABB: gAABB, newXAABB: newXAABB, sum: sum,
				}
			}
		}
	}

	if best == nil || best.sum >= currentSum {
		return
	}

	xn := &t.Nodes[best.xIdx]
	xn.setChild(best.gSide, best.uIdx)
	xn.setChildAABBAt(best.gSide, best.uAABB)
	t.Nodes[best.uIdx].Parent = best.xIdx

	an := &t.Nodes[nodeIdx]
	uSide := otherSide(best.xSide)
	an.setChild(uSide, best.gIdx)
	an.setChildAABBAt(uSide, best.gAABB)
	t.Nodes[best.gIdx].Parent = nodeIdx

	an.setChildAABBAt(best.xSide, best.newXAABB)
}
