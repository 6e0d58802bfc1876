package bvh

// traverseStackSoftCap is the initial capacity of the TraverseIterator's
// stack; a balanced tree would need roughly 2^60 leaves to exceed it, and
// a deeper tree simply grows the stack past it.
const traverseStackSoftCap = 60

// Traverse returns every shape in shapes whose leaf lies under a subtree
// query intersects, left before right. A tree consisting of a single
// leaf root is handled directly, since the root has no parent-held AABB
// to test against.
func (t *BVH) Traverse(query IntersectionTester, shapes []BHShape) []BHShape {
	if t.IsEmpty() {
		return nil
	}

	root := t.Nodes[RootIndex]
	if root.IsLeaf() {
		shape := shapes[root.ShapeIndex]
		if query.IntersectsAABB(shape.AABB()) {
			return []BHShape{shape}
		}
		return nil
	}

	var out []BHShape
	t.traverseInternal(RootIndex, query, shapes, &out)
	return out
}

func (t *BVH) traverseInternal(nodeIdx int, query IntersectionTester, shapes []BHShape, out *[]BHShape) {
	node := t.Nodes[nodeIdx]

	if query.IntersectsAABB(node.AABBL) {
		t.visitChild(node.ChildL, query, shapes, out)
	}
	if query.IntersectsAABB(node.AABBR) {
		t.visitChild(node.ChildR, query, shapes, out)
	}
}

func (t *BVH) visitChild(childIdx int, query IntersectionTester, shapes []BHShape, out *[]BHShape) {
	child := t.Nodes[childIdx]
	if child.IsLeaf() {
		*out = append(*out, shapes[child.ShapeIndex])
		return
	}
	t.traverseInternal(childIdx, query, shapes, out)
}

// traverseFrame is one stack entry of a TraverseIterator: the internal
// node being visited, and which of its two children to try next.
type traverseFrame struct {
	node int
	tried int // 0: neither child tried yet, 1: left tried, 2: both tried
}

// TraverseIterator yields matching shapes one at a time under caller
// control, using an explicit stack instead of recursion so traversal can
// be suspended and resumed between calls to Next.
type TraverseIterator struct {
	tree   *BVH
	shapes []BHShape
	query  IntersectionTester

	stack []traverseFrame

	singleLeaf     bool
	singleLeafDone bool
	singleShape    int
}

// NewTraverseIterator builds an iterator over tree's shapes matching
// query. The returned iterator is invalid once tree is mutated.
func NewTraverseIterator(tree *BVH, shapes []BHShape, query IntersectionTester) *TraverseIterator {
	it := &TraverseIterator{tree: tree, shapes: shapes, query: query}
	if tree.IsEmpty() {
		return it
	}

	root := tree.Nodes[RootIndex]
	if root.IsLeaf() {
		it.singleLeaf = true
		it.singleShape = root.ShapeIndex
		return it
	}

	it.stack = make([]traverseFrame, 0, traverseStackSoftCap)
	it.stack = append(it.stack, traverseFrame{node: RootIndex})
	return it
}

// Next returns the next matching shape and true, or (nil, false) once
// traversal is exhausted.
func (it *TraverseIterator) Next() (BHShape, bool) {
	if it.singleLeaf {
		if it.singleLeafDone {
			return nil, false
		}
		it.singleLeafDone = true
		shape := it.shapes[it.singleShape]
		if it.query.IntersectsAABB(shape.AABB()) {
			return shape, true
		}
		return nil, false
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		node := it.tree.Nodes[top.node]

		if top.tried == 0 {
			top.tried = 1
			if it.query.IntersectsAABB(node.AABBL) {
				if shape, ok := it.descend(node.ChildL); ok {
					return shape, true
				}
				continue
			}
		}
		if top.tried == 1 {
			top.tried = 2
			if it.query.IntersectsAABB(node.AABBR) {
				if shape, ok := it.descend(node.ChildR); ok {
					return shape, true
				}
				continue
			}
		}
		if top.tried == 2 {
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
	return nil, false
}

// descend either yields a leaf immediately or pushes an internal child
// onto the stack so the Next loop continues from there.
func (it *TraverseIterator) descend(childIdx int) (BHShape, bool) {
	child := it.tree.Nodes[childIdx]
	if child.IsLeaf() {
		return it.shapes[child.ShapeIndex], true
	}
	it.stack = append(it.stack, traverseFrame{node: childIdx})
	return nil, false
}
