package bvh

import (
	"sort"

	"github.com/kjarosh/gobvh/pkg/vecmath"
)

// smallInputThreshold is the partition size at or below which every
// candidate split is evaluated exactly instead of through bucketing.
const smallInputThreshold = 5

// bucketCount is the number of equal-width centroid buckets (B in the
// SAH-bucket literature) used to approximate the best split in O(n).
const bucketCount = 6

// Build constructs a BVH over shapes using a top-down SAH-bucket split.
// It does not reorder shapes; it writes each shape's assigned leaf index
// via SetNodeIndex. Build(nil) and Build of an empty slice both return
// an empty tree.
func Build(shapes []BHShape) *BVH {
	n := len(shapes)
	if n == 0 {
		return &BVH{}
	}

	b := &builder{shapes: shapes, nodes: make([]Node, 0, 2*n-1)}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	b.build(indices, RootIndex)
	return &BVH{Nodes: b.nodes}
}

type builder struct {
	shapes []BHShape
	nodes  []Node
}

// build recursively partitions indices, appending nodes to b.nodes, and
// returns the index of the node it created for this subtree. parent is
// the index of the node that will hold this subtree (RootIndex for the
// top-level call, matching RootIndex's self-referential root marker).
func (b *builder) build(indices []int, parent int) int {
	if len(indices) == 1 {
		idx := len(b.nodes)
		shapeIdx := indices[0]
		b.nodes = append(b.nodes, Node{Kind: NodeLeaf, Parent: parent, ShapeIndex: shapeIdx})
		b.shapes[shapeIdx].SetNodeIndex(idx)
		return idx
	}

	shapesBB := vecmath.EmptyAABB()
	centroidBB := vecmath.EmptyAABB()
	for _, i := range indices {
		box := b.shapes[i].AABB()
		shapesBB = shapesBB.Join(box)
		centroidBB = centroidBB.Grow(box.Center())
	}

	axis := centroidBB.LargestAxis()
	left, right := b.partition(indices, shapesBB, centroidBB, axis)

	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Kind: NodeInternal, Parent: parent})

	leftBB := unionAABB(b.shapes, left)
	rightBB := unionAABB(b.shapes, right)

	childL := b.build(left, nodeIdx)
	childR := b.build(right, nodeIdx)

	b.nodes[nodeIdx].ChildL = childL
	b.nodes[nodeIdx].ChildR = childR
	b.nodes[nodeIdx].AABBL = leftBB
	b.nodes[nodeIdx].AABBR = rightBB

	return nodeIdx
}

// partition chooses a split of indices along axis, falling back to a
// simple median split when the centroid bounds have no extent (every
// shape shares the same centroid) or when SAH/bucket evaluation would
// otherwise produce a degenerate (empty) side.
func (b *builder) partition(indices []int, shapesBB, centroidBB vecmath.AABB, axis int) ([]int, []int) {
	if centroidBB.Size().Component(axis) <= 0 {
		return medianSplit(indices)
	}

	var left, right []int
	if len(indices) <= smallInputThreshold {
		left, right = b.exactSplit(indices, axis)
	} else {
		left, right = b.bucketSplit(indices, shapesBB, centroidBB, axis)
	}

	if len(left) == 0 || len(right) == 0 {
		return medianSplit(indices)
	}
	return left, right
}

// medianSplit halves the index list without regard to geometry; used
// when every candidate's centroid coincides on the split axis, or when the
// SAH split would leave one side empty.
func medianSplit(indices []int) ([]int, []int) {
	mid := len(indices) / 2
	return indices[:mid], indices[mid:]
}

// exactSplit evaluates every possible partition point of indices sorted
// by centroid along axis and returns the one minimizing SAH cost.
func (b *builder) exactSplit(indices []int, axis int) ([]int, []int) {
	sorted := append([]int(nil), indices...)
	sort.Slice(sorted, func(i, j int) bool {
		return b.shapes[sorted[i]].AABB().Center().Component(axis) <
			b.shapes[sorted[j]].AABB().Center().Component(axis)
	})

	n := len(sorted)
	prefix := make([]vecmath.AABB, n+1)
	suffix := make([]vecmath.AABB, n+1)
	prefix[0] = vecmath.EmptyAABB()
	suffix[n] = vecmath.EmptyAABB()
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i].Join(b.shapes[sorted[i]].AABB())
	}
	for i := n - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1].Join(b.shapes[sorted[i]].AABB())
	}

	bestSplit := n / 2
	bestCost := vecmath.InfPositive()
	for i := 1; i < n; i++ {
		cost := sahCost(prefix[i], i, suffix[i], n-i)
		if costBetter(cost, i, n, bestCost, bestSplit) {
			bestCost = cost
			bestSplit = i
		}
	}

	return sorted[:bestSplit], sorted[bestSplit:]
}

type bucket struct {
	count int
	box   vecmath.AABB
}

// bucketSplit distributes indices into bucketCount equal-width buckets
// along axis by centroid relative position, then sweeps the B-1 interior
// boundaries via prefix/suffix unions to find the minimum-cost split.
func (b *builder) bucketSplit(indices []int, shapesBB, centroidBB vecmath.AABB, axis int) ([]int, []int) {
	buckets := make([]bucket, bucketCount)
	for i := range buckets {
		buckets[i].box = vecmath.EmptyAABB()
	}

	bucketOf := func(i int) int {
		rel := centroidBB.RelativePosition(b.shapes[i].AABB().Center()).Component(axis)
		idx := int(rel * vecmath.Real(bucketCount))
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		return idx
	}

	assigned := make([]int, len(indices))
	for pos, i := range indices {
		bi := bucketOf(i)
		assigned[pos] = bi
		buckets[bi].count++
		buckets[bi].box = buckets[bi].box.Join(b.shapes[i].AABB())
	}

	prefixCount := make([]int, bucketCount+1)
	suffixCount := make([]int, bucketCount+1)
	prefixBB := make([]vecmath.AABB, bucketCount+1)
	suffixBB := make([]vecmath.AABB, bucketCount+1)
	prefixBB[0] = vecmath.EmptyAABB()
	suffixBB[bucketCount] = vecmath.EmptyAABB()
	for i := 0; i < bucketCount; i++ {
		prefixCount[i+1] = prefixCount[i] + buckets[i].count
		prefixBB[i+1] = prefixBB[i].Join(buckets[i].box)
	}
	for i := bucketCount - 1; i >= 0; i-- {
		suffixCount[i] = suffixCount[i+1] + buckets[i].count
		suffixBB[i] = suffixBB[i+1].Join(buckets[i].box)
	}

	bestBoundary := bucketCount / 2
	bestCost := vecmath.InfPositive()
	for boundary := 1; boundary < bucketCount; boundary++ {
		nLeft, nRight := prefixCount[boundary], suffixCount[boundary]
		if nLeft == 0 || nRight == 0 {
			continue
		}
		cost := sahCost(prefixBB[boundary], nLeft, suffixBB[boundary], nRight)
		if costBetter(cost, nLeft, nLeft+nRight, bestCost, prefixCount[bestBoundary]) {
			bestCost = cost
			bestBoundary = boundary
		}
	}

	left := make([]int, 0, prefixCount[bestBoundary])
	right := make([]int, 0, len(indices)-prefixCount[bestBoundary])
	for pos, i := range indices {
		if assigned[pos] < bestBoundary {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func sahCost(leftBB vecmath.AABB, nLeft int, rightBB vecmath.AABB, nRight int) vecmath.Real {
	return leftBB.SurfaceArea()*vecmath.Real(nLeft) + rightBB.SurfaceArea()*vecmath.Real(nRight)
}

// costBetter reports whether candidate cost improves on best, breaking
// exact ties in favor of the split whose side sizes are closer to even.
func costBetter(cost vecmath.Real, nLeft, total int, best vecmath.Real, bestLeft int) bool {
	if cost != best {
		return cost < best
	}
	return absInt(nLeft-total/2) < absInt(bestLeft-total/2)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func unionAABB(shapes []BHShape, indices []int) vecmath.AABB {
	box := vecmath.EmptyAABB()
	for _, i := range indices {
		box = box.Join(shapes[i].AABB())
	}
	return box
}
