package bvh

import "github.com/kjarosh/gobvh/pkg/vecmath"

// Bounded is satisfied by anything that can report its own axis-aligned
// bounding box.
type Bounded interface {
	AABB() vecmath.AABB
}

// BHShape is the capability set a primitive must satisfy to live in a
// BVH's shape array: a bounding box, plus a back-reference to the node
// array slot holding its leaf. The back-reference is what lets
// RemoveNode locate a shape's leaf in O(1) rather than searching the
// tree.
type BHShape interface {
	Bounded
	NodeIndex() int
	SetNodeIndex(int)
}

// IntersectionTester is the single capability traversal requires of a
// query object. It deliberately knows nothing else about the query —
// Ray, Sphere, Capsule, OBB and AABB itself all implement it
// independently, with no shared base type.
type IntersectionTester interface {
	IntersectsAABB(vecmath.AABB) bool
}
