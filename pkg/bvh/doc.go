// Package bvh implements a binary bounding volume hierarchy over a
// caller-owned shape array: SAH-bucket top-down build, ray/volume
// traversal behind a single intersection-test capability, incremental
// insertion and removal with rotation-based rebalancing, and DFS
// flattening for iterative shader-style traversal.
//
// The tree is stored as an index array rather than a pointer graph: each
// node's children and parent are array positions, not pointers, which
// makes the structure's self-reference (parent links, and the shape's
// back-reference to its leaf) representable without unsafe aliasing.
package bvh
