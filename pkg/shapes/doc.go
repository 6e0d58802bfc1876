// Package shapes provides the concrete query volumes tested against AABBs
// during tree queries: Ray (with Ray/Triangle intersection), and the
// Sphere/Capsule/OBB region shapes. None of them carries a node index, so
// none is a BVH leaf primitive by itself.
package shapes
