// Package vecmath provides the 3-vector and axis-aligned bounding box
// primitives shared by every other package in this module: componentwise
// vector algebra and the AABB union/grow/surface-area operations the BVH
// build and traversal algorithms are built on.
//
// Precision (float32 vs float64) is a compile-time choice, not a runtime
// one: build without tags for float64 (the default, see real_f64.go) or
// with "-tags bvh32" for float32 (real_f32.go). This mirrors the Cargo
// feature flag the upstream implementation used to pick between f32 and
// f64 via a single swapped type alias.
package vecmath
