//go:build !bvh32

package vecmath

// Real is the floating-point type used throughout this module. Building
// without the bvh32 tag selects double precision, matching the upstream
// crate's default "f64" feature.
type Real = float64

// Epsilon is a minimal floating value used as a lower bound for
// determinant and distance comparisons.
const Epsilon Real = 0.00001
