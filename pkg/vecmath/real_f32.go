//go:build bvh32

package vecmath

// Real is the floating-point type used throughout this module. Building
// with "go build -tags bvh32" selects single precision, matching the
// upstream crate's non-f64 feature set.
type Real = float32

// Epsilon is a minimal floating value used as a lower bound for
// determinant and distance comparisons.
const Epsilon Real = 0.00001
