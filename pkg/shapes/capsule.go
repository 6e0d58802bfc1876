package shapes

import "github.com/kjarosh/gobvh/pkg/vecmath"

// Capsule is a region query shape: the set of points within Radius of the
// segment AB.
type Capsule struct {
	A, B   vecmath.Point3
	Radius vecmath.Real
}

// NewCapsule builds a Capsule from its two segment endpoints and radius.
func NewCapsule(a, b vecmath.Point3, radius vecmath.Real) Capsule {
	return Capsule{A: a, B: b, Radius: radius}
}

// IntersectsAABB reports whether the segment AB comes within Radius of
// box, by alternately clamping a candidate point onto the segment and
// onto the box until the two agree (a clamped-parameter projection
// converges in a couple of passes for two convex sets).
func (c Capsule) IntersectsAABB(box vecmath.AABB) bool {
	point := c.A.Add(c.B).Scale(0.5)

	const passes = 4
	for i := 0; i < passes; i++ {
		boxPoint := vecmath.NewVector3(
			clampReal(point.X, box.Min.X, box.Max.X),
			clampReal(point.Y, box.Min.Y, box.Max.Y),
			clampReal(point.Z, box.Min.Z, box.Max.Z),
		)
		point = c.closestSegmentPoint(boxPoint)

		closestBoxPoint := vecmath.NewVector3(
			clampReal(point.X, box.Min.X, box.Max.X),
			clampReal(point.Y, box.Min.Y, box.Max.Y),
			clampReal(point.Z, box.Min.Z, box.Max.Z),
		)
		if i == passes-1 {
			d := closestBoxPoint.Sub(point)
			return d.LengthSquared() <= c.Radius*c.Radius
		}
	}
	return false
}

// closestSegmentPoint returns the point on segment AB nearest to p.
func (c Capsule) closestSegmentPoint(p vecmath.Point3) vecmath.Point3 {
	ab := c.B.Sub(c.A)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return c.A
	}
	t := p.Sub(c.A).Dot(ab) / lenSq
	t = clampReal(t, 0, 1)
	return c.A.Add(ab.Scale(t))
}
