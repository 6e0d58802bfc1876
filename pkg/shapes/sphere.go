package shapes

import "github.com/kjarosh/gobvh/pkg/vecmath"

// Sphere is a region query shape: a center point and a radius.
type Sphere struct {
	Center vecmath.Point3
	Radius vecmath.Real
}

// NewSphere builds a Sphere from its center and radius.
func NewSphere(center vecmath.Point3, radius vecmath.Real) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// IntersectsAABB reports whether the closest point of box to the sphere's
// center lies within Radius, by clamping the center into the box on each
// axis and comparing squared distance.
func (s Sphere) IntersectsAABB(box vecmath.AABB) bool {
	closest := vecmath.NewVector3(
		clampReal(s.Center.X, box.Min.X, box.Max.X),
		clampReal(s.Center.Y, box.Min.Y, box.Max.Y),
		clampReal(s.Center.Z, box.Min.Z, box.Max.Z),
	)
	d := closest.Sub(s.Center)
	return d.LengthSquared() <= s.Radius*s.Radius
}

func clampReal(v, lo, hi vecmath.Real) vecmath.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
