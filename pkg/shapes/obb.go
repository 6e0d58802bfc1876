package shapes

import "github.com/kjarosh/gobvh/pkg/vecmath"

// OBB is a region query shape: an oriented bounding box given by its
// center, the half-extent along each of its local axes, and the local
// axes themselves (assumed orthonormal).
type OBB struct {
	Center      vecmath.Point3
	HalfExtents vecmath.Vector3
	AxisX       vecmath.Vector3
	AxisY       vecmath.Vector3
	AxisZ       vecmath.Vector3
}

// NewOBB builds an OBB from its center, half-extents along its local
// axes, and an orthonormal axis frame.
func NewOBB(center vecmath.Point3, halfExtents, axisX, axisY, axisZ vecmath.Vector3) OBB {
	return OBB{Center: center, HalfExtents: halfExtents, AxisX: axisX, AxisY: axisY, AxisZ: axisZ}
}

var aabbAxes = [3]vecmath.Vector3{
	vecmath.NewVector3(1, 0, 0),
	vecmath.NewVector3(0, 1, 0),
	vecmath.NewVector3(0, 0, 1),
}

// IntersectsAABB runs the separating axis test between the OBB and box:
// the 3 AABB axes, the 3 OBB axes, and their 9 pairwise cross products. A
// separating axis on any of the 15 candidates proves no overlap; if none
// separates them, the shapes intersect.
func (o OBB) IntersectsAABB(box vecmath.AABB) bool {
	boxHalf := box.Size().Scale(0.5)
	boxCenter := box.Center()
	t := o.Center.Sub(boxCenter)

	obbAxes := [3]vecmath.Vector3{o.AxisX, o.AxisY, o.AxisZ}
	obbHalf := [3]vecmath.Real{o.HalfExtents.X, o.HalfExtents.Y, o.HalfExtents.Z}
	boxHalfArr := [3]vecmath.Real{boxHalf.X, boxHalf.Y, boxHalf.Z}

	for _, axis := range aabbAxes {
		if separatedOnAxis(axis, t, boxHalfArr, aabbAxes, obbHalf, obbAxes) {
			return false
		}
	}
	for _, axis := range obbAxes {
		if separatedOnAxis(axis, t, boxHalfArr, aabbAxes, obbHalf, obbAxes) {
			return false
		}
	}
	for _, a := range aabbAxes {
		for _, b := range obbAxes {
			axis := a.Cross(b)
			if axis.LengthSquared() < vecmath.Epsilon {
				continue // near-parallel axes contribute no new separating direction
			}
			if separatedOnAxis(axis, t, boxHalfArr, aabbAxes, obbHalf, obbAxes) {
				return false
			}
		}
	}
	return true
}

// separatedOnAxis reports whether axis separates the AABB (half-extents
// boxHalf along aabbAxes) from the OBB (half-extents obbHalf along
// obbAxes), given the center-to-center offset t.
func separatedOnAxis(
	axis, t vecmath.Vector3,
	boxHalf [3]vecmath.Real,
	aabbAxes [3]vecmath.Vector3,
	obbHalf [3]vecmath.Real,
	obbAxes [3]vecmath.Vector3,
) bool {
	distance := vecmath.AbsReal(t.Dot(axis))

	var boxRadius vecmath.Real
	for i, a := range aabbAxes {
		boxRadius += boxHalf[i] * vecmath.AbsReal(a.Dot(axis))
	}

	var obbRadius vecmath.Real
	for i, a := range obbAxes {
		obbRadius += obbHalf[i] * vecmath.AbsReal(a.Dot(axis))
	}

	return distance > boxRadius+obbRadius
}
