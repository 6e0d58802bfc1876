package shapes

import "github.com/kjarosh/gobvh/pkg/vecmath"

// Ray is a half-line defined by an origin and a normalized direction, with
// the per-axis reciprocal direction and sign bits cached once at
// construction for use by the AABB slab tests below.
type Ray struct {
	Origin    vecmath.Point3
	Direction vecmath.Vector3

	invDirection vecmath.Vector3
	signX        int
	signY        int
	signZ        int
}

// NewRay builds a Ray from an origin and direction. The direction is
// normalized; sign/reciprocal caches are derived from the normalized form.
// A zero direction is not rejected: it stays zero, and the cached
// reciprocal direction then has infinite components.
func NewRay(origin vecmath.Point3, direction vecmath.Vector3) Ray {
	direction = direction.Normalize()
	r := Ray{
		Origin:       origin,
		Direction:    direction,
		invDirection: direction.Reciprocal(),
	}
	r.signX = signBit(direction.X)
	r.signY = signBit(direction.Y)
	r.signZ = signBit(direction.Z)
	return r
}

func signBit(v vecmath.Real) int {
	if v < 0 {
		return 1
	}
	return 0
}

// At returns the point the ray has reached after traveling dist along its
// direction.
func (r Ray) At(dist vecmath.Real) vecmath.Point3 {
	return r.Origin.Add(r.Direction.Scale(dist))
}

// FaceNormal orients an outward-facing normal to oppose the ray direction
// and reports whether the hit was on the back face.
func (r Ray) FaceNormal(outward vecmath.Vector3) (vecmath.Vector3, bool) {
	backFace := r.Direction.Dot(outward) >= 0
	if backFace {
		return outward.Negate(), true
	}
	return outward, false
}

// IntersectsAABB tests ray/AABB intersection using the sign-table slab
// test from Williams et al., "An Efficient and Robust Ray-Box Intersection
// Algorithm" (the variant cached sign_x/y/z avoid branching on direction
// sign per test). It answers only "does it hit ahead of the origin", not
// where.
func (r Ray) IntersectsAABB(box vecmath.AABB) bool {
	rayMin := (box.Corner(r.signX).X - r.Origin.X) * r.invDirection.X
	rayMax := (box.Corner(1-r.signX).X - r.Origin.X) * r.invDirection.X

	yMin := (box.Corner(r.signY).Y - r.Origin.Y) * r.invDirection.Y
	yMax := (box.Corner(1-r.signY).Y - r.Origin.Y) * r.invDirection.Y

	if rayMin > yMax || yMin > rayMax {
		return false
	}
	if yMin > rayMin {
		rayMin = yMin
	}
	if yMax < rayMax {
		rayMax = yMax
	}

	zMin := (box.Corner(r.signZ).Z - r.Origin.Z) * r.invDirection.Z
	zMax := (box.Corner(1-r.signZ).Z - r.Origin.Z) * r.invDirection.Z

	if rayMin > zMax || zMin > rayMax {
		return false
	}
	if zMax < rayMax {
		rayMax = zMax
	}

	return rayMax > 0
}

// IntersectsAABBNaive computes the same result as IntersectsAABB via the
// textbook per-axis min/max slab formulation, without the precomputed
// sign table. Kept to cross-check IntersectsAABB and IntersectsAABBBranchless
// in tests: all three must agree on every ray/AABB pair.
func (r Ray) IntersectsAABBNaive(box vecmath.AABB) bool {
	hitMinX := (box.Min.X - r.Origin.X) * r.invDirection.X
	hitMaxX := (box.Max.X - r.Origin.X) * r.invDirection.X
	hitMinY := (box.Min.Y - r.Origin.Y) * r.invDirection.Y
	hitMaxY := (box.Max.Y - r.Origin.Y) * r.invDirection.Y
	hitMinZ := (box.Min.Z - r.Origin.Z) * r.invDirection.Z
	hitMaxZ := (box.Max.Z - r.Origin.Z) * r.invDirection.Z

	xEntry, xExit := minMax(hitMinX, hitMaxX)
	yEntry, yExit := minMax(hitMinY, hitMaxY)
	zEntry, zExit := minMax(hitMinZ, hitMaxZ)

	latestEntry := max3(xEntry, yEntry, zEntry)
	earliestExit := min3(xExit, yExit, zExit)

	return latestEntry < earliestExit && earliestExit > 0
}

// IntersectsAABBBranchless implements the branchless slab test from
// https://tavianator.com/2011/ray_box.html, using only min/max instead of
// conditional branches on each axis.
func (r Ray) IntersectsAABBBranchless(box vecmath.AABB) bool {
	tx1 := (box.Min.X - r.Origin.X) * r.invDirection.X
	tx2 := (box.Max.X - r.Origin.X) * r.invDirection.X

	tmin := vecmath.MinReal(tx1, tx2)
	tmax := vecmath.MaxReal(tx1, tx2)

	ty1 := (box.Min.Y - r.Origin.Y) * r.invDirection.Y
	ty2 := (box.Max.Y - r.Origin.Y) * r.invDirection.Y

	tmin = vecmath.MaxReal(tmin, vecmath.MinReal(ty1, ty2))
	tmax = vecmath.MinReal(tmax, vecmath.MaxReal(ty1, ty2))

	tz1 := (box.Min.Z - r.Origin.Z) * r.invDirection.Z
	tz2 := (box.Max.Z - r.Origin.Z) * r.invDirection.Z

	tmin = vecmath.MaxReal(tmin, vecmath.MinReal(tz1, tz2))
	tmax = vecmath.MinReal(tmax, vecmath.MaxReal(tz1, tz2))

	return tmax >= tmin && tmax >= 0
}

// IntersectsAABBDist returns the squared distance from the ray origin to
// the near slab intersection, or false if the ray misses the box (or the
// box lies entirely behind the origin).
func (r Ray) IntersectsAABBDist(box vecmath.AABB) (vecmath.Real, bool) {
	xMin := (box.Corner(r.signX).X - r.Origin.X) * r.invDirection.X
	xMax := (box.Corner(1-r.signX).X - r.Origin.X) * r.invDirection.X
	rayMin, rayMax := xMin, xMax

	yMin := (box.Corner(r.signY).Y - r.Origin.Y) * r.invDirection.Y
	yMax := (box.Corner(1-r.signY).Y - r.Origin.Y) * r.invDirection.Y
	if rayMin > yMax || yMin > rayMax {
		return 0, false
	}
	if yMin > rayMin {
		rayMin = yMin
	}
	if yMax < rayMax {
		rayMax = yMax
	}

	zMin := (box.Corner(r.signZ).Z - r.Origin.Z) * r.invDirection.Z
	zMax := (box.Corner(1-r.signZ).Z - r.Origin.Z) * r.invDirection.Z
	if rayMin > zMax || zMin > rayMax {
		return 0, false
	}
	if zMin > rayMin {
		rayMin = zMin
	}
	if zMax < rayMax {
		rayMax = zMax
	}

	if rayMax < 0 {
		return 0, false
	}
	return rayMin * rayMin, true
}

// Intersection is the result of a ray/triangle test. Distance is
// +Inf when the ray misses the triangle or hits its back face (when
// backface culling is in effect).
type Intersection struct {
	Distance vecmath.Real
	U, V     vecmath.Real
	Normal   vecmath.Vector3
	BackFace bool
}

func missIntersection(u, v vecmath.Real) Intersection {
	return Intersection{Distance: vecmath.InfPositive(), U: u, V: v}
}

// IntersectsTriangle implements the Möller-Trumbore ray/triangle
// intersection algorithm with backface culling: triangles whose normal
// points away from the ray are treated as misses rather than back-face
// hits, matching the upstream crate's determinant sign convention.
func (r Ray) IntersectsTriangle(a, b, c vecmath.Point3) Intersection {
	aToB := b.Sub(a)
	aToC := c.Sub(a)

	uVec := r.Direction.Cross(aToC)
	det := aToB.Dot(uVec)

	if det < vecmath.Epsilon {
		return missIntersection(0, 0)
	}

	invDet := 1 / det
	aToOrigin := r.Origin.Sub(a)

	u := aToOrigin.Dot(uVec) * invDet
	if u < 0 || u > 1 {
		return missIntersection(u, 0)
	}

	vVec := aToOrigin.Cross(aToB)
	v := r.Direction.Dot(vVec) * invDet
	if v < 0 || u+v > 1 {
		return missIntersection(u, v)
	}

	dist := aToC.Dot(vVec) * invDet
	if dist <= vecmath.Epsilon {
		return missIntersection(u, v)
	}

	normal := vecmath.NewVector3(
		aToB.Y*aToC.Z-aToB.Z*aToC.Y,
		aToB.Z*aToC.X-aToB.X*aToC.Z,
		aToB.X*aToC.Y-aToB.Y*aToC.X,
	)
	return Intersection{Distance: dist, U: u, V: v, Normal: normal}
}

func minMax(a, b vecmath.Real) (vecmath.Real, vecmath.Real) {
	return vecmath.MinReal(a, b), vecmath.MaxReal(a, b)
}

func max3(a, b, c vecmath.Real) vecmath.Real {
	return vecmath.MaxReal(a, vecmath.MaxReal(b, c))
}

func min3(a, b, c vecmath.Real) vecmath.Real {
	return vecmath.MinReal(a, vecmath.MinReal(b, c))
}
