package bvh_test

import (
	"golang.org/x/exp/rand"

	"github.com/kjarosh/gobvh/pkg/bvh"
	"github.com/kjarosh/gobvh/pkg/vecmath"
)

// testShape is the minimal bvh.BHShape used across this package's tests:
// an AABB plus the back-reference slot the tree owns.
type testShape struct {
	box  vecmath.AABB
	node int
}

func newTestShape(box vecmath.AABB) *testShape { return &testShape{box: box, node: -1} }

func (s *testShape) AABB() vecmath.AABB { return s.box }
func (s *testShape) NodeIndex() int     { return s.node }
func (s *testShape) SetNodeIndex(i int) { s.node = i }

func shapesOf(boxes ...vecmath.AABB) []bvh.BHShape {
	out := make([]bvh.BHShape, len(boxes))
	for i, b := range boxes {
		out[i] = newTestShape(b)
	}
	return out
}

// bruteForce returns the subset of shapes whose AABB intersects query,
// tested directly with no tree involved — the oracle traversal
// completeness and flattening-equivalence checks compare the BVH's
// result against.
func bruteForce(shapes []bvh.BHShape, query bvh.IntersectionTester) map[bvh.BHShape]bool {
	out := map[bvh.BHShape]bool{}
	for _, s := range shapes {
		if query.IntersectsAABB(s.AABB()) {
			out[s] = true
		}
	}
	return out
}

func asSet(shapes []bvh.BHShape) map[bvh.BHShape]bool {
	out := map[bvh.BHShape]bool{}
	for _, s := range shapes {
		out[s] = true
	}
	return out
}

// unitAABBAt returns a unit cube centered at the given coordinates.
func unitAABBAt(x, y, z vecmath.Real) vecmath.AABB {
	c := vecmath.NewVector3(x, y, z)
	half := vecmath.NewVector3(0.5, 0.5, 0.5)
	return vecmath.NewAABB(c.Sub(half), c.Add(half))
}

// randomAABB returns a random AABB with a low corner drawn from
// [-spread, spread] and a side length of at least 0.1 on every axis,
// using rnd for a reproducible seeded run.
func randomAABB(rnd *rand.Rand, spread float64) vecmath.AABB {
	lo := randomPoint(rnd, spread)
	size := vecmath.NewVector3(
		vecmath.Real(rnd.Float64()*2+0.1),
		vecmath.Real(rnd.Float64()*2+0.1),
		vecmath.Real(rnd.Float64()*2+0.1),
	)
	return vecmath.NewAABB(lo, lo.Add(size))
}

func randomPoint(rnd *rand.Rand, spread float64) vecmath.Point3 {
	return vecmath.NewVector3(
		vecmath.Real((rnd.Float64()*2-1)*spread),
		vecmath.Real((rnd.Float64()*2-1)*spread),
		vecmath.Real((rnd.Float64()*2-1)*spread),
	)
}

func randomDirection(rnd *rand.Rand) vecmath.Vector3 {
	for {
		d := randomPoint(rnd, 1)
		if !d.IsZero() {
			return d
		}
	}
}
