package bvh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/kjarosh/gobvh/pkg/bvh"
	"github.com/kjarosh/gobvh/pkg/shapes"
	"github.com/kjarosh/gobvh/pkg/vecmath"
)

// sphereShape adapts shapes.Sphere into a BHShape primitive, giving it an
// AABB derived from its center and radius so it can live in a BVH's
// shape array — the sphere itself remains usable as a query shape too.
type sphereShape struct {
	shapes.Sphere
	node int
}

func newSphereShape(center vecmath.Point3, radius vecmath.Real) *sphereShape {
	return &sphereShape{Sphere: shapes.NewSphere(center, radius), node: -1}
}

func (s *sphereShape) AABB() vecmath.AABB {
	r := vecmath.NewVector3(s.Radius, s.Radius, s.Radius)
	return vecmath.NewAABB(s.Center.Sub(r), s.Center.Add(r))
}
func (s *sphereShape) NodeIndex() int     { return s.node }
func (s *sphereShape) SetNodeIndex(i int) { s.node = i }

func TestTraverse_DiagonalSpheresMatchesBruteForce(t *testing.T) {
	const n = 1000
	shapeSet := make([]bvh.BHShape, n)
	for i := 0; i < n; i++ {
		center := vecmath.NewVector3(vecmath.Real(i), vecmath.Real(i), vecmath.Real(i))
		radius := vecmath.Real(i%10 + 1)
		shapeSet[i] = newSphereShape(center, radius)
	}
	tree := bvh.Build(shapeSet)

	ray := shapes.NewRay(vecmath.NewVector3(0, 0, 0), vecmath.NewVector3(1, 0, 0))
	expected := bruteForce(shapeSet, ray)
	got := asSet(tree.Traverse(ray, shapeSet))
	assert.Equal(t, expected, got)
}

func TestTraverse_SphereQueryOverGridMatchesBruteForce(t *testing.T) {
	shapeSet := gridOfUnitAABBs(8, 8, 8)
	tree := bvh.Build(shapeSet)

	query := shapes.NewSphere(vecmath.NewVector3(5, 5, 5), 2.5)
	expected := bruteForce(shapeSet, query)
	got := asSet(tree.Traverse(query, shapeSet))
	assert.Equal(t, expected, got)
	assert.NotEmpty(t, expected)
}

func TestTraverse_CapsuleAndOBBQueriesMatchBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	boxes := make([]vecmath.AABB, 200)
	for i := range boxes {
		boxes[i] = randomAABB(rnd, 30)
	}
	shapeSet := shapesOf(boxes...)
	tree := bvh.Build(shapeSet)

	capsule := shapes.NewCapsule(vecmath.NewVector3(-20, 0, 0), vecmath.NewVector3(20, 0, 0), 3)
	assert.Equal(t, bruteForce(shapeSet, capsule), asSet(tree.Traverse(capsule, shapeSet)))

	obb := shapes.NewOBB(
		vecmath.NewVector3(0, 0, 0),
		vecmath.NewVector3(10, 5, 5),
		vecmath.NewVector3(1, 0, 0), vecmath.NewVector3(0, 1, 0), vecmath.NewVector3(0, 0, 1),
	)
	assert.Equal(t, bruteForce(shapeSet, obb), asSet(tree.Traverse(obb, shapeSet)))
}

func TestTraverse_AABBAsQueryShape(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	boxes := make([]vecmath.AABB, 150)
	for i := range boxes {
		boxes[i] = randomAABB(rnd, 40)
	}
	shapeSet := shapesOf(boxes...)
	tree := bvh.Build(shapeSet)

	region := vecmath.NewAABB(vecmath.NewVector3(-5, -5, -5), vecmath.NewVector3(5, 5, 5))
	assert.Equal(t, bruteForce(shapeSet, region), asSet(tree.Traverse(region, shapeSet)))
}

func TestTraverseIterator_MatchesRecursiveTraverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	boxes := make([]vecmath.AABB, 400)
	for i := range boxes {
		boxes[i] = randomAABB(rnd, 80)
	}
	shapeSet := shapesOf(boxes...)
	tree := bvh.Build(shapeSet)

	for i := 0; i < 50; i++ {
		ray := shapes.NewRay(randomPoint(rnd, 80), randomDirection(rnd))

		want := asSet(tree.Traverse(ray, shapeSet))

		it := bvh.NewTraverseIterator(tree, shapeSet, ray)
		got := map[bvh.BHShape]bool{}
		for {
			s, ok := it.Next()
			if !ok {
				break
			}
			got[s] = true
		}
		assert.Equal(t, want, got, "iteration %d", i)
	}
}

func TestTraverseIterator_SingleLeafTree(t *testing.T) {
	shapeSet := shapesOf(unitAABBAt(0, 0, 0))
	tree := bvh.Build(shapeSet)

	hit := shapes.NewRay(vecmath.NewVector3(-5, 0, 0), vecmath.NewVector3(1, 0, 0))
	it := bvh.NewTraverseIterator(tree, shapeSet, hit)
	s, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, shapeSet[0], s)
	_, ok = it.Next()
	assert.False(t, ok)

	miss := shapes.NewRay(vecmath.NewVector3(-5, 50, 0), vecmath.NewVector3(1, 0, 0))
	it = bvh.NewTraverseIterator(tree, shapeSet, miss)
	_, ok = it.Next()
	assert.False(t, ok)
}

func gridOfUnitAABBs(nx, ny, nz int) []bvh.BHShape {
	var out []bvh.BHShape
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				out = append(out, newTestShape(unitAABBAt(vecmath.Real(x), vecmath.Real(y), vecmath.Real(z))))
			}
		}
	}
	return out
}
