package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABB_EmptyIsIdentity(t *testing.T) {
	empty := EmptyAABB()
	p := NewVector3(1, 2, 3)

	grown := empty.Grow(p)
	assert.Equal(t, NewAABB(p, p), grown)

	box := NewAABB(NewVector3(-1, -1, -1), NewVector3(1, 1, 1))
	assert.Equal(t, box, empty.Join(box))
	assert.True(t, empty.IsEmpty())
	assert.False(t, box.IsEmpty())
}

func TestAABB_GrowAndJoin(t *testing.T) {
	box := NewAABB(NewVector3(0, 0, 0), NewVector3(1, 1, 1))
	grown := box.Grow(NewVector3(2, -1, 0.5))
	assert.Equal(t, NewVector3(0, -1, 0), grown.Min)
	assert.Equal(t, NewVector3(2, 1, 1), grown.Max)

	other := NewAABB(NewVector3(-2, 0, 0), NewVector3(-1, 3, 3))
	joined := box.Join(other)
	assert.Equal(t, NewVector3(-2, 0, 0), joined.Min)
	assert.Equal(t, NewVector3(1, 3, 3), joined.Max)
}

func TestAABB_Contains(t *testing.T) {
	box := NewAABB(NewVector3(0, 0, 0), NewVector3(2, 2, 2))
	assert.True(t, box.Contains(NewVector3(1, 1, 1)))
	assert.True(t, box.Contains(NewVector3(0, 0, 0)))
	assert.True(t, box.Contains(NewVector3(2, 2, 2)))
	assert.False(t, box.Contains(NewVector3(2.1, 1, 1)))
}

func TestAABB_Overlaps(t *testing.T) {
	a := NewAABB(NewVector3(0, 0, 0), NewVector3(1, 1, 1))
	touching := NewAABB(NewVector3(1, 0, 0), NewVector3(2, 1, 1))
	separate := NewAABB(NewVector3(2, 2, 2), NewVector3(3, 3, 3))

	assert.True(t, a.Overlaps(touching))
	assert.True(t, a.IntersectsAABB(touching))
	assert.False(t, a.Overlaps(separate))
}

func TestAABB_SizeCenterSurfaceArea(t *testing.T) {
	box := NewAABB(NewVector3(0, 0, 0), NewVector3(2, 4, 6))
	assert.Equal(t, NewVector3(2, 4, 6), box.Size())
	assert.Equal(t, NewVector3(1, 2, 3), box.Center())

	expected := Real(2 * (2*4 + 4*6 + 6*2))
	assert.InDelta(t, expected, box.SurfaceArea(), 1e-9)
}

func TestAABB_LargestAxis(t *testing.T) {
	assert.Equal(t, 0, NewAABB(NewVector3(0, 0, 0), NewVector3(5, 1, 1)).LargestAxis())
	assert.Equal(t, 1, NewAABB(NewVector3(0, 0, 0), NewVector3(1, 5, 1)).LargestAxis())
	assert.Equal(t, 2, NewAABB(NewVector3(0, 0, 0), NewVector3(1, 1, 5)).LargestAxis())
}

func TestAABB_RelativePosition(t *testing.T) {
	box := NewAABB(NewVector3(0, 0, 0), NewVector3(10, 10, 10))
	rel := box.RelativePosition(NewVector3(5, 0, 10))
	assert.InDelta(t, 0.5, rel.X, 1e-9)
	assert.InDelta(t, 0, rel.Y, 1e-9)
	assert.InDelta(t, 1, rel.Z, 1e-9)

	// Degenerate (flat) box on one axis should not divide by zero.
	flat := NewAABB(NewVector3(0, 0, 0), NewVector3(0, 10, 10))
	rel = flat.RelativePosition(NewVector3(0, 5, 5))
	assert.Equal(t, Real(0), rel.X)
}

func TestAABB_IsValid(t *testing.T) {
	assert.True(t, NewAABB(NewVector3(0, 0, 0), NewVector3(1, 1, 1)).IsValid())
	assert.False(t, NewAABB(NewVector3(2, 0, 0), NewVector3(1, 1, 1)).IsValid())
}

func TestAABB_Corner(t *testing.T) {
	box := NewAABB(NewVector3(-1, -2, -3), NewVector3(1, 2, 3))
	assert.Equal(t, box.Min, box.Corner(0))
	assert.Equal(t, box.Max, box.Corner(1))
}
