package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect_Basic(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hitT, isHit := plane.Intersect(ray)
	require.True(t, isHit)
	assert.InDelta(t, 1.0, hitT, 1e-9)
	assertVecInDelta(t, core.NewVec3(0, 0, 0), ray.At(hitT), 1e-9)
}

func TestPlane_Intersect_ParallelNeverHits(t *testing.T) {
	normal := core.NewVec3(0.3, 1, -0.2).Normalize()
	plane := NewPlane(core.NewVec3(0, -1, 0), normal, nil)

	// Any direction orthogonal to the normal, from any origin
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		v := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5)
		dir := normal.Cross(v)
		if dir.LengthSquared() < 1e-6 {
			continue
		}

		_, isHit := plane.Intersect(core.NewRay(origin, dir))
		assert.False(t, isHit, "parallel ray from %v along %v", origin, dir)
	}
}

func TestPlane_Intersect_Behind(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	_, isHit := plane.Intersect(ray)
	assert.False(t, isHit)
}

func TestPlane_FromEquation(t *testing.T) {
	// z = -0.5 written as (0,0,2)·P + 1 = 0
	plane := NewPlaneFromEquation(core.NewVec3(0, 0, 2), 1, nil)
	require.NoError(t, plane.Validate())
	assertVecInDelta(t, core.NewVec3(0, 0, 1), plane.Normal, 1e-12)
	assert.InDelta(t, 0.5, plane.D, 1e-12)

	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	hitT, isHit := plane.Intersect(ray)
	require.True(t, isHit)
	assert.InDelta(t, 3.5, hitT, 1e-9)
}

func TestPlane_NormalAt_TwoSided(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), nil)

	fromAbove := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	assertVecInDelta(t, core.NewVec3(0, 1, 0), plane.NormalAt(core.Vec3{}, fromAbove), 0)

	fromBelow := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	assertVecInDelta(t, core.NewVec3(0, -1, 0), plane.NormalAt(core.Vec3{}, fromBelow), 0)
}

func TestPlane_Degenerate(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.Vec3{}, nil)
	assert.ErrorIs(t, plane.Validate(), core.ErrDegenerateGeometry)

	_, isHit := plane.Intersect(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)))
	assert.False(t, isHit)
}
