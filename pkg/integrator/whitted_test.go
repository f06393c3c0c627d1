package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func assertColorInDelta(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "R of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "G of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "B of %v", actual)
}

func TestWhitted_MissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.2, 0.3, 0.5)
	s := scene.NewBuilder().SetBackground(background).Build()

	color := NewWhitted(5).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, nil)

	assert.Equal(t, background, color)
}

func TestWhitted_MissKeepsBackgroundOutsideUnitRange(t *testing.T) {
	background := core.NewVec3(2, -0.5, 1.25)
	s := scene.NewBuilder().SetBackground(background).Build()
	stats := &RayStats{}

	color := NewWhitted(5).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, stats)

	assert.Equal(t, background, color)
	assert.Equal(t, int64(1), stats.PrimaryRays)
	assert.Equal(t, 0, stats.MaxDepthReached)
}

func TestWhitted_NoSelfShadowing(t *testing.T) {
	grey := core.NewVec3(0.5, 0.5, 0.5)
	s := scene.NewBuilder().
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMatte(grey))).
		AddLight(lights.NewPointLight(core.Vec3{}, core.NewVec3(1, 1, 1))).
		Build()
	stats := &RayStats{}

	color := NewWhitted(0).trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, 0, stats)

	// ambient 0.05 + diffuse 0.45 + specular 0.2, all unobstructed
	assertColorInDelta(t, core.NewVec3(0.7, 0.7, 0.7), color, 1e-9)
	assert.Equal(t, int64(1), stats.ShadowRays)
}

func TestWhitted_ShadowedPointGetsAmbientOnly(t *testing.T) {
	grey := core.NewVec3(0.5, 0.5, 0.5)
	s := scene.NewBuilder().
		AddShape(
			geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.NewMatte(grey)),
			geometry.NewSphere(core.NewVec3(0, 2, -3), 0.5, material.NewMatte(grey)),
		).
		AddLight(lights.NewPointLight(core.NewVec3(0, 5, -3), core.NewVec3(1, 1, 1))).
		Build()

	// Straight down onto the plane directly below the blocker
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -1, 0))
	color := NewWhitted(0).RayColor(ray, s, nil)

	assertColorInDelta(t, core.NewVec3(0.05, 0.05, 0.05), color, 1e-9)
}

func TestWhitted_LightBehindSurfaceContributesNothing(t *testing.T) {
	s := scene.NewBuilder().
		AddShape(geometry.NewPlane(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1), material.NewMatte(core.NewVec3(1, 1, 1)))).
		AddLight(lights.NewPointLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1))).
		Build()
	stats := &RayStats{}

	color := NewWhitted(0).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, stats)

	assertColorInDelta(t, core.NewVec3(0.1, 0.1, 0.1), color, 1e-9)
	assert.Zero(t, stats.ShadowRays)
}

func TestWhitted_RecursionIsBounded(t *testing.T) {
	// Two parallel mirrors reflect a perpendicular ray forever
	s := scene.NewBuilder().
		AddShape(
			geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), material.NewMirror()),
			geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), material.NewMirror()),
		).
		Build()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	for _, maxDepth := range []int{0, 1, 3, 8} {
		stats := &RayStats{}
		NewWhitted(maxDepth).RayColor(ray, s, stats)

		assert.Equal(t, maxDepth, stats.MaxDepthReached, "max depth %d", maxDepth)
		assert.Equal(t, int64(maxDepth), stats.SecondaryRays, "max depth %d", maxDepth)
	}
}

func TestWhitted_MirrorReflectsBackground(t *testing.T) {
	background := core.NewVec3(0.1, 0.6, 0.2)
	mirror := material.NewMirror()
	mirror.Specular = 0
	s := scene.NewBuilder().
		SetBackground(background).
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror)).
		Build()

	color := NewWhitted(1).RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, nil)

	assertColorInDelta(t, background, color, 1e-9)
}

func TestWhitted_Refraction(t *testing.T) {
	glass := &material.Material{
		Color:           core.NewVec3(1, 1, 1),
		Transparency:    1,
		RefractiveIndex: 1.5,
	}
	background := core.NewVec3(0, 0, 1)
	s := scene.NewBuilder().
		SetBackground(background).
		AddShape(geometry.NewSphere(core.Vec3{}, 1, glass)).
		Build()
	right := core.NewVec3(1, 0, 0)

	t.Run("steep exit refracts out of the sphere", func(t *testing.T) {
		stats := &RayStats{}
		color := NewWhitted(1).trace(core.NewRay(core.NewVec3(0, 0.1, 0), right), s, 0, stats)

		assertColorInDelta(t, background, color, 1e-9)
		assert.Equal(t, int64(1), stats.SecondaryRays)
	})

	t.Run("grazing exit is totally internally reflected", func(t *testing.T) {
		stats := &RayStats{}
		color := NewWhitted(1).trace(core.NewRay(core.NewVec3(0, 0.9, 0), right), s, 0, stats)

		// The reflected ray stays inside and hits the sphere again at the depth limit
		assertColorInDelta(t, core.Vec3{}, color, 1e-9)
		assert.Equal(t, int64(1), stats.SecondaryRays)
	})
}

func TestWhitted_TopLevelClamp(t *testing.T) {
	s := scene.NewBuilder().
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewPlastic(core.NewVec3(1, 1, 1)))).
		AddLight(lights.NewPointLight(core.Vec3{}, core.NewVec3(3, 3, 3))).
		Build()
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	raw := NewWhitted(0).trace(ray, s, 0, &RayStats{})
	require.Greater(t, raw.X, 1.0)

	assert.Equal(t, core.NewVec3(1, 1, 1), NewWhitted(0).RayColor(ray, s, nil))
}

func TestRayStats_Merge(t *testing.T) {
	total := RayStats{PrimaryRays: 1, ShadowRays: 2, SecondaryRays: 3, MaxDepthReached: 1}
	total.Merge(RayStats{PrimaryRays: 10, ShadowRays: 20, SecondaryRays: 30, MaxDepthReached: 4})

	assert.Equal(t, RayStats{PrimaryRays: 11, ShadowRays: 22, SecondaryRays: 33, MaxDepthReached: 4}, total)
	assert.Equal(t, int64(66), total.Total())
}
