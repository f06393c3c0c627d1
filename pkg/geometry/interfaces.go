package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Intersect returns the parameter of the nearest hit within the ray's
	// [TMin, TMax] range, or false when there is none.
	Intersect(ray core.Ray) (float64, bool)

	// OutwardNormal returns the unit geometric normal at a surface point.
	OutwardNormal(point core.Vec3) core.Vec3

	// NormalAt returns the unit normal at point, oriented against ray.
	NormalAt(point core.Vec3, ray core.Ray) core.Vec3

	GetMaterial() *material.Material

	// Validate returns core.ErrDegenerateGeometry for shapes without extent.
	Validate() error
}

// Bounded is implemented by shapes with finite extent. Only bounded
// shapes can be placed in a BVH.
type Bounded interface {
	BoundingBox() core.AABB
}

// FaceForward orients an outward normal to oppose the ray direction and
// reports whether the ray hit the front face.
func FaceForward(ray core.Ray, outwardNormal core.Vec3) (normal core.Vec3, frontFace bool) {
	frontFace = ray.Direction.Dot(outwardNormal) < 0
	if frontFace {
		return outwardNormal, true
	}
	return outwardNormal.Negate(), false
}

// materialOrDefault keeps nil materials out of the shading path
func materialOrDefault(m *material.Material) *material.Material {
	if m == nil {
		return material.Default()
	}
	return m
}
