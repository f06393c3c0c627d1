package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: materialOrDefault(mat),
	}
}

// Intersect solves |O + tD - C|² = r² for the smallest root in range
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	if !(s.Radius > 0) {
		return 0, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		// Rounding can push an exact tangent slightly negative
		if discriminant < -1e-12*s.Radius*s.Radius {
			return 0, false
		}
		discriminant = 0
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !ray.InRange(root) {
		root = (-halfB + sqrtD) / a
		if !ray.InRange(root) {
			return 0, false
		}
	}

	return root, true
}

// OutwardNormal points from the center through the surface point
func (s *Sphere) OutwardNormal(point core.Vec3) core.Vec3 {
	n, err := point.Subtract(s.Center).TryNormalize()
	if err != nil {
		return core.NewVec3(0, 1, 0)
	}
	return n
}

// NormalAt returns the front-facing normal at point
func (s *Sphere) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, s.OutwardNormal(point))
	return n
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() *material.Material {
	return s.Material
}

// Validate rejects non-positive or non-finite radii and centers
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) || !s.Center.IsFinite() {
		return fmt.Errorf("sphere at %v with radius %v: %w", s.Center, s.Radius, core.ErrDegenerateGeometry)
	}
	return nil
}

// BoundingBox returns the cube enclosing the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.AABB{Min: s.Center.Subtract(r), Max: s.Center.Add(r)}.Expand(core.Epsilon)
}
