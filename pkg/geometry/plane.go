package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the smallest |D·N| for which a ray is not considered
// parallel to a plane
const parallelEpsilon = 1e-8

// Plane represents an infinite two-sided plane N·P + D = 0
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal vector
	D        float64            // Plane offset, -N·Point
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane through point with the given normal
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	return &Plane{
		Point:    point,
		Normal:   n,
		D:        -n.Dot(point),
		Material: materialOrDefault(mat),
	}
}

// NewPlaneFromEquation creates the plane N·P + d = 0. The normal does not
// need to be unit length; d is rescaled with it.
func NewPlaneFromEquation(normal core.Vec3, d float64, mat *material.Material) *Plane {
	length := normal.Length()
	if length == 0 {
		return &Plane{D: d, Material: materialOrDefault(mat)}
	}
	n := normal.Multiply(1 / length)
	d /= length
	return &Plane{
		Point:    n.Multiply(-d),
		Normal:   n,
		D:        d,
		Material: materialOrDefault(mat),
	}
}

// Intersect solves t = -(O·N + d) / (D·N)
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays (and degenerate zero normals) never hit
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	t := -(ray.Origin.Dot(p.Normal) + p.D) / denominator
	if !ray.InRange(t) {
		return 0, false
	}
	return t, true
}

// OutwardNormal returns the plane normal
func (p *Plane) OutwardNormal(point core.Vec3) core.Vec3 {
	return p.Normal
}

// NormalAt returns the plane normal flipped to face the ray origin
func (p *Plane) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, p.Normal)
	return n
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material {
	return p.Material
}

// Validate rejects planes without a usable normal
func (p *Plane) Validate() error {
	if p.Normal.IsZero() || !p.Normal.IsFinite() || math.IsNaN(p.D) || math.IsInf(p.D, 0) {
		return fmt.Errorf("plane with normal %v: %w", p.Normal, core.ErrDegenerateGeometry)
	}
	return nil
}
