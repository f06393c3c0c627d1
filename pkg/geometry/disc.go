package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Disc represents a circular two-sided disc in 3D space
type Disc struct {
	Center   core.Vec3          // Center of the disc
	Normal   core.Vec3          // Normal vector (pointing "up" from the disc)
	Radius   float64            // Radius of the disc
	Material *material.Material // Material of the disc
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat *material.Material) *Disc {
	return &Disc{
		Center:   center,
		Normal:   normal.Normalize(),
		Radius:   radius,
		Material: materialOrDefault(mat),
	}
}

// Intersect hits the supporting plane and keeps points within the radius
func (d *Disc) Intersect(ray core.Ray) (float64, bool) {
	if !(d.Radius > 0) {
		return 0, false
	}

	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false // Ray is parallel to disc
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if !ray.InRange(t) {
		return 0, false
	}

	if ray.At(t).Subtract(d.Center).LengthSquared() > d.Radius*d.Radius {
		return 0, false // Outside disc
	}
	return t, true
}

// OutwardNormal returns the disc normal
func (d *Disc) OutwardNormal(point core.Vec3) core.Vec3 {
	return d.Normal
}

// NormalAt returns the disc normal flipped to face the ray origin
func (d *Disc) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, d.Normal)
	return n
}

// GetMaterial returns the disc's material
func (d *Disc) GetMaterial() *material.Material {
	return d.Material
}

// Validate rejects discs without area or orientation
func (d *Disc) Validate() error {
	if !(d.Radius > 0) || math.IsInf(d.Radius, 0) || d.Normal.IsZero() || !d.Center.IsFinite() {
		return fmt.Errorf("disc at %v with radius %v: %w", d.Center, d.Radius, core.ErrDegenerateGeometry)
	}
	return nil
}

// BoundingBox returns the box enclosing the disc. Along each axis the disc
// extends radius·sqrt(1 - n²) from its center.
func (d *Disc) BoundingBox() core.AABB {
	extent := func(n float64) float64 {
		return d.Radius*math.Sqrt(math.Max(0, 1-n*n)) + core.Epsilon
	}
	e := core.NewVec3(extent(d.Normal.X), extent(d.Normal.Y), extent(d.Normal.Z))
	return core.AABB{Min: d.Center.Subtract(e), Max: d.Center.Add(e)}
}
