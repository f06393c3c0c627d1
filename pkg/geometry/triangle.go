package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single two-sided triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3          // The three vertices
	Material   *material.Material // Material of the triangle
	normal     core.Vec3          // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: materialOrDefault(mat),
	}

	// Normal is the cross product of the two edges; zero for degenerate triangles
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()

	return t
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	dist := f * edge2.Dot(q)
	if !ray.InRange(dist) {
		return 0, false
	}
	return dist, true
}

// OutwardNormal returns the winding-order normal (v1-v0)×(v2-v0)
func (t *Triangle) OutwardNormal(point core.Vec3) core.Vec3 {
	return t.normal
}

// NormalAt returns the triangle normal flipped to face the ray origin
func (t *Triangle) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, t.normal)
	return n
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() *material.Material {
	return t.Material
}

// Validate rejects zero-area triangles
func (t *Triangle) Validate() error {
	if t.normal.IsZero() || !t.V0.IsFinite() || !t.V1.IsFinite() || !t.V2.IsFinite() {
		return fmt.Errorf("triangle %v %v %v: %w", t.V0, t.V1, t.V2, core.ErrDegenerateGeometry)
	}
	return nil
}

// BoundingBox returns the vertex bounds, padded so axis-aligned triangles
// keep a non-zero thickness
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2).Expand(core.Epsilon)
}
