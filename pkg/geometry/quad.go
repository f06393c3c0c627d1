package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Quad is a two-sided parallelogram spanned by two edge vectors from a corner
type Quad struct {
	Corner   core.Vec3          // One corner of the quad
	U        core.Vec3          // First edge vector
	V        core.Vec3          // Second edge vector
	Normal   core.Vec3          // Unit normal, U × V
	Material *material.Material // Material of the quad
	d        float64            // Plane constant, N·P = d
	w        core.Vec3          // N / (N·(U × V)), for planar coordinates
}

// NewQuad creates a quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: materialOrDefault(mat),
		d:        normal.Dot(corner),
	}
	if denom := normal.Dot(cross); denom != 0 {
		q.w = normal.Multiply(1 / denom)
	}
	return q
}

// Intersect hits the quad's plane and keeps the hit when its planar
// coordinates along U and V both lie in [0, 1]
func (q *Quad) Intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if !ray.InRange(t) {
		return 0, false
	}

	planar := ray.At(t).Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, false
	}
	return t, true
}

// OutwardNormal returns U × V normalized
func (q *Quad) OutwardNormal(point core.Vec3) core.Vec3 {
	return q.Normal
}

// NormalAt returns the quad normal flipped to face the ray origin
func (q *Quad) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, q.Normal)
	return n
}

// GetMaterial returns the quad's material
func (q *Quad) GetMaterial() *material.Material {
	return q.Material
}

// Validate rejects quads with parallel or zero edges
func (q *Quad) Validate() error {
	if q.Normal.IsZero() || !q.Corner.IsFinite() || !q.U.IsFinite() || !q.V.IsFinite() {
		return fmt.Errorf("quad at %v: %w", q.Corner, core.ErrDegenerateGeometry)
	}
	return nil
}

// BoundingBox returns the bounds of the four corners
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(core.Epsilon)
}
