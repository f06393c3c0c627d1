package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Box is an axis-aligned box made of six quads
type Box struct {
	Center   core.Vec3          // Center point of the box
	Size     core.Vec3          // Half-extents along each axis
	Material *material.Material // Material for all faces
	faces    [6]*Quad
}

// NewBox creates a box. Size holds half-extents, so a size of (1,1,1)
// creates a 2x2x2 box.
func NewBox(center, size core.Vec3, mat *material.Material) *Box {
	b := &Box{Center: center, Size: size, Material: materialOrDefault(mat)}

	lo := center.Subtract(size)
	hi := center.Add(size)
	dx := core.NewVec3(2*size.X, 0, 0)
	dy := core.NewVec3(0, 2*size.Y, 0)
	dz := core.NewVec3(0, 0, 2*size.Z)

	// Edge order is chosen so every U × V points out of the box
	b.faces = [6]*Quad{
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, b.Material),          // front (+Z)
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, b.Material), // back (-Z)
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, b.Material), // right (+X)
		NewQuad(lo, dz, dy, b.Material),                                      // left (-X)
		NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), b.Material), // top (+Y)
		NewQuad(lo, dx, dz, b.Material),                                      // bottom (-Y)
	}
	return b
}

// Intersect returns the nearest face hit
func (b *Box) Intersect(ray core.Ray) (float64, bool) {
	closestT := ray.TMax
	hit := false
	for _, face := range b.faces {
		if t, ok := face.Intersect(ray.WithMax(closestT)); ok {
			closestT, hit = t, true
		}
	}
	return closestT, hit
}

// OutwardNormal picks the face whose axis the point is furthest along,
// relative to the half-extents
func (b *Box) OutwardNormal(point core.Vec3) core.Vec3 {
	local := point.Subtract(b.Center)
	best, bestAxis := -1.0, 0
	for axis := 0; axis < 3; axis++ {
		if r := math.Abs(local.Axis(axis)) / b.Size.Axis(axis); r > best {
			best, bestAxis = r, axis
		}
	}

	var n [3]float64
	n[bestAxis] = math.Copysign(1, local.Axis(bestAxis))
	return core.NewVec3(n[0], n[1], n[2])
}

// NormalAt returns the face normal flipped to face the ray origin
func (b *Box) NormalAt(point core.Vec3, ray core.Ray) core.Vec3 {
	n, _ := FaceForward(ray, b.OutwardNormal(point))
	return n
}

// GetMaterial returns the box's material
func (b *Box) GetMaterial() *material.Material {
	return b.Material
}

// Validate rejects boxes without volume
func (b *Box) Validate() error {
	if !(b.Size.X > 0 && b.Size.Y > 0 && b.Size.Z > 0) || !b.Center.IsFinite() || !b.Size.IsFinite() {
		return fmt.Errorf("box with size %v: %w", b.Size, core.ErrDegenerateGeometry)
	}
	return nil
}

// BoundingBox returns the box itself, padded by epsilon
func (b *Box) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(b.Center.Subtract(b.Size), b.Center.Add(b.Size)).Expand(core.Epsilon)
}
