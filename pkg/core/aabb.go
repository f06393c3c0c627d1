package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = NewVec3(math.Min(box.Min.X, p.X), math.Min(box.Min.Y, p.Y), math.Min(box.Min.Z, p.Z))
		box.Max = NewVec3(math.Max(box.Max.X, p.X), math.Max(box.Max.Y, p.Y), math.Max(box.Max.Z, p.Z))
	}
	return box
}

// Hit tests whether the ray passes through the box within its [TMin, TMax]
// range, using the slab method
func (b AABB) Hit(ray Ray) bool {
	span := ray.Range()

	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		origin, direction := ray.Origin.Axis(axis), ray.Direction.Axis(axis)

		// Parallel to the slab: inside or never
		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1 / direction
		slab := NewInterval((lo-origin)*inv, (hi-origin)*inv)

		var ok bool
		if span, ok = span.Intersect(slab); !ok {
			return false
		}
	}
	return true
}

// Union returns an AABB that bounds both boxes
func (b AABB) Union(other AABB) AABB {
	return NewAABBFromPoints(b.Min, b.Max, other.Min, other.Max)
}

// Center returns the center point of the AABB
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b AABB) LongestAxis() int {
	size := b.Max.Subtract(b.Min)
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Expand grows the box by amount in every direction
func (b AABB) Expand(amount float64) AABB {
	e := NewVec3(amount, amount, amount)
	return AABB{Min: b.Min.Subtract(e), Max: b.Max.Add(e)}
}
