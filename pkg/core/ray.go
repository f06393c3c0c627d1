package core

import "math"

// Epsilon is the tolerance shared by intersection tests, ray range starts and
// the offset applied to secondary ray origins.
const Epsilon = 1e-4

// Interval is a closed interval [Min, Max] of ray parameters
type Interval struct {
	Min, Max float64
}

// NewInterval returns the closed interval spanning a and b in either order
func NewInterval(a, b float64) Interval {
	if a <= b {
		return Interval{Min: a, Max: b}
	}
	return Interval{Min: b, Max: a}
}

// Contains reports whether t lies in the interval
func (i Interval) Contains(t float64) bool {
	return t >= i.Min && t <= i.Max
}

// Intersect returns the overlap of two intervals, or false when it is empty
func (i Interval) Intersect(other Interval) (Interval, bool) {
	lo := math.Max(i.Min, other.Min)
	hi := math.Min(i.Max, other.Max)
	if hi < lo {
		return Interval{}, false
	}
	return Interval{Min: lo, Max: hi}, true
}

// Ray represents a ray with an origin, a unit direction and the range of
// parameters [TMin, TMax] in which hits are accepted.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// DefaultDirection is used when a ray is built from a zero-length direction
var DefaultDirection = Vec3{X: 0, Y: 0, Z: -1}

// NewRay creates a ray with a normalized direction and range [Epsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return NewRayRange(origin, direction, Epsilon, math.Inf(1))
}

// NewRayRange creates a ray with a normalized direction and the given range.
// A zero-length direction falls back to DefaultDirection. tMin is raised to
// Epsilon when it is not strictly positive.
func NewRayRange(origin, direction Vec3, tMin, tMax float64) Ray {
	dir, err := direction.TryNormalize()
	if err != nil {
		dir = DefaultDirection
	}
	if !(tMin > 0) {
		tMin = Epsilon
	}
	return Ray{Origin: origin, Direction: dir, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// InRange reports whether t lies within [TMin, TMax]
func (r Ray) InRange(t float64) bool {
	return r.Range().Contains(t)
}

// Range returns the ray's parameter range as an Interval
func (r Ray) Range() Interval {
	return Interval{Min: r.TMin, Max: r.TMax}
}

// WithMax returns a copy of the ray limited to parameters below tMax
func (r Ray) WithMax(tMax float64) Ray {
	r.TMax = tMax
	return r
}
