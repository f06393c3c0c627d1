package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the color seen along a primary ray. Shaded colors are
	// clamped to [0,1]; a miss returns the scene background. Counters are accumulated into stats, which is owned
	// by the calling goroutine and may be nil.
	RayColor(ray core.Ray, scene *scene.Scene, stats *RayStats) core.Vec3
}

// RayStats counts the rays cast while shading. Each worker keeps its own
// copy; copies are combined with Merge after the workers join.
type RayStats struct {
	PrimaryRays     int64 // Camera rays
	ShadowRays      int64 // Occlusion tests toward lights
	SecondaryRays   int64 // Reflected and refracted rays
	MaxDepthReached int   // Deepest recursion level reached
}

// Merge adds the counters of other into s
func (s *RayStats) Merge(other RayStats) {
	s.PrimaryRays += other.PrimaryRays
	s.ShadowRays += other.ShadowRays
	s.SecondaryRays += other.SecondaryRays
	s.MaxDepthReached = max(s.MaxDepthReached, other.MaxDepthReached)
}

// Total returns the number of rays of every kind
func (s RayStats) Total() int64 {
	return s.PrimaryRays + s.ShadowRays + s.SecondaryRays
}
