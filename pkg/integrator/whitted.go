package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Whitted implements recursive ray tracing with Phong direct lighting, hard
// shadows, mirror reflection and refraction. It holds no mutable state and
// may be shared by all workers.
type Whitted struct {
	MaxDepth int // Maximum number of nested reflected/refracted rays
}

// NewWhitted creates a Whitted integrator. A negative depth is treated as 0.
func NewWhitted(maxDepth int) *Whitted {
	return &Whitted{MaxDepth: max(0, maxDepth)}
}

// RayColor traces a primary ray and clamps shaded results for display. A
// primary ray that misses returns the background color as is.
func (w *Whitted) RayColor(ray core.Ray, s *scene.Scene, stats *RayStats) core.Vec3 {
	if stats == nil {
		stats = &RayStats{}
	}
	stats.PrimaryRays++

	hit, ok := s.NearestHit(ray)
	if !ok {
		return s.GetBackground()
	}
	return w.shade(hit, ray, s, 0, stats).Clamp(0, 1)
}

// trace returns the unclamped color seen along ray at the given recursion depth
func (w *Whitted) trace(ray core.Ray, s *scene.Scene, depth int, stats *RayStats) core.Vec3 {
	stats.MaxDepthReached = max(stats.MaxDepthReached, depth)

	hit, ok := s.NearestHit(ray)
	if !ok {
		return s.GetBackground()
	}
	return w.shade(hit, ray, s, depth, stats)
}

// shade evaluates the local Phong terms at a hit and adds the recursive
// reflected and transmitted contributions while depth allows
func (w *Whitted) shade(hit scene.Hit, ray core.Ray, s *scene.Scene, depth int, stats *RayStats) core.Vec3 {
	mat := hit.Shape.GetMaterial()
	normal, frontFace := geometry.FaceForward(ray, hit.Shape.OutwardNormal(hit.Point))
	view := ray.Direction.Negate()

	// Secondary rays on the viewer's side of the surface start slightly above it
	above := hit.Point.Add(normal.Multiply(core.Epsilon))
	below := hit.Point.Subtract(normal.Multiply(core.Epsilon))

	color := mat.Color.Multiply(mat.Ambient)

	for _, light := range s.GetLights() {
		sample := light.Illuminate(hit.Point)
		if sample.IsBlack() {
			continue
		}
		nDotL := normal.Dot(sample.Direction)
		if nDotL <= 0 {
			continue
		}

		stats.ShadowRays++
		shadowRay := core.NewRayRange(above, sample.Direction, core.Epsilon, sample.Distance)
		if s.IsOccluded(shadowRay) {
			continue
		}

		diffuse := mat.Color.MultiplyVec(sample.Intensity).Multiply(mat.Diffuse * nDotL)
		color = color.Add(diffuse)

		if mat.Specular > 0 {
			rDotV := sample.Direction.Negate().Reflect(normal).Dot(view)
			if rDotV > 0 {
				specular := sample.Intensity.Multiply(mat.Specular * math.Pow(rDotV, mat.Shininess))
				color = color.Add(specular)
			}
		}
	}

	if depth >= w.MaxDepth {
		return color
	}

	if mat.IsReflective() {
		stats.SecondaryRays++
		reflected := core.NewRay(above, ray.Direction.Reflect(normal))
		color = color.Add(w.trace(reflected, s, depth+1, stats).Multiply(mat.Reflectivity))
	}

	if mat.IsTransparent() {
		eta := mat.RefractiveIndex
		if frontFace {
			eta = 1 / mat.RefractiveIndex
		}

		var next core.Ray
		if refracted, ok := ray.Direction.Refract(normal, eta); ok {
			next = core.NewRay(below, refracted)
		} else {
			// Total internal reflection
			next = core.NewRay(above, ray.Direction.Reflect(normal))
		}
		stats.SecondaryRays++
		color = color.Add(w.trace(next, s, depth+1, stats).Multiply(mat.Transparency))
	}

	return color
}
