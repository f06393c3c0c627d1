package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

// Light interface for sources that illuminate surface points directly
type Light interface {
	Type() LightType

	// Illuminate returns the unit direction FROM point TO the light, the
	// distance along it (+Inf for directional lights) and the RGB intensity
	// arriving at point. A zero intensity means no contribution.
	Illuminate(point core.Vec3) LightSample
}

// LightSample describes the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Intensity core.Vec3 // RGB intensity reaching the point
}

// IsBlack reports whether the sample carries no light
func (s LightSample) IsBlack() bool {
	return s.Intensity.IsZero()
}

// noLight is returned when a light cannot contribute to a point
func noLight() LightSample {
	return LightSample{Direction: core.NewVec3(0, 1, 0)}
}
