package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight emits parallel rays from infinitely far away, like the sun
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels in
	Intensity core.Vec3
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, intensity core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		Intensity: intensity,
	}
}

// Type implements the Light interface
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Illuminate implements the Light interface
func (dl *DirectionalLight) Illuminate(point core.Vec3) LightSample {
	if dl.Direction.IsZero() {
		return noLight()
	}
	return LightSample{
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		Intensity: dl.Intensity,
	}
}
