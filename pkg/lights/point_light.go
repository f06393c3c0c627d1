package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits equally in all directions from a single position.
// Intensity does not fall off with distance.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type implements the Light interface
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Illuminate implements the Light interface
func (pl *PointLight) Illuminate(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()

	direction, err := toLight.TryNormalize()
	if err != nil {
		// Shading point coincides with the light
		return noLight()
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Intensity: pl.Intensity,
	}
}
