package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone with a smooth falloff edge
type SpotLight struct {
	position        core.Vec3 // Light position in world space
	direction       core.Vec3 // Normalized direction vector (from -> to)
	intensity       core.Vec3 // Light intensity/color
	cosTotalWidth   float64   // Cosine of total cone angle (outer edge)
	cosFalloffStart float64   // Cosine of falloff start angle (inner cone)
}

// NewSpotLight creates a new spot light
// from: light position
// to: point the light is aimed at
// intensity: light intensity/color
// coneAngleDegrees: total cone angle in degrees
// coneDeltaAngleDegrees: falloff transition angle in degrees
func NewSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *SpotLight {
	direction := to.Subtract(from).Normalize()

	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &SpotLight{
		position:        from,
		direction:       direction,
		intensity:       intensity,
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

// Type implements the Light interface
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Illuminate implements the Light interface
func (sl *SpotLight) Illuminate(point core.Vec3) LightSample {
	toLight := sl.position.Subtract(point)
	distance := toLight.Length()

	direction, err := toLight.TryNormalize()
	if err != nil || sl.direction.IsZero() {
		return noLight()
	}

	// Angle between the spot axis and the direction from light to point
	cosAngle := sl.direction.Dot(direction.Negate())
	attenuation := sl.falloff(cosAngle)
	if attenuation == 0 {
		return noLight()
	}

	return LightSample{
		Direction: direction,
		Distance:  distance,
		Intensity: sl.intensity.Multiply(attenuation),
	}
}

// falloff returns 1 inside the inner cone, 0 outside the outer cone and a
// quartic ramp in between
func (sl *SpotLight) falloff(cosAngle float64) float64 {
	if cosAngle < sl.cosTotalWidth {
		return 0
	}
	if cosAngle >= sl.cosFalloffStart {
		return 1
	}

	delta := (cosAngle - sl.cosTotalWidth) / (sl.cosFalloffStart - sl.cosTotalWidth)
	return delta * delta * delta * delta
}
