package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light under the Phong
// illumination model, plus the weights of the recursive reflected and
// refracted contributions. Materials are shared by pointer between shapes
// and must not be modified once a scene is built.
type Material struct {
	Color           core.Vec3 // Surface albedo
	Ambient         float64   // Ambient coefficient
	Diffuse         float64   // Lambertian coefficient
	Specular        float64   // Phong specular coefficient
	Shininess       float64   // Phong exponent
	Reflectivity    float64   // Weight of the mirror reflection [0,1]
	Transparency    float64   // Weight of the refracted ray [0,1]
	RefractiveIndex float64   // Index of refraction (used when Transparency > 0)
}

// Default returns a plain white matte material
func Default() *Material {
	return NewMatte(core.NewVec3(1, 1, 1))
}

// NewMatte creates a diffuse material with a small specular highlight
func NewMatte(color core.Vec3) *Material {
	return &Material{
		Color:           color,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.2,
		Shininess:       16,
		RefractiveIndex: 1,
	}
}

// NewPlastic creates a diffuse material with a sharp, strong highlight
func NewPlastic(color core.Vec3) *Material {
	return &Material{
		Color:           color,
		Ambient:         0.1,
		Diffuse:         0.7,
		Specular:        0.6,
		Shininess:       64,
		RefractiveIndex: 1,
	}
}

// NewMirror creates a perfect mirror: no ambient or diffuse term, full reflectivity
func NewMirror() *Material {
	return &Material{
		Color:           core.NewVec3(1, 1, 1),
		Specular:        0.5,
		Shininess:       256,
		Reflectivity:    1,
		RefractiveIndex: 1,
	}
}

// NewGlass creates a transparent material with a faint reflection
func NewGlass(refractiveIndex float64) *Material {
	return &Material{
		Color:           core.NewVec3(1, 1, 1),
		Specular:        0.5,
		Shininess:       128,
		Reflectivity:    0.1,
		Transparency:    0.9,
		RefractiveIndex: refractiveIndex,
	}
}

// IsReflective reports whether the material spawns reflected rays
func (m *Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// IsTransparent reports whether the material spawns refracted rays
func (m *Material) IsTransparent() bool {
	return m.Transparency > 0
}

// Validate checks the coefficients are finite and in range
func (m *Material) Validate() error {
	if !m.Color.IsFinite() {
		return fmt.Errorf("material: color %v is not finite", m.Color)
	}
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
		{"reflectivity", m.Reflectivity},
		{"transparency", m.Transparency},
	}
	for _, c := range coefficients {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("material: %s must be a finite non-negative number, got %v", c.name, c.value)
		}
	}
	if m.Reflectivity > 1 || m.Transparency > 1 {
		return fmt.Errorf("material: reflectivity and transparency must not exceed 1")
	}
	if m.IsTransparent() && !(m.RefractiveIndex > 0) {
		return fmt.Errorf("material: transparent material needs a positive refractive index, got %v", m.RefractiveIndex)
	}
	return nil
}
