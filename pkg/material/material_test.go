package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPresets_AreValid(t *testing.T) {
	presets := map[string]*Material{
		"default": Default(),
		"matte":   NewMatte(core.NewVec3(0.8, 0.2, 0.2)),
		"plastic": NewPlastic(core.NewVec3(0.2, 0.2, 0.8)),
		"mirror":  NewMirror(),
		"glass":   NewGlass(1.5),
	}

	for name, m := range presets {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, m.Validate())
		})
	}
}

func TestMirror_IsReflectiveOnly(t *testing.T) {
	m := NewMirror()

	assert.True(t, m.IsReflective())
	assert.False(t, m.IsTransparent())
	assert.Equal(t, 0.0, m.Diffuse)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Material)
	}{
		{"negative diffuse", func(m *Material) { m.Diffuse = -1 }},
		{"nan specular", func(m *Material) { m.Specular = math.NaN() }},
		{"reflectivity above one", func(m *Material) { m.Reflectivity = 1.5 }},
		{"transparent without index", func(m *Material) { m.Transparency = 0.5; m.RefractiveIndex = 0 }},
		{"infinite color", func(m *Material) { m.Color = core.NewVec3(math.Inf(1), 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			tt.mutate(m)
			assert.Error(t, m.Validate())
		})
	}
}
