package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlScene = `
# Scene: Two spheres in TOML
background = [0.1, 0.2, 0.3]

[camera]
position = [0.0, 1.0, 3.0]
look_at = [0.0, 0.0, -1.0]
fov = 60.0

[image]
width = 160
height = 90

[materials.red]
color = [1.0, 0.0, 0.0]
diffuse = 0.8

[materials.chrome]
preset = "mirror"

[[shapes]]
type = "sphere"
center = [0.0, 0.0, -5.0]
radius = 1.0
material = "red"

[[shapes]]
type = "box"
center = [2.0, 0.0, -5.0]
size = [0.5, 0.5, 0.5]
material = "chrome"

[[lights]]
type = "point"
position = [2.0, 2.0, 0.0]
intensity = [1.0, 1.0, 1.0]
`

func TestParseTOML(t *testing.T) {
	file, err := ParseTOML(strings.NewReader(tomlScene))
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, file.Background)
	require.NotNil(t, file.Camera)
	assert.Equal(t, 60.0, file.Camera.Fov)
	assert.Equal(t, &ImageSpec{Width: 160, Height: 90}, file.Image)
	assert.Equal(t, "mirror", file.Materials["chrome"].Preset)
	require.NotNil(t, file.Materials["red"].Diffuse)
	assert.Equal(t, 0.8, *file.Materials["red"].Diffuse)
	require.Len(t, file.Shapes, 2)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, file.Shapes[1].Size)
	assert.Len(t, file.Lights, 1)
}

func TestParseTOML_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"unknown field", "backgrund = [0.0, 0.0, 0.0]", "failed to decode TOML scene"},
		{"syntax", "background = [0.0, ", "failed to decode TOML scene"},
		{"unknown shape", "[[shapes]]\ntype = \"torus\"", "unknown shape type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "scene.toml")
	yamlPath := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlScene), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(twoSpheres), 0o644))

	file, err := LoadSceneFile(tomlPath)
	require.NoError(t, err)
	assert.Len(t, file.Shapes, 2)
	assert.Equal(t, dir, file.Dir)

	file, err = LoadSceneFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, file.Shapes, 5)

	_, err = LoadYAML(tomlPath)
	assert.ErrorContains(t, err, "not a YAML scene file")

	_, err = LoadSceneFile(filepath.Join(dir, "scene.json"))
	assert.ErrorContains(t, err, "invalid file extension")
}
