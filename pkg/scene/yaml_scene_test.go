package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const yamlScene = `
background: [0.1, 0.2, 0.3]
camera: {position: [0, 1, 3], look_at: [0, 0, -1], fov: 60}
image: {width: 160, height: 90}
materials:
  red: {color: [1, 0, 0], diffuse: 0.8}
  chrome: {preset: mirror}
  water: {preset: glass, refractive_index: 1.33}
shapes:
  - {type: sphere, center: [0, 0, -5], radius: 1, material: red}
  - {type: sphere, center: [2, 0, -5], radius: 1, material: chrome}
  - {type: sphere, center: [-2, 0, -5], radius: 1, material: water}
  - {type: plane, normal: [0, 2, 0], d: 2, material: red}
  - {type: sphere, center: [0, 0, -9], radius: 0}
lights:
  - {type: point, position: [2, 2, 0], intensity: [1, 1, 1]}
  - {type: directional, direction: [0, -1, -1], intensity: [0.3, 0.3, 0.3]}
  - {type: spot, position: [0, 5, 0], look_at: [0, 0, -5], intensity: [1, 1, 1], angle: 20, falloff: 5}
`

func TestParseYAMLScene(t *testing.T) {
	s, err := ParseYAMLScene(strings.NewReader(yamlScene))
	require.NoError(t, err)

	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), s.GetBackground())
	assert.Equal(t, geometry.CameraConfig{
		Center: core.NewVec3(0, 1, 3),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}, s.GetCameraConfig())

	width, height := s.GetImageSize()
	assert.Equal(t, 160, width)
	assert.Equal(t, 90, height)

	// The zero-radius sphere is dropped by the builder
	shapes := s.GetShapes()
	require.Len(t, shapes, 4)
	assert.Same(t, shapes[0].GetMaterial(), shapes[3].GetMaterial(), "materials are shared")
	assert.Equal(t, 0.8, shapes[0].GetMaterial().Diffuse)
	assert.True(t, shapes[1].GetMaterial().IsReflective())
	assert.Equal(t, 1.33, shapes[2].GetMaterial().RefractiveIndex)

	plane, ok := shapes[3].(*geometry.Plane)
	require.True(t, ok)
	assert.InDelta(t, 1.0, plane.D, 1e-12)

	require.Len(t, s.GetLights(), 3)
	assert.Equal(t, lights.LightTypePoint, s.GetLights()[0].Type())
	assert.Equal(t, lights.LightTypeDirectional, s.GetLights()[1].Type())
	assert.Equal(t, lights.LightTypeSpot, s.GetLights()[2].Type())
}

func TestParseYAMLScene_InvalidMaterial(t *testing.T) {
	_, err := ParseYAMLScene(strings.NewReader("materials: {bad: {reflectivity: 2}}"))
	assert.ErrorContains(t, err, "bad")
}

func TestNewYAMLScene_CameraOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScene), 0644))

	vfov := 30.0
	s, err := NewYAMLScene(path, geometry.CameraOverride{VFov: &vfov})
	require.NoError(t, err)

	assert.Equal(t, 30.0, s.GetCameraConfig().VFov)
	assert.Equal(t, core.NewVec3(0, 1, 3), s.GetCameraConfig().Center)
}

func TestLoad(t *testing.T) {
	s, err := Load("mirror")
	require.NoError(t, err)
	assert.Equal(t, 2, s.GetPrimitiveCount())

	_, err = Load("no-such-scene")
	assert.ErrorContains(t, err, `unknown scene "no-such-scene"`)
	assert.ErrorContains(t, err, "single-sphere")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewYAMLScene_Mesh(t *testing.T) {
	dir := t.TempDir()
	ply := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "quad.ply"), []byte(ply), 0o644))

	yaml := `
materials:
  red: {color: [1, 0, 0]}
shapes:
  - {type: mesh, file: meshes/quad.ply, scale: 2, offset: [-1, -1, -4], material: red}
`
	path := filepath.Join(dir, "mesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := NewYAMLScene(path)
	require.NoError(t, err)
	require.Len(t, s.GetShapes(), 2)

	first, ok := s.GetShapes()[0].(*geometry.Triangle)
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(-1, -1, -4), first.V0)
	assert.Equal(t, core.NewVec3(1, 1, -4), first.V2)
	assert.Equal(t, core.NewVec3(1, 0, 0), first.GetMaterial().Color)

	hit, ok := s.NearestHit(core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.1, -1)))
	require.True(t, ok)
	assert.InDelta(t, -4, hit.Point.Z, 1e-9)

	_, err = ParseYAMLScene(strings.NewReader(`shapes: [{type: mesh, file: missing.ply}]`))
	assert.Error(t, err)
}
