package scene

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewYAMLScene creates a scene from a YAML scene file
func NewYAMLScene(filename string, cameraOverrides ...geometry.CameraOverride) (*Scene, error) {
	file, err := loaders.LoadYAML(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load YAML scene: %w", err)
	}
	return convertSceneFile(file, cameraOverrides...)
}

// NewSceneFile creates a scene from a YAML or TOML scene file
func NewSceneFile(filename string, cameraOverrides ...geometry.CameraOverride) (*Scene, error) {
	file, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return convertSceneFile(file, cameraOverrides...)
}

// ParseYAMLScene creates a scene from YAML read from reader
func ParseYAMLScene(reader io.Reader, cameraOverrides ...geometry.CameraOverride) (*Scene, error) {
	file, err := loaders.ParseYAML(reader)
	if err != nil {
		return nil, err
	}
	return convertSceneFile(file, cameraOverrides...)
}

// Load resolves a built-in scene name or a path to a scene file. Names
// without a file extension are looked up among the built-in scenes.
func Load(nameOrPath string) (*Scene, error) {
	if _, ok := builtins[nameOrPath]; ok || filepath.Ext(nameOrPath) == "" {
		return ByName(nameOrPath)
	}
	return NewSceneFile(nameOrPath)
}

func convertSceneFile(file *loaders.SceneFile, cameraOverrides ...geometry.CameraOverride) (*Scene, error) {
	b := NewBuilder()

	if file.Background != nil {
		background, _ := loaders.Vec("background", file.Background)
		b.SetBackground(background)
	}

	cameraConfig := convertCamera(file.Camera)
	for _, override := range cameraOverrides {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, override)
	}
	b.SetCamera(cameraConfig)

	if file.Image != nil {
		b.SetImageSize(file.Image.Width, file.Image.Height)
	}

	// Convert all materials first; shapes share them by pointer
	materials := make(map[string]*material.Material, len(file.Materials))
	for name, spec := range file.Materials {
		mat := convertMaterial(spec)
		if err := mat.Validate(); err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, spec := range file.Shapes {
		mat := material.Default()
		if spec.Material != "" {
			mat = materials[spec.Material]
		}
		if spec.Type == "mesh" {
			triangles, err := convertMesh(file.MeshPath(spec), spec, mat)
			if err != nil {
				return nil, fmt.Errorf("shape %d: %w", i, err)
			}
			b.AddShape(triangles...)
			continue
		}
		shape, err := convertShape(spec, mat)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		b.AddShape(shape)
	}

	for i, spec := range file.Lights {
		light, err := convertLight(spec)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		b.AddLight(light)
	}

	return b.Build(), nil
}

func convertCamera(spec *loaders.CameraSpec) geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if spec == nil {
		return config
	}

	if v, ok := optionalVec(spec.Position); ok {
		config.Center = v
	}
	if v, ok := optionalVec(spec.LookAt); ok {
		config.LookAt = v
	}
	if v, ok := optionalVec(spec.Up); ok {
		config.Up = v
	}
	if spec.Fov != 0 {
		config.VFov = spec.Fov
	}
	return config
}

func convertMaterial(spec loaders.MaterialSpec) *material.Material {
	color := core.NewVec3(1, 1, 1)
	if c, ok := optionalVec(spec.Color); ok {
		color = c
	}

	var mat *material.Material
	switch spec.Preset {
	case "plastic":
		mat = material.NewPlastic(color)
	case "mirror":
		mat = material.NewMirror()
		if spec.Color != nil {
			mat.Color = color
		}
	case "glass":
		mat = material.NewGlass(1.5)
		if spec.Color != nil {
			mat.Color = color
		}
	default:
		mat = material.NewMatte(color)
	}

	overrides := []struct {
		value  *float64
		target *float64
	}{
		{spec.Ambient, &mat.Ambient},
		{spec.Diffuse, &mat.Diffuse},
		{spec.Specular, &mat.Specular},
		{spec.Shininess, &mat.Shininess},
		{spec.Reflectivity, &mat.Reflectivity},
		{spec.Transparency, &mat.Transparency},
		{spec.RefractiveIndex, &mat.RefractiveIndex},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.target = *o.value
		}
	}
	return mat
}

func convertShape(spec loaders.ShapeSpec, mat *material.Material) (geometry.Shape, error) {
	switch spec.Type {
	case "sphere":
		center, _ := loaders.Vec("center", spec.Center)
		return geometry.NewSphere(center, spec.Radius, mat), nil
	case "plane":
		normal, _ := loaders.Vec("normal", spec.Normal)
		if spec.D != nil {
			return geometry.NewPlaneFromEquation(normal, *spec.D, mat), nil
		}
		point, _ := loaders.Vec("point", spec.Point)
		return geometry.NewPlane(point, normal, mat), nil
	case "triangle":
		var v [3]core.Vec3
		for i := range v {
			v[i], _ = loaders.Vec("vertex", spec.Vertices[i])
		}
		return geometry.NewTriangle(v[0], v[1], v[2], mat), nil
	case "disc":
		center, _ := loaders.Vec("center", spec.Center)
		normal, _ := loaders.Vec("normal", spec.Normal)
		return geometry.NewDisc(center, normal, spec.Radius, mat), nil
	case "quad":
		corner, _ := loaders.Vec("corner", spec.Corner)
		u, _ := loaders.Vec("u", spec.U)
		v, _ := loaders.Vec("v", spec.V)
		return geometry.NewQuad(corner, u, v, mat), nil
	case "box":
		center, _ := loaders.Vec("center", spec.Center)
		size, _ := loaders.Vec("size", spec.Size)
		return geometry.NewBox(center, size, mat), nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", spec.Type)
	}
}

// convertMesh loads a PLY file as triangles sharing one material, scaled
// about the origin and then translated by the offset
func convertMesh(path string, spec loaders.ShapeSpec, mat *material.Material) ([]geometry.Shape, error) {
	mesh, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}

	scale := 1.0
	if spec.Scale != nil {
		scale = *spec.Scale
	}
	offset, _ := optionalVec(spec.Offset)

	vertices := make([]core.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = v.Multiply(scale).Add(offset)
	}

	triangles := make([]geometry.Shape, 0, len(mesh.Faces))
	for _, f := range mesh.Faces {
		triangles = append(triangles, geometry.NewTriangle(vertices[f[0]], vertices[f[1]], vertices[f[2]], mat))
	}
	logger.Debugf("loaded mesh %s: %d vertices, %d triangles", path, len(vertices), len(triangles))
	return triangles, nil
}

func convertLight(spec loaders.LightSpec) (lights.Light, error) {
	intensity, _ := loaders.Vec("intensity", spec.Intensity)

	switch spec.Type {
	case "point":
		position, _ := loaders.Vec("position", spec.Position)
		return lights.NewPointLight(position, intensity), nil
	case "directional":
		direction, _ := loaders.Vec("direction", spec.Direction)
		return lights.NewDirectionalLight(direction, intensity), nil
	case "spot":
		position, _ := loaders.Vec("position", spec.Position)
		lookAt, _ := loaders.Vec("look_at", spec.LookAt)
		return lights.NewSpotLight(position, lookAt, intensity, spec.Angle, spec.Falloff), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", spec.Type)
	}
}

func optionalVec(values []float64) (core.Vec3, bool) {
	if values == nil {
		return core.Vec3{}, false
	}
	v, err := loaders.Vec("vector", values)
	return v, err == nil
}
