package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SceneFile is the parsed form of a YAML or TOML scene description
type SceneFile struct {
	Background []float64               `yaml:"background" toml:"background"`
	Camera     *CameraSpec             `yaml:"camera" toml:"camera"`
	Image      *ImageSpec              `yaml:"image" toml:"image"`
	Materials  map[string]MaterialSpec `yaml:"materials" toml:"materials"`
	Shapes     []ShapeSpec             `yaml:"shapes" toml:"shapes"`
	Lights     []LightSpec             `yaml:"lights" toml:"lights"`

	// Dir is the directory mesh paths are resolved against. LoadSceneFile
	// sets it to the scene file's directory.
	Dir string `yaml:"-" toml:"-"`
}

// CameraSpec describes a look-at pinhole camera
type CameraSpec struct {
	Position []float64 `yaml:"position" toml:"position"`
	LookAt   []float64 `yaml:"look_at" toml:"look_at"`
	Up       []float64 `yaml:"up" toml:"up"`
	Fov      float64   `yaml:"fov" toml:"fov"` // Vertical field of view in degrees
}

// ImageSpec is the recommended output size
type ImageSpec struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// MaterialSpec starts from an optional preset and overrides individual
// coefficients. Unset coefficients keep the preset's value.
type MaterialSpec struct {
	Preset          string    `yaml:"preset" toml:"preset"` // matte, plastic, mirror or glass
	Color           []float64 `yaml:"color" toml:"color"`
	Ambient         *float64  `yaml:"ambient" toml:"ambient"`
	Diffuse         *float64  `yaml:"diffuse" toml:"diffuse"`
	Specular        *float64  `yaml:"specular" toml:"specular"`
	Shininess       *float64  `yaml:"shininess" toml:"shininess"`
	Reflectivity    *float64  `yaml:"reflectivity" toml:"reflectivity"`
	Transparency    *float64  `yaml:"transparency" toml:"transparency"`
	RefractiveIndex *float64  `yaml:"refractive_index" toml:"refractive_index"`
}

// ShapeSpec describes one primitive. Which fields apply depends on Type.
type ShapeSpec struct {
	Type     string      `yaml:"type" toml:"type"` // sphere, plane, triangle, disc, quad, box or mesh
	Material string      `yaml:"material" toml:"material"`
	Center   []float64   `yaml:"center" toml:"center"`
	Radius   float64     `yaml:"radius" toml:"radius"`
	Point    []float64   `yaml:"point" toml:"point"`
	Normal   []float64   `yaml:"normal" toml:"normal"`
	D        *float64    `yaml:"d" toml:"d"` // Plane offset in N·P + d = 0 form, instead of point
	Vertices [][]float64 `yaml:"vertices" toml:"vertices"`
	Corner   []float64   `yaml:"corner" toml:"corner"` // Quad corner
	U        []float64   `yaml:"u" toml:"u"`           // Quad edge
	V        []float64   `yaml:"v" toml:"v"`           // Quad edge
	Size     []float64   `yaml:"size" toml:"size"`     // Box half-extents
	File     string      `yaml:"file" toml:"file"`     // PLY file for meshes
	Scale    *float64    `yaml:"scale" toml:"scale"`   // Uniform mesh scale, default 1
	Offset   []float64   `yaml:"offset" toml:"offset"` // Mesh translation, applied after scale
}

// MeshPath resolves a mesh file relative to the scene directory
func (f *SceneFile) MeshPath(s ShapeSpec) string {
	if filepath.IsAbs(s.File) || f.Dir == "" {
		return s.File
	}
	return filepath.Join(f.Dir, s.File)
}

// LightSpec describes one light. Which fields apply depends on Type.
type LightSpec struct {
	Type      string    `yaml:"type" toml:"type"` // point, directional or spot
	Position  []float64 `yaml:"position" toml:"position"`
	Direction []float64 `yaml:"direction" toml:"direction"`
	LookAt    []float64 `yaml:"look_at" toml:"look_at"`
	Intensity []float64 `yaml:"intensity" toml:"intensity"`
	Angle     float64   `yaml:"angle" toml:"angle"`     // Spot cone half-angle in degrees
	Falloff   float64   `yaml:"falloff" toml:"falloff"` // Spot falloff band in degrees
}

// ParseYAML decodes a scene description. Unknown keys are rejected.
func ParseYAML(reader io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to decode YAML scene: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadYAML loads and parses a YAML scene file
func LoadYAML(filename string) (*SceneFile, error) {
	format, err := sceneFormat(filename)
	if err != nil {
		return nil, err
	}
	if format != formatYAML {
		return nil, fmt.Errorf("%s is not a YAML scene file", filename)
	}
	return LoadSceneFile(filename)
}

// LoadSceneFile loads a YAML or TOML scene file, chosen by extension
func LoadSceneFile(filename string) (*SceneFile, error) {
	format, err := sceneFormat(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	parse := ParseYAML
	if format == formatTOML {
		parse = ParseTOML
	}
	scene, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	scene.Dir = filepath.Dir(filename)
	return scene, nil
}

// Validate checks types, vector arities and material references
func (f *SceneFile) Validate() error {
	if f.Background != nil {
		if _, err := Vec("background", f.Background); err != nil {
			return err
		}
	}

	if c := f.Camera; c != nil {
		for name, v := range map[string][]float64{"camera.position": c.Position, "camera.look_at": c.LookAt, "camera.up": c.Up} {
			if v == nil {
				continue
			}
			if _, err := Vec(name, v); err != nil {
				return err
			}
		}
	}

	if f.Image != nil && (f.Image.Width <= 0 || f.Image.Height <= 0) {
		return fmt.Errorf("image size must be positive, got %dx%d", f.Image.Width, f.Image.Height)
	}

	for name, m := range f.Materials {
		switch m.Preset {
		case "", "matte", "plastic", "mirror", "glass":
		default:
			return fmt.Errorf("material %q: unknown preset %q", name, m.Preset)
		}
		if m.Color != nil {
			if _, err := Vec("material "+name+" color", m.Color); err != nil {
				return err
			}
		}
	}

	for i, s := range f.Shapes {
		if err := f.validateShape(s); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}

	for i, l := range f.Lights {
		if err := validateLight(l); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	return nil
}

func (f *SceneFile) validateShape(s ShapeSpec) error {
	if s.Material != "" {
		if _, ok := f.Materials[s.Material]; !ok {
			return fmt.Errorf("undefined material %q", s.Material)
		}
	}

	switch s.Type {
	case "sphere":
		_, err := Vec("center", s.Center)
		return err
	case "plane":
		if _, err := Vec("normal", s.Normal); err != nil {
			return err
		}
		if s.D != nil {
			return nil
		}
		_, err := Vec("point", s.Point)
		return err
	case "triangle":
		if len(s.Vertices) != 3 {
			return fmt.Errorf("triangle needs 3 vertices, got %d", len(s.Vertices))
		}
		for j, v := range s.Vertices {
			if _, err := Vec(fmt.Sprintf("vertex %d", j), v); err != nil {
				return err
			}
		}
		return nil
	case "disc":
		if _, err := Vec("center", s.Center); err != nil {
			return err
		}
		_, err := Vec("normal", s.Normal)
		return err
	case "quad":
		for name, v := range map[string][]float64{"corner": s.Corner, "u": s.U, "v": s.V} {
			if _, err := Vec(name, v); err != nil {
				return err
			}
		}
		return nil
	case "box":
		if _, err := Vec("center", s.Center); err != nil {
			return err
		}
		_, err := Vec("size", s.Size)
		return err
	case "mesh":
		if s.File == "" {
			return fmt.Errorf("mesh needs a file")
		}
		if s.Scale != nil && !(*s.Scale > 0) {
			return fmt.Errorf("mesh scale must be positive, got %v", *s.Scale)
		}
		if s.Offset != nil {
			_, err := Vec("offset", s.Offset)
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown shape type %q", s.Type)
	}
}

func validateLight(l LightSpec) error {
	if _, err := Vec("intensity", l.Intensity); err != nil {
		return err
	}

	switch l.Type {
	case "point":
		_, err := Vec("position", l.Position)
		return err
	case "directional":
		_, err := Vec("direction", l.Direction)
		return err
	case "spot":
		if _, err := Vec("position", l.Position); err != nil {
			return err
		}
		if _, err := Vec("look_at", l.LookAt); err != nil {
			return err
		}
		if !(l.Angle > 0 && l.Angle < 90) {
			return fmt.Errorf("spot angle must be in (0, 90) degrees, got %v", l.Angle)
		}
		return nil
	default:
		return fmt.Errorf("unknown light type %q", l.Type)
	}
}

// Vec converts a three element list to a vector
func Vec(name string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", name, len(values))
	}
	v := core.NewVec3(values[0], values[1], values[2])
	if !v.IsFinite() {
		return core.Vec3{}, fmt.Errorf("%s: components must be finite, got %v", name, values)
	}
	return v, nil
}

const (
	formatYAML = "yaml"
	formatTOML = "toml"
)

// sceneFormat returns the scene format implied by the file extension
func sceneFormat(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	switch ext := strings.ToLower(filepath.Ext(filepath.Clean(filename))); ext {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return "", fmt.Errorf("invalid file extension %q: only .yaml, .yml and .toml scene files are allowed", ext)
	}
}
