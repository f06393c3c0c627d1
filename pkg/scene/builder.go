package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const (
	defaultWidth  = 400
	defaultHeight = 225

	// Scenes with at least this many bounded shapes get a BVH
	bvhThreshold = 16
)

// Builder collects scene elements and produces immutable Scenes
type Builder struct {
	shapes       []geometry.Shape
	lights       []lights.Light
	background   core.Vec3
	cameraConfig geometry.CameraConfig
	width        int
	height       int
}

// NewBuilder creates a builder with a black background, the default camera
// and a 16:9 recommended image size
func NewBuilder() *Builder {
	return &Builder{
		cameraConfig: geometry.DefaultCameraConfig(),
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

// AddShape appends shapes in scene order
func (b *Builder) AddShape(shapes ...geometry.Shape) *Builder {
	b.shapes = append(b.shapes, shapes...)
	return b
}

// AddLight appends lights
func (b *Builder) AddLight(ls ...lights.Light) *Builder {
	b.lights = append(b.lights, ls...)
	return b
}

// SetBackground sets the color returned for rays that hit nothing
func (b *Builder) SetBackground(color core.Vec3) *Builder {
	b.background = color
	return b
}

// SetCamera sets the camera configuration
func (b *Builder) SetCamera(config geometry.CameraConfig) *Builder {
	b.cameraConfig = config
	return b
}

// SetImageSize sets the recommended output size
func (b *Builder) SetImageSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// Build returns an immutable scene. Degenerate shapes and nil entries are
// dropped with a warning; the builder can keep being used afterwards.
func (b *Builder) Build() *Scene {
	shapes := make([]geometry.Shape, 0, len(b.shapes))
	for i, shape := range b.shapes {
		if shape == nil {
			logger.Warningf("dropping nil shape at index %d", i)
			continue
		}
		if err := shape.Validate(); err != nil {
			logger.Warningf("dropping shape %d: %v", i, err)
			continue
		}
		shapes = append(shapes, shape)
	}

	sceneLights := make([]lights.Light, 0, len(b.lights))
	for i, light := range b.lights {
		if light == nil {
			logger.Warningf("dropping nil light at index %d", i)
			continue
		}
		sceneLights = append(sceneLights, light)
	}

	if err := b.cameraConfig.Validate(); err != nil {
		logger.Warningf("camera configuration: %v; using fallback basis", err)
	}

	width, height := b.width, b.height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	linear, bvh := partitionShapes(shapes)

	return &Scene{
		shapes:       shapes,
		linear:       linear,
		bvh:          bvh,
		lights:       sceneLights,
		background:   b.background,
		cameraConfig: b.cameraConfig,
		camera:       geometry.NewCamera(b.cameraConfig),
		width:        width,
		height:       height,
	}
}

// partitionShapes decides which shapes are scanned linearly and which go
// into a BVH. Small scenes are scanned linearly in full.
func partitionShapes(shapes []geometry.Shape) (linear []int, bvh *geometry.BVH) {
	var entries []geometry.BVHEntry
	for i, shape := range shapes {
		if _, ok := shape.(geometry.Bounded); ok {
			entries = append(entries, geometry.BVHEntry{Shape: shape, Index: i})
		} else {
			linear = append(linear, i)
		}
	}

	if len(entries) < bvhThreshold {
		linear = make([]int, len(shapes))
		for i := range shapes {
			linear[i] = i
		}
		return linear, nil
	}

	logger.Debugf("building BVH over %d of %d shapes", len(entries), len(shapes))
	return linear, geometry.NewBVH(entries)
}
