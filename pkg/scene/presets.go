package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSingleSphereScene creates one lit sphere straight ahead of a camera at
// the origin looking down -Z with a 90 degree field of view
func NewSingleSphereScene() *Scene {
	return NewBuilder().
		SetCamera(geometry.DefaultCameraConfig()).
		SetImageSize(100, 100).
		AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewMatte(core.NewVec3(0.9, 0.9, 0.9)))).
		AddLight(lights.NewPointLight(core.NewVec3(2, 2, 0), core.NewVec3(1, 1, 1))).
		Build()
}

// NewMirrorScene creates a perfectly reflective sphere resting above a green
// ground plane. The lower half of the sphere mirrors the ground.
func NewMirrorScene() *Scene {
	mirror := material.NewMirror()
	mirror.Specular = 0

	return NewBuilder().
		SetCamera(geometry.DefaultCameraConfig()).
		SetImageSize(100, 100).
		AddShape(
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror),
			geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.NewMatte(core.NewVec3(0.1, 0.8, 0.1))),
		).
		AddLight(lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 1, 1))).
		Build()
}

// NewGlassScene creates a refractive sphere in front of a striped back wall
func NewGlassScene() *Scene {
	red := material.NewMatte(core.NewVec3(0.8, 0.1, 0.1))
	white := material.NewMatte(core.NewVec3(0.9, 0.9, 0.9))

	b := NewBuilder().
		SetCamera(geometry.CameraConfig{
			Center: core.NewVec3(0, 0.5, 2),
			LookAt: core.NewVec3(0, 0, -3),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   60,
		}).
		SetImageSize(300, 200).
		SetBackground(core.NewVec3(0.05, 0.05, 0.08)).
		AddShape(
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewGlass(1.5)),
			geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), white),
		).
		AddLight(
			lights.NewPointLight(core.NewVec3(2, 4, 1), core.NewVec3(0.8, 0.8, 0.8)),
			lights.NewSpotLight(core.NewVec3(-3, 4, 0), core.NewVec3(0, -1, -3), core.NewVec3(0.5, 0.5, 0.4), 25, 5),
		)

	// Vertical stripes on the back wall make the refraction visible
	for i := -4; i <= 4; i++ {
		m := white
		if i%2 != 0 {
			m = red
		}
		x := float64(i) * 0.8
		b.AddShape(
			geometry.NewTriangle(core.NewVec3(x-0.4, -1, -7), core.NewVec3(x+0.4, -1, -7), core.NewVec3(x+0.4, 3, -7), m),
			geometry.NewTriangle(core.NewVec3(x-0.4, -1, -7), core.NewVec3(x+0.4, 3, -7), core.NewVec3(x-0.4, 3, -7), m),
		)
	}
	return b.Build()
}

// NewEmptyScene creates a scene with no shapes and no lights
func NewEmptyScene() *Scene {
	return NewBuilder().
		SetImageSize(64, 64).
		SetBackground(core.NewVec3(0.2, 0.3, 0.5)).
		Build()
}

// builtins maps scene names to their constructors
var builtins = map[string]struct {
	description string
	create      func() *Scene
}{
	"default":       {"Spheres of several materials over a ground plane", func() *Scene { return NewDefaultScene() }},
	"single-sphere": {"One lit sphere in front of the camera", NewSingleSphereScene},
	"mirror":        {"Mirror sphere above a green ground plane", NewMirrorScene},
	"glass":         {"Glass sphere in front of a striped wall", NewGlassScene},
	"empty":         {"No shapes and no lights, only background", NewEmptyScene},
}

// Names returns the built-in scene names in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName creates the built-in scene with the given name
func ByName(name string) (*Scene, error) {
	entry, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.create(), nil
}
