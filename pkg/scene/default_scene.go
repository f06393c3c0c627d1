package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres over a ground plane
func NewDefaultScene(cameraOverrides ...geometry.CameraOverride) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 1, 3),
		LookAt: core.NewVec3(0, 0, -3),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	// Create materials
	ground := material.NewMatte(core.NewVec3(0.8, 0.8, 0.5))
	red := material.NewPlastic(core.NewVec3(0.8, 0.2, 0.15))
	blue := material.NewMatte(core.NewVec3(0.15, 0.25, 0.7))
	mirror := material.NewMirror()
	glass := material.NewGlass(1.5)

	return NewBuilder().
		SetCamera(cameraConfig).
		SetImageSize(400, 225).
		SetBackground(core.NewVec3(0.5, 0.7, 1.0)).
		AddShape(
			geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), ground),
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, red),
			geometry.NewSphere(core.NewVec3(-2.2, 0, -3.5), 1, mirror),
			geometry.NewSphere(core.NewVec3(1.6, -0.4, -1.8), 0.6, glass),
			geometry.NewSphere(core.NewVec3(2.5, -0.5, -4.5), 0.5, blue),
		).
		AddLight(
			lights.NewPointLight(core.NewVec3(-3, 5, 2), core.NewVec3(0.7, 0.7, 0.7)),
			lights.NewDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewVec3(0.3, 0.3, 0.3)),
		).
		Build()
}
