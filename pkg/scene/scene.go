package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering. A Scene is immutable
// once built and may be shared by any number of rendering goroutines.
type Scene struct {
	shapes       []geometry.Shape // Objects in the scene, in insertion order
	linear       []int            // Indices of shapes tested one by one, ascending
	bvh          *geometry.BVH    // Remaining bounded shapes; nil for small scenes
	lights       []lights.Light   // Lights in the scene
	background   core.Vec3        // Color of rays that escape the scene
	cameraConfig geometry.CameraConfig
	camera       *geometry.Camera
	width        int // Recommended image width
	height       int // Recommended image height
}

// Hit describes the nearest intersection of a ray with the scene
type Hit struct {
	T     float64        // Parameter t along the ray
	Point core.Vec3      // Point of intersection
	Shape geometry.Shape // Shape that was hit
}

// NearestHit returns the intersection with the smallest t within the ray's
// range. When two shapes report bit-identical t values the one added to the
// scene first wins.
func (s *Scene) NearestHit(ray core.Ray) (Hit, bool) {
	closestIndex := -1
	closestT := ray.TMax

	for _, i := range s.linear {
		t, ok := s.shapes[i].Intersect(ray.WithMax(closestT))
		if ok && (closestIndex < 0 || t < closestT) {
			closestIndex, closestT = i, t
		}
	}

	if s.bvh != nil {
		t, i, _, ok := s.bvh.Hit(ray.WithMax(closestT))
		if ok && (closestIndex < 0 || t < closestT || (t == closestT && i < closestIndex)) {
			closestIndex, closestT = i, t
		}
	}

	if closestIndex < 0 {
		return Hit{}, false
	}
	return Hit{T: closestT, Point: ray.At(closestT), Shape: s.shapes[closestIndex]}, true
}

// IsOccluded reports whether any shape intersects the ray within its range.
// It stops at the first hit found.
func (s *Scene) IsOccluded(ray core.Ray) bool {
	for _, i := range s.linear {
		if _, ok := s.shapes[i].Intersect(ray); ok {
			return true
		}
	}
	return s.bvh != nil && s.bvh.Any(ray)
}

// GetShapes returns the scene's shapes. The slice must not be modified.
func (s *Scene) GetShapes() []geometry.Shape {
	return s.shapes
}

// GetLights returns the scene's lights. The slice must not be modified.
func (s *Scene) GetLights() []lights.Light {
	return s.lights
}

// GetBackground returns the color of rays that hit nothing
func (s *Scene) GetBackground() core.Vec3 {
	return s.background
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.camera
}

// GetCameraConfig returns the configuration the camera was built from
func (s *Scene) GetCameraConfig() geometry.CameraConfig {
	return s.cameraConfig
}

// GetImageSize returns the recommended output size for the scene
func (s *Scene) GetImageSize() (width, height int) {
	return s.width, s.height
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.shapes)
}
