package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction (usually (0,1,0))
	VFov   float64   // Vertical field of view in degrees
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}
}

// CameraOverride replaces the fields of a CameraConfig that are set. Nil
// fields keep the base value, so the origin is a valid override.
type CameraOverride struct {
	Center *core.Vec3
	LookAt *core.Vec3
	Up     *core.Vec3
	VFov   *float64
}

// MergeCameraConfig overlays the set fields of override onto base
func MergeCameraConfig(base CameraConfig, override CameraOverride) CameraConfig {
	result := base
	if override.Center != nil {
		result.Center = *override.Center
	}
	if override.LookAt != nil {
		result.LookAt = *override.LookAt
	}
	if override.Up != nil {
		result.Up = *override.Up
	}
	if override.VFov != nil {
		result.VFov = *override.VFov
	}
	return result
}

// Validate reports configurations that cannot produce a camera basis
func (c CameraConfig) Validate() error {
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("camera: field of view must be in (0, 180) degrees, got %v", c.VFov)
	}
	if c.LookAt.Subtract(c.Center).IsZero() {
		return fmt.Errorf("camera: look-at point equals camera position: %w", core.ErrZeroLengthVector)
	}
	if c.Up.IsZero() {
		return fmt.Errorf("camera: up vector: %w", core.ErrZeroLengthVector)
	}
	if c.LookAt.Subtract(c.Center).Cross(c.Up).IsZero() {
		return fmt.Errorf("camera: up vector %v is parallel to the viewing direction", c.Up)
	}
	return nil
}

// Camera generates primary rays through a pinhole image plane at unit
// distance in front of the camera. It is immutable and safe for concurrent
// use.
type Camera struct {
	origin     core.Vec3
	forward    core.Vec3
	right      core.Vec3
	up         core.Vec3
	halfHeight float64
}

// NewCamera builds the look-at basis. Degenerate configurations fall back to
// looking down -Z with +Y up, and an out-of-range field of view to 90 degrees.
func NewCamera(config CameraConfig) *Camera {
	forward, err := config.LookAt.Subtract(config.Center).TryNormalize()
	if err != nil {
		forward = core.DefaultDirection
	}

	upHint, err := config.Up.TryNormalize()
	if err != nil {
		upHint = core.NewVec3(0, 1, 0)
	}

	right, err := forward.Cross(upHint).TryNormalize()
	if err != nil {
		// Up is parallel to forward; pick any perpendicular axis
		if math.Abs(forward.X) > 0.9 {
			upHint = core.NewVec3(0, 0, 1)
		} else {
			upHint = core.NewVec3(1, 0, 0)
		}
		right = forward.Cross(upHint).Normalize()
	}
	up := right.Cross(forward)

	vfov := config.VFov
	if !(vfov > 0 && vfov < 180) {
		vfov = 90
	}

	return &Camera{
		origin:     config.Center,
		forward:    forward,
		right:      right,
		up:         up,
		halfHeight: math.Tan(vfov * math.Pi / 360),
	}
}

// GetRay returns the primary ray through the center of pixel (x, y) of a
// width x height image. Row 0 is the top of the image. The horizontal extent
// of the image plane is scaled by width/height so pixels stay square.
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	aspect := float64(width) / float64(height)
	halfWidth := c.halfHeight * aspect

	u := (2*(float64(x)+0.5)/float64(width) - 1) * halfWidth
	v := (1 - 2*(float64(y)+0.5)/float64(height)) * c.halfHeight

	direction := c.forward.Add(c.right.Multiply(u)).Add(c.up.Multiply(v))
	return core.NewRay(c.origin, direction)
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// GetPosition returns the camera origin
func (c *Camera) GetPosition() core.Vec3 {
	return c.origin
}
