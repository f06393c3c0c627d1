package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int
	Height       int
	Tiles        int                 // Number of tiles rendered
	Workers      int                 // Number of parallel workers
	Duration     time.Duration       // Wall clock time of the render
	Rays         integrator.RayStats // Ray counters summed over all workers
	FailedPixels int                 // Pixels that fell back to the background color
}

// Pixels returns the number of pixels in the frame
func (s RenderStats) Pixels() int {
	return s.Width * s.Height
}

// RaysPerSecond returns the overall ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rays.Total()) / s.Duration.Seconds()
}
