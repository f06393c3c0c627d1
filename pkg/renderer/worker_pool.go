package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// tileResult contains the result from rendering a tile
type tileResult struct {
	tile   Tile
	rays   integrator.RayStats
	failed int
}

// workerPool renders tiles in parallel into a shared image. Each tile owns
// a disjoint region of the image so pixel writes need no locking.
type workerPool struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	image      *Image
	numWorkers int
}

func newWorkerPool(s *scene.Scene, integ integrator.Integrator, img *Image, numWorkers int) *workerPool {
	return &workerPool{
		scene:      s,
		integrator: integ,
		image:      img,
		numWorkers: numWorkers,
	}
}

// run renders tiles and sends one result per finished tile. results must be
// able to buffer every tile. Cancellation is observed between tiles.
func (wp *workerPool) run(ctx context.Context, tiles []Tile, results chan<- tileResult) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan Tile)

	g.Go(func() error {
		defer close(tasks)
		for _, tile := range tiles {
			select {
			case tasks <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for tile := range tasks {
				if err := ctx.Err(); err != nil {
					return err
				}
				results <- wp.renderTile(tile)
			}
			return nil
		})
	}

	return g.Wait()
}

// renderTile shades every pixel of a tile
func (wp *workerPool) renderTile(tile Tile) tileResult {
	result := tileResult{tile: tile}
	region := wp.image.Region(tile.Bounds)
	camera := wp.scene.GetCamera()

	for y := region.Bounds.Min.Y; y < region.Bounds.Max.Y; y++ {
		for x := region.Bounds.Min.X; x < region.Bounds.Max.X; x++ {
			color, ok := wp.renderPixel(camera, x, y, &result.rays)
			if !ok {
				result.failed++
			}
			region.Set(x, y, color)
		}
	}
	return result
}

// renderPixel traces the primary ray through (x, y). A panic while shading
// yields the background color and ok == false.
func (wp *workerPool) renderPixel(camera *geometry.Camera, x, y int, rays *integrator.RayStats) (color core.Vec3, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf("pixel (%d, %d) failed: %v", x, y, r)
			color, ok = wp.scene.GetBackground(), false
		}
	}()

	ray := camera.GetRay(x, y, wp.image.Width(), wp.image.Height())
	return wp.integrator.RayColor(ray, wp.scene, rays), true
}
