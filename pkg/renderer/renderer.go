package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Render traces every pixel of the scene with a Whitted integrator. The
// image is a pure function of the scene and options: rendering twice, with
// any number of workers, produces bit-identical results.
func Render(ctx context.Context, s *scene.Scene, opts Options) (*Image, RenderStats, error) {
	if s == nil || s.GetCamera() == nil {
		return nil, RenderStats{}, ErrNilScene
	}
	if err := opts.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	img := NewImage(opts.Width, opts.Height)
	tiles := NewTileGrid(opts.Width, opts.Height, opts.tileSize())
	numWorkers := min(opts.workers(), len(tiles))

	stats := RenderStats{
		Width:   opts.Width,
		Height:  opts.Height,
		Tiles:   len(tiles),
		Workers: numWorkers,
	}

	logger.Infof("rendering %dx%d frame: %d shapes, %d lights, %d tiles on %d workers, max depth %d",
		opts.Width, opts.Height, s.GetPrimitiveCount(), len(s.GetLights()), len(tiles), numWorkers, opts.MaxDepth)

	start := time.Now()
	pool := newWorkerPool(s, integrator.NewWhitted(opts.MaxDepth), img, numWorkers)
	results := make(chan tileResult, len(tiles))
	done := make(chan error, 1)
	go func() {
		done <- pool.run(ctx, tiles, results)
		close(results)
	}()

	// Dispatch callbacks from this goroutine only
	finished := 0
	for result := range results {
		finished++
		stats.Rays.Merge(result.rays)
		stats.FailedPixels += result.failed

		logger.Debugf("tile %d/%d done %v", finished, len(tiles), result.tile.Bounds)
		if opts.OnTileDone != nil {
			size := opts.tileSize()
			opts.OnTileDone(TileCompletion{
				TileX:      result.tile.Bounds.Min.X / size,
				TileY:      result.tile.Bounds.Min.Y / size,
				Bounds:     result.tile.Bounds,
				TileNumber: finished,
				TotalTiles: len(tiles),
			})
		}
	}
	stats.Duration = time.Since(start)

	if err := <-done; err != nil {
		return nil, stats, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	if stats.FailedPixels > 0 {
		logger.Warningf("%d pixels failed to shade and were set to the background color", stats.FailedPixels)
	}
	logger.Infof("rendered frame in %s (%d rays)", stats.Duration, stats.Rays.Total())

	return img, stats, nil
}

// RenderSimple renders with default tiling and no cancellation
func RenderSimple(s *scene.Scene, width, height, maxDepth, threads int) (*Image, error) {
	img, _, err := Render(context.Background(), s, Options{
		Width:      width,
		Height:     height,
		MaxDepth:   maxDepth,
		NumWorkers: threads,
		TileSize:   DefaultTileSize,
	})
	return img, err
}
