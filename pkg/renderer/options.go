package renderer

import (
	"fmt"
	"runtime"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Maximum number of nested reflected/refracted rays.
	MaxDepth int

	// Number of parallel workers; <= 0 selects runtime.NumCPU().
	NumWorkers int

	// Tile edge length in pixels; <= 0 selects DefaultTileSize.
	TileSize int

	// Optional progress callback. It is invoked from the goroutine that
	// called Render, once per finished tile.
	OnTileDone func(TileCompletion)
}

// DefaultOptions returns a 400x225 frame with five bounces on every CPU
func DefaultOptions() Options {
	return Options{
		Width:      400,
		Height:     225,
		MaxDepth:   5,
		NumWorkers: runtime.NumCPU(),
		TileSize:   DefaultTileSize,
	}
}

// Validate reports options that make a render impossible
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, o.Width, o.Height)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, o.MaxDepth)
	}
	return nil
}

func (o Options) workers() int {
	if o.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return o.NumWorkers
}

func (o Options) tileSize() int {
	if o.TileSize <= 0 {
		return DefaultTileSize
	}
	return o.TileSize
}
