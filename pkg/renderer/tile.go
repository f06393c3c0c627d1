package renderer

import "image"

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Row-major tile index
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// TileCompletion describes a finished tile for progress callbacks
type TileCompletion struct {
	TileX  int // Tile coordinates (not pixel coordinates)
	TileY  int
	Bounds image.Rectangle

	// Progress information
	TileNumber int // Number of tiles finished so far, including this one
	TotalTiles int
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize
	tiles := make([]Tile, 0, tilesX*tilesY)

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}
