package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(5, 1)
	img.Set(0, 0, core.NewVec3(0, 1, 0.5))
	img.Set(1, 0, core.NewVec3(0.002, -3, 7))
	img.Set(2, 0, core.NewVec3(math.NaN(), math.Inf(1), math.Inf(-1)))

	rgba := img.ToRGBA()

	assert.Equal(t, []uint8{0, 255, 188, 255}, rgba.Pix[0:4])
	assert.Equal(t, []uint8{7, 0, 255, 255}, rgba.Pix[4:8], "linear segment near black, clamped extremes")
	assert.Equal(t, []uint8{0, 255, 0, 255}, rgba.Pix[8:12])
}

func TestImage_Normalize(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, core.NewVec3(0.25, 0.5, 0.75))
	img.Set(1, 0, core.NewVec3(0.5, 1.25, 0.25))

	img.Normalize()

	assert.Equal(t, core.NewVec3(0, 0.25, 0.5), img.At(0, 0))
	assert.Equal(t, core.NewVec3(0.25, 1, 0), img.At(1, 0))
	lo, hi := img.MinMax()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestImage_NormalizeUniform(t *testing.T) {
	img := NewImage(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, core.NewVec3(0.4, 0.4, 0.4))
		}
	}

	img.Normalize()

	for y := 0; y < 2; y++ {
		for x, c := range img.Row(y) {
			assert.Equal(t, core.NewVec3(0.4, 0.4, 0.4), c, "pixel (%d, %d)", x, y)
			assert.False(t, math.IsNaN(c.X))
		}
	}
}

func TestImage_RowAndRegion(t *testing.T) {
	img := NewImage(4, 3)
	region := img.Region(image.Rect(2, 1, 10, 3))

	assert.Equal(t, image.Rect(2, 1, 4, 3), region.Bounds)
	region.Set(3, 2, core.NewVec3(1, 2, 3))
	assert.Equal(t, core.NewVec3(1, 2, 3), img.Row(2)[3])
	assert.Panics(t, func() { region.Set(0, 0, core.Vec3{}) })
}

func TestImage_EqualAndMinMax(t *testing.T) {
	a := NewImage(2, 2)
	b := NewImage(2, 2)
	assert.True(t, a.Equal(b))

	b.Set(1, 1, core.NewVec3(-0.5, 0, 2))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(NewImage(2, 3)))

	lo, hi := b.MinMax()
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 2.0, hi)
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(70, 33, 32)

	assert.Len(t, tiles, 6)
	assert.Equal(t, image.Rect(0, 0, 32, 32), tiles[0].Bounds)
	assert.Equal(t, image.Rect(64, 32, 70, 33), tiles[5].Bounds)

	area := 0
	for i, tile := range tiles {
		assert.Equal(t, i, tile.ID)
		area += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	assert.Equal(t, 70*33, area)
}
