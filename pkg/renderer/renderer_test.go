package renderer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestRender_SingleSphereShowsCenteredDisc(t *testing.T) {
	s := scene.NewSingleSphereScene()
	background := s.GetBackground()

	img, stats, err := Render(context.Background(), s, Options{Width: 100, Height: 100, MaxDepth: 5, NumWorkers: 4, TileSize: 16})
	require.NoError(t, err)
	assert.Zero(t, stats.FailedPixels)
	assert.Equal(t, int64(100*100), stats.Rays.PrimaryRays)

	// The sphere subtends asin(1/5) and projects to a disc of ~10.2 pixels
	var sumX, sumY, count float64
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			dx := float64(x) + 0.5 - 50
			dy := float64(y) + 0.5 - 50
			r := math.Hypot(dx, dy)
			c := img.At(x, y)

			switch {
			case r < 9:
				assert.NotEqual(t, background, c, "pixel (%d, %d) inside the disc", x, y)
			case r > 11.5:
				assert.Equal(t, background, c, "pixel (%d, %d) outside the disc", x, y)
			}
			if c != background {
				sumX += float64(x) + 0.5
				sumY += float64(y) + 0.5
				count++
			}
		}
	}
	require.Positive(t, count)
	assert.InDelta(t, 50, sumX/count, 1)
	assert.InDelta(t, 50, sumY/count, 1)

	// The light is up and to the right, so that side is brighter
	assert.Greater(t, img.At(54, 46).X, img.At(46, 54).X)
}

func TestRender_EmptySceneIsBackground(t *testing.T) {
	tests := []struct {
		name  string
		scene *scene.Scene
	}{
		{"preset", scene.NewEmptyScene()},
		{"bright background", scene.NewBuilder().SetBackground(core.NewVec3(1.5, -0.25, 0.5)).Build()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RenderSimple(tt.scene, 37, 23, 5, 3)
			require.NoError(t, err)

			for y := 0; y < img.Height(); y++ {
				for x, c := range img.Row(y) {
					require.Equal(t, tt.scene.GetBackground(), c, "pixel (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestRender_MirrorReflectsGround(t *testing.T) {
	s := scene.NewMirrorScene()

	img, err := RenderSimple(s, 100, 100, 5, 2)
	require.NoError(t, err)

	// Lower hemisphere of the sphere faces the green ground
	for _, y := range []int{54, 56, 58} {
		c := img.At(50, y)
		assert.Greater(t, c.Y, c.X, "pixel (50, %d) = %v", y, c)
		assert.Greater(t, c.Y, c.Z, "pixel (50, %d) = %v", y, c)
	}
}

func TestRender_IsDeterministic(t *testing.T) {
	s := scene.NewDefaultScene()
	opts := Options{Width: 64, Height: 36, MaxDepth: 4, TileSize: 8}

	opts.NumWorkers = 1
	first, _, err := Render(context.Background(), s, opts)
	require.NoError(t, err)

	opts.NumWorkers = 7
	second, _, err := Render(context.Background(), s, opts)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestRender_InvalidOptions(t *testing.T) {
	s := scene.NewEmptyScene()
	tests := []struct {
		name     string
		scene    *scene.Scene
		opts     Options
		expected error
	}{
		{"zero width", s, Options{Width: 0, Height: 10}, ErrInvalidDimensions},
		{"negative height", s, Options{Width: 10, Height: -1}, ErrInvalidDimensions},
		{"negative depth", s, Options{Width: 10, Height: 10, MaxDepth: -1}, ErrInvalidDepth},
		{"nil scene", nil, Options{Width: 10, Height: 10}, ErrNilScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, _, err := Render(context.Background(), tt.scene, tt.opts)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, img)
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Render(ctx, scene.NewDefaultScene(), Options{Width: 64, Height: 64, MaxDepth: 2, NumWorkers: 2, TileSize: 8})

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_TileCallbacks(t *testing.T) {
	var completions []TileCompletion
	opts := Options{
		Width: 50, Height: 20, MaxDepth: 1, NumWorkers: 3, TileSize: 16,
		OnTileDone: func(c TileCompletion) { completions = append(completions, c) },
	}

	_, stats, err := Render(context.Background(), scene.NewSingleSphereScene(), opts)
	require.NoError(t, err)

	require.Len(t, completions, 8)
	assert.Equal(t, 8, stats.Tiles)
	covered := 0
	for i, c := range completions {
		assert.Equal(t, i+1, c.TileNumber)
		assert.Equal(t, 8, c.TotalTiles)
		covered += c.Bounds.Dx() * c.Bounds.Dy()
	}
	assert.Equal(t, 50*20, covered)
}

// panicShape fails on every intersection test
type panicShape struct{}

func (panicShape) Intersect(core.Ray) (float64, bool) { panic("broken shape") }
func (panicShape) OutwardNormal(core.Vec3) core.Vec3 { return core.NewVec3(0, 1, 0) }
func (panicShape) NormalAt(core.Vec3, core.Ray) core.Vec3 { return core.NewVec3(0, 1, 0) }
func (panicShape) GetMaterial() *material.Material { return material.Default() }
func (panicShape) Validate() error { return nil }

func TestRender_RecoversFailedPixels(t *testing.T) {
	background := core.NewVec3(0.3, 0.2, 0.1)
	s := scene.NewBuilder().SetBackground(background).AddShape(panicShape{}).Build()

	img, stats, err := Render(context.Background(), s, Options{Width: 8, Height: 4, NumWorkers: 2})
	require.NoError(t, err)

	assert.Equal(t, 32, stats.FailedPixels)
	assert.Equal(t, background, img.At(3, 2))
}
