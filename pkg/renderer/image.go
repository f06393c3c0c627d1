package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Image is a grid of linear RGB colors. Row 0 is the top of the frame.
type Image struct {
	width  int
	height int
	pix    []core.Vec3
}

// NewImage allocates a black width x height image
func NewImage(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pix:    make([]core.Vec3, width*height),
	}
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Bounds returns the pixel rectangle covered by the image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.pix[y*img.width+x]
}

// Set stores the color of pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.pix[y*img.width+x] = c
}

// Row returns row y. The slice aliases the image.
func (img *Image) Row(y int) []core.Vec3 {
	return img.pix[y*img.width : (y+1)*img.width]
}

// Region returns a writable view restricted to bounds. Workers holding
// disjoint regions may write concurrently without locking.
func (img *Image) Region(bounds image.Rectangle) *Region {
	return &Region{img: img, Bounds: bounds.Intersect(img.Bounds())}
}

// Equal reports whether both images have the same size and bit-identical pixels
func (img *Image) Equal(other *Image) bool {
	if other == nil || img.width != other.width || img.height != other.height {
		return false
	}
	for i, c := range img.pix {
		o := other.pix[i]
		if math.Float64bits(c.X) != math.Float64bits(o.X) ||
			math.Float64bits(c.Y) != math.Float64bits(o.Y) ||
			math.Float64bits(c.Z) != math.Float64bits(o.Z) {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest channel value in the image
func (img *Image) MinMax() (lo, hi float64) {
	if len(img.pix) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range img.pix {
		lo = min(lo, c.X, c.Y, c.Z)
		hi = max(hi, c.X, c.Y, c.Z)
	}
	return lo, hi
}

// Normalize linearly rescales every channel so that the smallest value in
// the image becomes 0 and the largest becomes 1. Uniform images are left
// unchanged.
func (img *Image) Normalize() {
	lo, hi := img.MinMax()
	if !(hi > lo) || math.IsInf(hi-lo, 0) {
		return
	}
	scale := 1 / (hi - lo)
	for i, c := range img.pix {
		img.pix[i] = core.NewVec3((c.X-lo)*scale, (c.Y-lo)*scale, (c.Z-lo)*scale)
	}
}

// ToRGBA clamps every channel to [0,1] and encodes it with the sRGB transfer curve
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for y := 0; y < img.height; y++ {
		for x, c := range img.Row(y) {
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(linearToSRGB(clamp01(c.X))),
				G: toByte(linearToSRGB(clamp01(c.Y))),
				B: toByte(linearToSRGB(clamp01(c.Z))),
				A: 255,
			})
		}
	}
	return out
}

func clamp01(c float64) float64 {
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(0, math.Min(1, c))
}

func linearToSRGB(c float64) float64 {
	if c < 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func toByte(c float64) uint8 {
	return uint8(math.Round(clamp01(c) * 255))
}

// Region is a rectangular window into an Image
type Region struct {
	img    *Image
	Bounds image.Rectangle
}

// Set stores the color of pixel (x, y), given in image coordinates. Writes
// outside the region panic.
func (r *Region) Set(x, y int, c core.Vec3) {
	if !image.Pt(x, y).In(r.Bounds) {
		panic("renderer: write outside region")
	}
	r.img.Set(x, y, c)
}
