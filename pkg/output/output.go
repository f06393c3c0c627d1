package output

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Format names an image file encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatPPM  Format = "ppm"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// EncodePNG writes img as an 8-bit sRGB PNG
func EncodePNG(w io.Writer, img *renderer.Image) error {
	return png.Encode(w, img.ToRGBA())
}

// EncodePPM writes img as a binary (P6) PPM with sRGB encoded samples
func EncodePPM(w io.Writer, img *renderer.Image) error {
	rgba := img.ToRGBA()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width(), img.Height()); err != nil {
		return err
	}
	for i := 0; i < len(rgba.Pix); i += 4 {
		if _, err := bw.Write(rgba.Pix[i : i+3]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeBMP writes img as a 24-bit sRGB BMP
func EncodeBMP(w io.Writer, img *renderer.Image) error {
	return bmp.Encode(w, img.ToRGBA())
}

// EncodeTIFF writes img as a deflate-compressed 8-bit sRGB TIFF
func EncodeTIFF(w io.Writer, img *renderer.Image) error {
	return tiff.Encode(w, img.ToRGBA(), &tiff.Options{Compression: tiff.Deflate})
}

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".ppm":
		return FormatPPM, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("output: unsupported image extension %q", ext)
	}
}

// Encode writes img in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPNG:
		return EncodePNG(w, img)
	case FormatPPM:
		return EncodePPM(w, img)
	case FormatBMP:
		return EncodeBMP(w, img)
	case FormatTIFF:
		return EncodeTIFF(w, img)
	default:
		return fmt.Errorf("output: unsupported format %q", format)
	}
}

// Save writes img to path, choosing the encoding from the extension
func Save(path string, img *renderer.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return SaveAs(path, img, format)
}

// SaveAs writes img to path in the given format
func SaveAs(path string, img *renderer.Image, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("output: encoding %s: %w", path, err)
	}
	return nil
}
