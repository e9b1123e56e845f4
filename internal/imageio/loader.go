// Package imageio decodes raster diagram files into gocv Mats.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// Load opens and decodes an image file. PNG, JPEG, GIF, TIFF, and BMP are
// supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// Downscale resizes an image so its longest side is at most maxDim pixels,
// preserving aspect ratio. maxDim <= 0 or an image already within bounds
// returns the input unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// ToMat converts a Go image.Image to a gocv.Mat in BGR channel order.
func ToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}

// LoadMat decodes an image file into a BGR Mat, downscaling to maxDim first
// when requested. The caller owns the returned Mat.
func LoadMat(path string, maxDim int) (gocv.Mat, error) {
	img, err := Load(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	return ToMat(Downscale(img, maxDim)), nil
}
