package extract

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Preprocess normalizes an input image for edge detection: single-channel
// grayscale, 5x5 Gaussian blur to suppress pixel noise, then CLAHE local
// contrast enhancement. The caller owns the returned Mat.
func Preprocess(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("%w: empty input image", ErrInvalidImage)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	switch img.Channels() {
	case 1:
		img.CopyTo(&gray)
	case 3:
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(img, &gray, gocv.ColorBGRAToGray)
	default:
		return gocv.Mat{}, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, img.Channels())
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{X: 8, Y: 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(blurred, &enhanced)

	return enhanced, nil
}
