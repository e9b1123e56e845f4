package extract

import (
	"fmt"

	"gocv.io/x/gocv"
)

// DetectEdges produces a binary edge map from a preprocessed grayscale image
// using the Canny detector: gradient magnitude and direction, non-maximum
// suppression, then double-threshold hysteresis. Pixels above high are strong
// edges; pixels between low and high survive only when connected to a strong
// edge. The caller owns the returned Mat.
func DetectEdges(gray gocv.Mat, low, high float32) (gocv.Mat, error) {
	if gray.Empty() {
		return gocv.Mat{}, fmt.Errorf("%w: empty grayscale image", ErrInvalidImage)
	}
	if low < 0 {
		return gocv.Mat{}, fmt.Errorf("%w: low threshold must be non-negative, got %v", ErrInvalidParameter, low)
	}
	if low >= high {
		return gocv.Mat{}, fmt.Errorf("%w: low threshold %v must be below high threshold %v", ErrInvalidParameter, low, high)
	}

	edges := gocv.NewMat()
	gocv.Canny(gray, &edges, low, high)
	return edges, nil
}
