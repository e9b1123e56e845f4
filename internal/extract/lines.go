package extract

import (
	"fmt"
	"math"

	"pnid-extractor/pkg/geometry"

	"gocv.io/x/gocv"
)

// ExtractLines finds straight line segments in a binary edge map using the
// probabilistic Hough transform (1 px rho resolution, 1 degree theta
// resolution). Lines are accepted once their edge-pixel support reaches
// voteThreshold; runs are split where gaps exceed maxGap and runs shorter
// than minLength are discarded.
//
// The result is a flat, unordered list. Near-identical parallel detections
// are not deduplicated; downstream stages must tolerate overlapping
// segments. Zero segments is a valid result, not an error.
func ExtractLines(edges gocv.Mat, voteThreshold, minLength, maxGap int) ([]Segment, error) {
	if edges.Empty() {
		return nil, fmt.Errorf("%w: empty edge map", ErrInvalidImage)
	}
	if voteThreshold <= 0 {
		return nil, fmt.Errorf("%w: vote threshold must be positive, got %d", ErrInvalidParameter, voteThreshold)
	}
	if minLength <= 0 {
		return nil, fmt.Errorf("%w: minimum line length must be positive, got %d", ErrInvalidParameter, minLength)
	}
	if maxGap < 0 {
		return nil, fmt.Errorf("%w: maximum line gap must be non-negative, got %d", ErrInvalidParameter, maxGap)
	}

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, 1, math.Pi/180,
		voteThreshold, float32(minLength), float32(maxGap))

	segments := make([]Segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segments = append(segments, NewSegment(
			geometry.Point2D{X: float64(v[0]), Y: float64(v[1])},
			geometry.Point2D{X: float64(v[2]), Y: float64(v[3])},
		))
	}
	return segments, nil
}
