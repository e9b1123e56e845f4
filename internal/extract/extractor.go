package extract

import (
	"fmt"

	"pnid-extractor/internal/imageio"
	"pnid-extractor/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics summarizes a feature set for downstream consumers.
type Statistics struct {
	TotalLines        int     `json:"total_lines"`
	HorizontalLines   int     `json:"horizontal_lines"`
	VerticalLines     int     `json:"vertical_lines"`
	DiagonalLines     int     `json:"diagonal_lines"`
	TotalLineLength   float64 `json:"total_line_length"`
	AverageLineLength float64 `json:"average_line_length"`
	TotalContours     int     `json:"total_contours"`
	TotalContourArea  float64 `json:"total_contour_area"`
}

// FeatureSet is the serializable structural output of one extraction pass.
type FeatureSet struct {
	ImageSize geometry.Size `json:"image_size"`
	Lines     []Segment     `json:"lines"`
	Contours  []Contour     `json:"contours"`
	Stats     Statistics    `json:"statistics"`
}

// Extractor runs the raster pipeline: preprocess, edge detection, line and
// contour extraction. Each Extract call is self-contained, so separate
// extractor instances may run concurrently on different images.
type Extractor struct {
	cfg Config
}

// NewExtractor validates the config and returns an extractor. A config that
// violates any precondition fails here, before any image work.
func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{cfg: cfg}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract runs the full pipeline on a decoded image. Failure in any stage
// aborts the pass; partial results are never returned.
func (e *Extractor) Extract(img gocv.Mat) (*FeatureSet, error) {
	if img.Empty() {
		return nil, fmt.Errorf("%w: empty input image", ErrInvalidImage)
	}

	gray, err := Preprocess(img)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	defer gray.Close()

	edges, err := DetectEdges(gray, e.cfg.CannyLow, e.cfg.CannyHigh)
	if err != nil {
		return nil, fmt.Errorf("detect edges: %w", err)
	}
	defer edges.Close()

	lines, err := ExtractLines(edges, e.cfg.HoughVoteThreshold, e.cfg.HoughMinLineLength, e.cfg.HoughMaxLineGap)
	if err != nil {
		return nil, fmt.Errorf("extract lines: %w", err)
	}

	contours, err := ExtractContours(edges, e.cfg.ContourMinArea)
	if err != nil {
		return nil, fmt.Errorf("extract contours: %w", err)
	}

	return &FeatureSet{
		ImageSize: geometry.Size{Width: img.Cols(), Height: img.Rows()},
		Lines:     lines,
		Contours:  contours,
		Stats:     ComputeStatistics(lines, contours),
	}, nil
}

// ExtractFile decodes an image file and runs Extract on it. Oversized scans
// are downscaled first when the config sets MaxDimension.
func (e *Extractor) ExtractFile(path string) (*FeatureSet, error) {
	mat, err := imageio.LoadMat(path, e.cfg.MaxDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	defer mat.Close()

	return e.Extract(mat)
}

// ComputeStatistics aggregates counters over extracted lines and contours.
func ComputeStatistics(lines []Segment, contours []Contour) Statistics {
	s := Statistics{
		TotalLines:    len(lines),
		TotalContours: len(contours),
	}

	lengths := make([]float64, len(lines))
	for i, line := range lines {
		lengths[i] = line.Length
		switch line.Orientation {
		case OrientationHorizontal:
			s.HorizontalLines++
		case OrientationVertical:
			s.VerticalLines++
		case OrientationDiagonal:
			s.DiagonalLines++
		}
	}
	if len(lengths) > 0 {
		s.TotalLineLength = floats.Sum(lengths)
		s.AverageLineLength = stat.Mean(lengths, nil)
	}

	for _, c := range contours {
		s.TotalContourArea += c.Area
	}
	return s
}
