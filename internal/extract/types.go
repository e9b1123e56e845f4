// Package extract detects geometric primitives (line segments and closed
// contours) in raster P&ID diagram images.
package extract

import (
	"math"

	"pnid-extractor/pkg/geometry"
)

// Orientation classifies a segment's direction in the diagram plane.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
	OrientationDiagonal   Orientation = "diagonal"
)

// ClassifyOrientation maps an angle in degrees (range (-180, 180]) to an
// orientation band. Horizontal covers |angle| < 30 or |angle| > 150, vertical
// covers 60 < |angle| < 120, everything else is diagonal.
func ClassifyOrientation(angleDeg float64) Orientation {
	a := math.Abs(angleDeg)
	switch {
	case a < 30 || a > 150:
		return OrientationHorizontal
	case a > 60 && a < 120:
		return OrientationVertical
	default:
		return OrientationDiagonal
	}
}

// Segment is a straight line primitive detected by the line extractor.
// Segments are immutable after creation; after route tracing each segment
// belongs to exactly one route.
type Segment struct {
	Start       geometry.Point2D `json:"start"`
	End         geometry.Point2D `json:"end"`
	Center      geometry.Point2D `json:"center"`
	Length      float64          `json:"length"`
	Angle       float64          `json:"angle"`
	Orientation Orientation      `json:"orientation"`
}

// NewSegment creates a segment with all derived attributes populated.
func NewSegment(start, end geometry.Point2D) Segment {
	angle := geometry.NormalizeAngleDegrees(
		math.Atan2(end.Y-start.Y, end.X-start.X) * 180 / math.Pi)
	return Segment{
		Start:       start,
		End:         end,
		Center:      start.Midpoint(end),
		Length:      start.Distance(end),
		Angle:       angle,
		Orientation: ClassifyOrientation(angle),
	}
}

// ShapeType classifies a closed contour by its approximated polygon.
type ShapeType string

const (
	ShapeTriangle  ShapeType = "triangle"
	ShapeSquare    ShapeType = "square"
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapePolygon   ShapeType = "polygon"
	ShapeIrregular ShapeType = "irregular"
)

// Contour is a closed-shape primitive; candidate vessel or equipment symbol.
type Contour struct {
	BBox        geometry.RectInt `json:"bbox"`
	Center      geometry.Point2D `json:"center"`
	Area        float64          `json:"area"`
	Perimeter   float64          `json:"perimeter"`
	Circularity float64          `json:"circularity"`
	VertexCount int              `json:"vertices"`
	ShapeType   ShapeType        `json:"shape_type"`
}

// classifyShape applies the vertex-count and circularity rules. Squares need
// a bounding-box aspect ratio within 0.95..1.05.
func classifyShape(vertices int, circularity float64, bbox geometry.RectInt) ShapeType {
	switch {
	case vertices == 3:
		return ShapeTriangle
	case vertices == 4:
		if bbox.Height > 0 {
			aspect := float64(bbox.Width) / float64(bbox.Height)
			if aspect >= 0.95 && aspect <= 1.05 {
				return ShapeSquare
			}
		}
		return ShapeRectangle
	case vertices > 8 && circularity > 0.7:
		return ShapeCircle
	case vertices >= 5 && vertices <= 8:
		return ShapePolygon
	default:
		return ShapeIrregular
	}
}
