package extract

import (
	"testing"

	"pnid-extractor/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.NewPoint2D(x, y)
}

func TestClassifyOrientation(t *testing.T) {
	tests := []struct {
		angle float64
		want  Orientation
	}{
		{0, OrientationHorizontal},
		{29.9, OrientationHorizontal},
		{-29.9, OrientationHorizontal},
		{151, OrientationHorizontal},
		{-151, OrientationHorizontal},
		{180, OrientationHorizontal},
		{90, OrientationVertical},
		{-90, OrientationVertical},
		{61, OrientationVertical},
		{119, OrientationVertical},
		{45, OrientationDiagonal},
		{-45, OrientationDiagonal},
		{30, OrientationDiagonal},
		{60, OrientationDiagonal},
		{120, OrientationDiagonal},
		{150, OrientationDiagonal},
		{135, OrientationDiagonal},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClassifyOrientation(tc.angle), "angle %v", tc.angle)
	}
}

func TestClassifyOrientationIdempotent(t *testing.T) {
	for _, angle := range []float64{0, 30, 45, 60, 90, 120, 135, 150, 180, -17.3} {
		first := ClassifyOrientation(angle)
		assert.Equal(t, first, ClassifyOrientation(angle))
	}
}

func TestNewSegment(t *testing.T) {
	s := NewSegment(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0))
	assert.Equal(t, 10.0, s.Length)
	assert.Equal(t, 0.0, s.Angle)
	assert.Equal(t, OrientationHorizontal, s.Orientation)
	assert.Equal(t, geometry.Point2D{X: 5, Y: 0}, s.Center)

	v := NewSegment(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, 10))
	assert.Equal(t, OrientationVertical, v.Orientation)
	assert.InDelta(t, 90, v.Angle, 1e-9)

	d := NewSegment(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 10))
	assert.Equal(t, OrientationDiagonal, d.Orientation)
	assert.InDelta(t, 45, d.Angle, 1e-9)

	// Pointing left: angle lands at 180, still horizontal
	left := NewSegment(geometry.NewPoint2D(10, 0), geometry.NewPoint2D(0, 0))
	assert.InDelta(t, 180, left.Angle, 1e-9)
	assert.Equal(t, OrientationHorizontal, left.Orientation)
}

func TestClassifyShape(t *testing.T) {
	square := geometry.RectInt{Width: 100, Height: 100}
	wide := geometry.RectInt{Width: 200, Height: 100}

	tests := []struct {
		name        string
		vertices    int
		circularity float64
		bbox        geometry.RectInt
		want        ShapeType
	}{
		{"triangle", 3, 0.5, wide, ShapeTriangle},
		{"square", 4, 0.7, square, ShapeSquare},
		{"rectangle", 4, 0.7, wide, ShapeRectangle},
		{"circle", 12, 0.85, square, ShapeCircle},
		{"many vertices, low circularity", 12, 0.3, square, ShapeIrregular},
		{"polygon five", 5, 0.6, square, ShapePolygon},
		{"polygon eight", 8, 0.6, square, ShapePolygon},
		{"degenerate", 2, 0.1, square, ShapeIrregular},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyShape(tc.vertices, tc.circularity, tc.bbox))
		})
	}
}

func TestClassifyShapeAspectBand(t *testing.T) {
	// 0.95..1.05 counts as square, just outside does not
	assert.Equal(t, ShapeSquare, classifyShape(4, 0, geometry.RectInt{Width: 95, Height: 100}))
	assert.Equal(t, ShapeSquare, classifyShape(4, 0, geometry.RectInt{Width: 105, Height: 100}))
	assert.Equal(t, ShapeRectangle, classifyShape(4, 0, geometry.RectInt{Width: 94, Height: 100}))
	assert.Equal(t, ShapeRectangle, classifyShape(4, 0, geometry.RectInt{Width: 106, Height: 100}))
}
