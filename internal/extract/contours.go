package extract

import (
	"fmt"
	"image"
	"math"

	"pnid-extractor/pkg/geometry"

	"gocv.io/x/gocv"
)

// ExtractContours finds closed-shape candidates (vessels, equipment symbols)
// in a binary edge map. A morphological closing pass bridges small gaps, then
// only external boundaries are extracted; nested contours are not reported.
// Each boundary is approximated as a polygon at a tolerance of 2% of its
// perimeter and classified by vertex count and circularity. Contours with
// area below minArea are discarded as noise.
func ExtractContours(edges gocv.Mat, minArea float64) ([]Contour, error) {
	if edges.Empty() {
		return nil, fmt.Errorf("%w: empty edge map", ErrInvalidImage)
	}
	if minArea < 0 {
		return nil, fmt.Errorf("%w: minimum area must be non-negative, got %v", ErrInvalidParameter, minArea)
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	closed := edges.Clone()
	defer closed.Close()
	for i := 0; i < 2; i++ {
		gocv.MorphologyEx(closed, &closed, gocv.MorphClose, kernel)
	}

	found := gocv.FindContours(closed, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		cnt := found.At(i)

		area := gocv.ContourArea(cnt)
		if area < minArea {
			continue
		}

		perimeter := gocv.ArcLength(cnt, true)
		circularity := 0.0
		if perimeter > 0 {
			circularity = 4 * math.Pi * area / (perimeter * perimeter)
		}

		approx := gocv.ApproxPolyDP(cnt, 0.02*perimeter, true)
		vertices := approx.Size()
		approx.Close()

		rect := gocv.BoundingRect(cnt)
		bbox := geometry.RectInt{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
		}

		contours = append(contours, Contour{
			BBox:        bbox,
			Center:      bbox.Center(),
			Area:        area,
			Perimeter:   perimeter,
			Circularity: circularity,
			VertexCount: vertices,
			ShapeType:   classifyShape(vertices, circularity, bbox),
		})
	}
	return contours, nil
}
