package pnid

import (
	"fmt"

	"pnid-extractor/internal/extract"
)

// ComponentsFromContours converts detected closed shapes into component
// candidates, so routes can connect to vessels and equipment found by the
// contour extractor even when no external component list is supplied. IDs
// are synthesized from the shape class, e.g. "rectangle-003".
func ComponentsFromContours(contours []extract.Contour) []Component {
	components := make([]Component, len(contours))
	for i, c := range contours {
		components[i] = Component{
			ID:     fmt.Sprintf("%s-%03d", c.ShapeType, i+1),
			Center: c.Center,
		}
	}
	return components
}
