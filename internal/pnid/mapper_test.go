package pnid

import (
	"testing"

	"pnid-extractor/internal/extract"
	"pnid-extractor/internal/route"
	"pnid-extractor/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(x1, y1, x2, y2 float64) extract.Segment {
	return extract.NewSegment(geometry.NewPoint2D(x1, y1), geometry.NewPoint2D(x2, y2))
}

func traceSegments(t *testing.T, segments []extract.Segment, threshold float64) []route.Route {
	t.Helper()
	g, err := route.BuildGraph(segments, threshold)
	require.NoError(t, err)
	return route.TraceRoutes(segments, g)
}

func chainRoute(t *testing.T) []route.Route {
	return traceSegments(t, []extract.Segment{
		seg(0, 0, 10, 0),
		seg(10, 0, 20, 0),
		seg(20, 0, 30, 0),
	}, 1)
}

func TestMapRoutesLabelsFromNearbyText(t *testing.T) {
	routes := chainRoute(t)
	labels := []TextLabel{
		{Text: "MAK", Anchor: geometry.NewPoint2D(5, 1), Confidence: 0.95},
	}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, labels, nil)

	require.Len(t, pipes, 1)
	assert.Equal(t, "MAK", pipes[0].Label)
	assert.Contains(t, pipes[0].Description, "MAK")
	assert.Contains(t, pipes[0].Description, "horizontal")
}

func TestMapRoutesEndpointComponents(t *testing.T) {
	routes := chainRoute(t)
	components := []Component{
		{ID: "V1", Center: geometry.NewPoint2D(-90, 0)},
	}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, nil, components)

	require.Len(t, pipes, 1)
	assert.Equal(t, "V1", pipes[0].SourceID, "V1 is 90px from the start endpoint")
	assert.Equal(t, TargetOutlet, pipes[0].TargetID, "V1 is 120px from the end endpoint")
}

func TestMapRoutesNearestComponentPerEndpoint(t *testing.T) {
	routes := chainRoute(t)
	components := []Component{
		{ID: "V1", Center: geometry.NewPoint2D(0, 0)},
		{ID: "P2", Center: geometry.NewPoint2D(30, 5)},
	}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, nil, components)

	require.Len(t, pipes, 1)
	assert.Equal(t, "V1", pipes[0].SourceID)
	assert.Equal(t, "P2", pipes[0].TargetID)
}

func TestMapRoutesEndpointSentinels(t *testing.T) {
	routes := chainRoute(t)

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, nil, nil)

	require.Len(t, pipes, 1)
	assert.Equal(t, SourceInlet, pipes[0].SourceID)
	assert.Equal(t, TargetOutlet, pipes[0].TargetID)
}

func TestMapRoutesFallbackLabel(t *testing.T) {
	segments := []extract.Segment{
		seg(0, 0, 10, 0),
		seg(500, 500, 510, 500),
	}
	routes := traceSegments(t, segments, 1)
	require.Len(t, routes, 2)

	// A label far from everything is ignored
	labels := []TextLabel{{Text: "FAR", Anchor: geometry.NewPoint2D(2000, 2000)}}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, labels, nil)

	require.Len(t, pipes, 2)
	assert.Equal(t, "Route-1", pipes[0].Label)
	assert.Equal(t, "Route-2", pipes[1].Label)
}

func TestMapRoutesOnePipePerRoute(t *testing.T) {
	var segments []extract.Segment
	for i := 0; i < 20; i++ {
		y := float64(i * 100)
		segments = append(segments, seg(0, y, 10, y))
	}
	routes := traceSegments(t, segments, 1)

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, nil, nil)

	require.Len(t, pipes, len(routes), "exactly one pipe per route")
	for i := range pipes {
		assert.Same(t, &routes[i], pipes[i].Route)
	}
}

func TestMapRoutesJoinsNearestThreeLabels(t *testing.T) {
	routes := chainRoute(t)
	labels := []TextLabel{
		{Text: "D", Anchor: geometry.NewPoint2D(15, 40)},
		{Text: "A", Anchor: geometry.NewPoint2D(15, 1)},
		{Text: "B", Anchor: geometry.NewPoint2D(15, 2)},
		{Text: "C", Anchor: geometry.NewPoint2D(15, 3)},
	}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, labels, nil)

	require.Len(t, pipes, 1)
	assert.Equal(t, "A B C", pipes[0].Label, "nearest three labels joined, farthest dropped")
}

func TestMapRoutesLabelTiesKeepInputOrder(t *testing.T) {
	routes := chainRoute(t)
	// Both labels at the same distance; input order decides
	labels := []TextLabel{
		{Text: "FIRST", Anchor: geometry.NewPoint2D(10, 5)},
		{Text: "SECOND", Anchor: geometry.NewPoint2D(20, 5)},
	}

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, labels, nil)

	require.Len(t, pipes, 1)
	assert.Equal(t, "FIRST SECOND", pipes[0].Label)
}

func TestDistanceToRouteIsPerpendicular(t *testing.T) {
	routes := chainRoute(t)

	// Point above the middle of the chain: perpendicular distance 1,
	// endpoint distance would be much larger.
	assert.InDelta(t, 1.0, DistanceToRoute(geometry.NewPoint2D(15, 1), &routes[0]), 1e-9)
	assert.InDelta(t, 5.0, DistanceToRoute(geometry.NewPoint2D(35, 0), &routes[0]), 1e-9)
}

func TestMapRoutesPosition(t *testing.T) {
	routes := chainRoute(t)

	mapper := NewRouteMapper(DefaultMapperOptions())
	pipes := mapper.MapRoutes(routes, nil, nil)

	require.Len(t, pipes, 1)
	assert.InDelta(t, 15, pipes[0].Position.X, 1e-9)
	assert.InDelta(t, 0, pipes[0].Position.Y, 1e-9)
}

func TestComponentsFromContours(t *testing.T) {
	contours := []extract.Contour{
		{ShapeType: extract.ShapeCircle, Center: geometry.NewPoint2D(50, 50)},
		{ShapeType: extract.ShapeRectangle, Center: geometry.NewPoint2D(200, 100)},
	}

	components := ComponentsFromContours(contours)
	require.Len(t, components, 2)
	assert.Equal(t, "circle-001", components[0].ID)
	assert.Equal(t, "rectangle-002", components[1].ID)
	assert.Equal(t, geometry.NewPoint2D(200, 100), components[1].Center)
}
