// Package pnid maps traced pipe routes onto a labeled component/pipe graph
// using spatial proximity to OCR text and component positions.
package pnid

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pnid-extractor/internal/route"
	"pnid-extractor/pkg/geometry"
)

// TextLabel is a positioned text token produced by an external OCR
// subsystem.
type TextLabel struct {
	Text       string           `json:"text"`
	Anchor     geometry.Point2D `json:"anchor_point"`
	Confidence float64          `json:"confidence"`
}

// Component is a positioned equipment identifier supplied by an external
// component-identification subsystem.
type Component struct {
	ID     string           `json:"id"`
	Center geometry.Point2D `json:"center"`
}

// Sentinel connection IDs used when no component sits near a route endpoint.
const (
	SourceInlet  = "inlet"
	TargetOutlet = "outlet"
)

// LabeledPipe is the final output record for one route.
type LabeledPipe struct {
	Route       *route.Route     `json:"route"`
	Label       string           `json:"label"`
	SourceID    string           `json:"source"`
	TargetID    string           `json:"target"`
	Position    geometry.Point2D `json:"position"`
	Description string           `json:"description"`
}

// MapperOptions configures route-entity mapping distances.
type MapperOptions struct {
	// Maximum point-to-segment distance for a text label to describe a
	// route.
	ProximityThreshold float64

	// Maximum distance between a route endpoint and a component center for
	// them to be considered connected.
	MatchThreshold float64

	// Maximum number of nearby labels joined into one pipe label.
	MaxLabels int
}

// DefaultMapperOptions returns thresholds tuned for typical P&ID scans.
func DefaultMapperOptions() MapperOptions {
	return MapperOptions{
		ProximityThreshold: 50,
		MatchThreshold:     100,
		MaxLabels:          3,
	}
}

// RouteMapper associates routes with nearby text labels and endpoint
// components.
type RouteMapper struct {
	opts MapperOptions
}

// NewRouteMapper creates a mapper with the given options.
func NewRouteMapper(opts MapperOptions) *RouteMapper {
	if opts.MaxLabels <= 0 {
		opts.MaxLabels = DefaultMapperOptions().MaxLabels
	}
	return &RouteMapper{opts: opts}
}

// MapRoutes produces exactly one LabeledPipe per route, in route order. No
// route is dropped and no pipe is fabricated without a backing route.
func (m *RouteMapper) MapRoutes(routes []route.Route, labels []TextLabel, components []Component) []LabeledPipe {
	pipes := make([]LabeledPipe, len(routes))
	for i := range routes {
		pipes[i] = m.mapRoute(i, &routes[i], labels, components)
	}
	return pipes
}

// labelMatch pairs a label with its distance to a route.
type labelMatch struct {
	label    TextLabel
	index    int
	distance float64
}

func (m *RouteMapper) mapRoute(idx int, r *route.Route, labels []TextLabel, components []Component) LabeledPipe {
	nearby := m.nearestLabels(r, labels)

	var label string
	if len(nearby) > 0 {
		parts := make([]string, len(nearby))
		for i, lm := range nearby {
			parts[i] = lm.label.Text
		}
		label = strings.Join(parts, " ")
	} else {
		label = fmt.Sprintf("Route-%d", idx+1)
	}

	source := SourceInlet
	if id, dist := nearestComponent(r.Endpoints[0], components); id != "" && dist <= m.opts.MatchThreshold {
		source = id
	}
	target := TargetOutlet
	if id, dist := nearestComponent(r.Endpoints[1], components); id != "" && dist <= m.opts.MatchThreshold {
		target = id
	}

	return LabeledPipe{
		Route:       r,
		Label:       label,
		SourceID:    source,
		TargetID:    target,
		Position:    geometry.Centroid(r.Points()),
		Description: describeRoute(r, nearby),
	}
}

// DistanceToRoute returns the minimum point-to-segment distance from p to
// any segment of the route. Perpendicular distance, not endpoint distance.
func DistanceToRoute(p geometry.Point2D, r *route.Route) float64 {
	min := math.Inf(1)
	for _, s := range r.Segments {
		if d := geometry.PointToSegmentDistance(p, s.Start, s.End); d < min {
			min = d
		}
	}
	return min
}

// nearestLabels returns up to MaxLabels labels within the proximity
// threshold, nearest first. Ties at equal distance keep the original label
// list order, so the join is deterministic.
func (m *RouteMapper) nearestLabels(r *route.Route, labels []TextLabel) []labelMatch {
	var matches []labelMatch
	for i, l := range labels {
		if d := DistanceToRoute(l.Anchor, r); d <= m.opts.ProximityThreshold {
			matches = append(matches, labelMatch{label: l, index: i, distance: d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].index < matches[j].index
	})
	if len(matches) > m.opts.MaxLabels {
		matches = matches[:m.opts.MaxLabels]
	}
	return matches
}

// nearestComponent finds the component whose center is closest to p.
// Returns ("", +Inf) when the component list is empty.
func nearestComponent(p geometry.Point2D, components []Component) (string, float64) {
	id := ""
	min := math.Inf(1)
	for _, c := range components {
		if d := p.Distance(c.Center); d < min {
			min = d
			id = c.ID
		}
	}
	return id, min
}

// describeRoute builds a human-readable summary for downstream consumers.
func describeRoute(r *route.Route, nearby []labelMatch) string {
	if len(nearby) == 0 {
		return fmt.Sprintf("%s pipe route, %d segments, %.0fpx length",
			r.DominantOrientation, r.SegmentCount, r.TotalLength)
	}
	parts := make([]string, len(nearby))
	for i, lm := range nearby {
		parts[i] = fmt.Sprintf("%s (dist: %.0fpx)", lm.label.Text, lm.distance)
	}
	return fmt.Sprintf("%s pipe route with labels: %s",
		r.DominantOrientation, strings.Join(parts, ", "))
}
