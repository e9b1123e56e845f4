package route

import (
	"pnid-extractor/internal/extract"
	"pnid-extractor/pkg/geometry"
)

// Route is one continuous pipe: the segments of one connected component of
// the adjacency graph, in traversal order.
type Route struct {
	Segments            []extract.Segment   `json:"segments"`
	SegmentCount        int                 `json:"segment_count"`
	TotalLength         float64             `json:"total_length"`
	Endpoints           [2]geometry.Point2D `json:"endpoints"`
	JunctionCount       int                 `json:"num_junctions"`
	DominantOrientation extract.Orientation `json:"dominant_orientation"`
}

// Points returns every segment endpoint of the route.
func (r Route) Points() []geometry.Point2D {
	pts := make([]geometry.Point2D, 0, 2*len(r.Segments))
	for _, s := range r.Segments {
		pts = append(pts, s.Start, s.End)
	}
	return pts
}

// TraceRoutes partitions segments into routes, one per connected component
// of the adjacency graph. Traversal is an iterative depth-first search with
// an explicit stack (long chains must not exhaust the call stack), starting
// from the lowest-index unvisited segment. Every segment ends up in exactly
// one route; an isolated segment becomes a singleton route. Never fails,
// whatever the graph shape.
func TraceRoutes(segments []extract.Segment, g *AdjacencyGraph) []Route {
	visited := make([]bool, len(segments))
	var routes []Route

	for i := range segments {
		if visited[i] {
			continue
		}

		var members []int
		stack := []int{i}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[idx] {
				continue
			}
			visited[idx] = true
			members = append(members, idx)

			neighbors := g.Neighbors(idx)
			// Push in reverse so the lowest index is explored first.
			for k := len(neighbors) - 1; k >= 0; k-- {
				if !visited[neighbors[k]] {
					stack = append(stack, neighbors[k])
				}
			}
		}

		routes = append(routes, buildRoute(members, segments, g.Threshold()))
	}
	return routes
}

// routeEndpoint pairs a segment endpoint with its owning member segment.
type routeEndpoint struct {
	pt     geometry.Point2D
	member int
}

func buildRoute(members []int, segments []extract.Segment, threshold float64) Route {
	segs := make([]extract.Segment, len(members))
	var total float64
	for i, idx := range members {
		segs[i] = segments[idx]
		total += segments[idx].Length
	}

	endpoints := make([]routeEndpoint, 0, 2*len(segs))
	for i, s := range segs {
		endpoints = append(endpoints,
			routeEndpoint{pt: s.Start, member: i},
			routeEndpoint{pt: s.End, member: i})
	}

	return Route{
		Segments:            segs,
		SegmentCount:        len(segs),
		TotalLength:         total,
		Endpoints:           routeEndpoints(endpoints, threshold),
		JunctionCount:       countJunctionSegments(endpoints, threshold),
		DominantOrientation: dominantOrientation(segs),
	}
}

// routeEndpoints picks the route's two terminal points. Terminals are
// endpoints with no endpoint of another member segment within the connection
// threshold. A cycle has no such endpoint; the fallback is the pair of
// member endpoints with maximum pairwise distance.
func routeEndpoints(endpoints []routeEndpoint, threshold float64) [2]geometry.Point2D {
	var free []geometry.Point2D
	for i, e := range endpoints {
		connected := false
		for j, other := range endpoints {
			if i == j || e.member == other.member {
				continue
			}
			if e.pt.Distance(other.pt) <= threshold {
				connected = true
				break
			}
		}
		if !connected {
			free = append(free, e.pt)
		}
	}

	switch {
	case len(free) >= 2:
		return farthestPair(free)
	case len(free) == 1:
		// Pair the lone terminal with the member endpoint farthest from it.
		best := free[0]
		bestDist := -1.0
		for _, e := range endpoints {
			if d := free[0].Distance(e.pt); d > bestDist {
				bestDist = d
				best = e.pt
			}
		}
		return [2]geometry.Point2D{free[0], best}
	default:
		all := make([]geometry.Point2D, len(endpoints))
		for i, e := range endpoints {
			all[i] = e.pt
		}
		return farthestPair(all)
	}
}

// farthestPair returns the two points with maximum pairwise distance,
// keeping input order on ties.
func farthestPair(pts []geometry.Point2D) [2]geometry.Point2D {
	if len(pts) == 1 {
		return [2]geometry.Point2D{pts[0], pts[0]}
	}
	pair := [2]geometry.Point2D{pts[0], pts[1]}
	bestDist := pts[0].Distance(pts[1])
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if d := pts[i].Distance(pts[j]); d > bestDist {
				bestDist = d
				pair = [2]geometry.Point2D{pts[i], pts[j]}
			}
		}
	}
	return pair
}

// countJunctionSegments counts member segments with an endpoint where three
// or more distinct segments meet within the connection threshold. Counting
// distinct members rather than endpoints matters: a segment shorter than the
// threshold contributes both its endpoints to the same cluster and must not
// turn a plain two-segment joint into a junction.
func countJunctionSegments(endpoints []routeEndpoint, threshold float64) int {
	junction := make(map[int]bool)
	for _, e := range endpoints {
		others := make(map[int]bool)
		for _, other := range endpoints {
			if other.member == e.member {
				continue
			}
			if e.pt.Distance(other.pt) <= threshold {
				others[other.member] = true
			}
		}
		if len(others) >= 2 {
			junction[e.member] = true
		}
	}
	return len(junction)
}

// dominantOrientation returns the most frequent orientation among the
// segments, breaking ties by the total length each orientation contributes.
func dominantOrientation(segs []extract.Segment) extract.Orientation {
	counts := make(map[extract.Orientation]int)
	lengths := make(map[extract.Orientation]float64)
	for _, s := range segs {
		counts[s.Orientation]++
		lengths[s.Orientation] += s.Length
	}

	order := []extract.Orientation{
		extract.OrientationHorizontal,
		extract.OrientationVertical,
		extract.OrientationDiagonal,
	}
	best := order[0]
	for _, o := range order[1:] {
		if counts[o] > counts[best] ||
			(counts[o] == counts[best] && lengths[o] > lengths[best]) {
			best = o
		}
	}
	return best
}
