// Package route merges adjacent line segments into continuous pipe routes
// via graph connectivity.
package route

import (
	"fmt"
	"sort"

	"pnid-extractor/internal/extract"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// AdjacencyGraph is an undirected graph over segment indices. An edge joins
// two segments when the minimum distance among their four endpoint pairs is
// within the connection threshold. Built once per image and consumed by the
// route tracer.
type AdjacencyGraph struct {
	g         *simple.UndirectedGraph
	count     int
	threshold float64
}

// BuildGraph constructs the adjacency graph for a segment list. The scan is
// quadratic in segment count, which is fine for P&ID scale (tens to low
// hundreds of segments).
func BuildGraph(segments []extract.Segment, connectionThreshold float64) (*AdjacencyGraph, error) {
	if connectionThreshold < 0 {
		return nil, fmt.Errorf("%w: connection threshold must be non-negative, got %v",
			extract.ErrInvalidParameter, connectionThreshold)
	}

	g := simple.NewUndirectedGraph()
	for i := range segments {
		g.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			if endpointDistance(segments[i], segments[j]) <= connectionThreshold {
				g.SetEdge(g.NewEdge(simple.Node(int64(i)), simple.Node(int64(j))))
			}
		}
	}

	return &AdjacencyGraph{g: g, count: len(segments), threshold: connectionThreshold}, nil
}

// endpointDistance returns the minimum Euclidean distance among the four
// endpoint pairs of two segments.
func endpointDistance(a, b extract.Segment) float64 {
	min := a.Start.Distance(b.Start)
	if d := a.Start.Distance(b.End); d < min {
		min = d
	}
	if d := a.End.Distance(b.Start); d < min {
		min = d
	}
	if d := a.End.Distance(b.End); d < min {
		min = d
	}
	return min
}

// Count returns the number of segment nodes.
func (ag *AdjacencyGraph) Count() int {
	return ag.count
}

// Threshold returns the connection threshold the graph was built with.
func (ag *AdjacencyGraph) Threshold() float64 {
	return ag.threshold
}

// Adjacent reports whether segments i and j are connected. Symmetric by
// construction.
func (ag *AdjacencyGraph) Adjacent(i, j int) bool {
	if i == j || i < 0 || j < 0 || i >= ag.count || j >= ag.count {
		return false
	}
	return ag.g.HasEdgeBetween(int64(i), int64(j))
}

// Neighbors returns the indices adjacent to segment i in ascending order.
func (ag *AdjacencyGraph) Neighbors(i int) []int {
	if i < 0 || i >= ag.count {
		return nil
	}
	var out []int
	for _, n := range graph.NodesOf(ag.g.From(int64(i))) {
		out = append(out, int(n.ID()))
	}
	sort.Ints(out)
	return out
}

// Degree returns the number of segments adjacent to segment i.
func (ag *AdjacencyGraph) Degree(i int) int {
	if i < 0 || i >= ag.count {
		return 0
	}
	return ag.g.From(int64(i)).Len()
}
