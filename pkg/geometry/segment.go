package geometry

import "math"

// PointToSegmentDistance calculates the minimum distance from point p to the
// line segment a-b.
func PointToSegmentDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx == 0 && dy == 0 {
		// Segment is a point
		return p.Distance(a)
	}

	// Parameter t of closest point on infinite line, clamped to the segment
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// NormalizeAngleDegrees maps an angle in degrees into the range (-180, 180].
func NormalizeAngleDegrees(deg float64) float64 {
	for deg <= -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}
