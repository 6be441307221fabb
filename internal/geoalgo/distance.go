package geoalgo

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// ClosestPointOnSegment returns the point of s nearest to p.
func ClosestPointOnSegment(p geom.Point2D, s geom.LineSegment2D) geom.Point2D {
	l := s.Length()
	if l < geom.Epsilon {
		return s.Start
	}
	return s.PointAt(clamp(s.Param(p), 0, l))
}

// DistancePointToSegment returns the distance from p to the nearest point
// of the bounded segment s.
func DistancePointToSegment(p geom.Point2D, s geom.LineSegment2D) float64 {
	return p.DistanceTo(ClosestPointOnSegment(p, s))
}

// DistancePointToLine returns the perpendicular distance from p to the
// infinite line through s. A degenerate s falls back to point distance.
func DistancePointToLine(p geom.Point2D, s geom.LineSegment2D) float64 {
	if s.IsDegenerate() {
		return p.DistanceTo(s.Start)
	}
	return math.Abs(s.Offset(p))
}

// ProjectPointOnLine returns the foot of the perpendicular from p onto the
// infinite line through s.
func ProjectPointOnLine(p geom.Point2D, s geom.LineSegment2D) geom.Point2D {
	if s.IsDegenerate() {
		return s.Start
	}
	return s.PointAt(s.Param(p))
}

// ParallelSeparation returns the mean perpendicular distance of b's
// endpoints from the infinite line through a. Meaningful only when a and b
// are parallel.
func ParallelSeparation(a, b geom.LineSegment2D) float64 {
	return (DistancePointToLine(b.Start, a) + DistancePointToLine(b.End, a)) / 2
}

// SignedSeparation is ParallelSeparation keeping the side: positive when b
// lies on a's Normal side.
func SignedSeparation(a, b geom.LineSegment2D) float64 {
	if a.IsDegenerate() {
		return 0
	}
	return (a.Offset(b.Start) + a.Offset(b.End)) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
