package geoalgo

import "github.com/banshee-data/wallmap/internal/geom"

// IsCollinear reports whether a and b lie on the same line: parallel
// within angTolDeg, and every endpoint of each within distTol of the other's
// infinite line.
func IsCollinear(a, b geom.LineSegment2D, angTolDeg, distTol float64) bool {
	if !IsParallel(a, b, angTolDeg) {
		return false
	}
	return DistancePointToLine(b.Start, a) <= distTol &&
		DistancePointToLine(b.End, a) <= distTol &&
		DistancePointToLine(a.Start, b) <= distTol &&
		DistancePointToLine(a.End, b) <= distTol
}

// CollinearGap projects b onto a's axis and returns the gap between them
// (negative when they overlap).
func CollinearGap(a, b geom.LineSegment2D) float64 {
	return Gap(Interval{Min: 0, Max: a.Length()}, ProjectInterval(a, b))
}

// MergeCollinear returns the union of two collinear segments. The result
// lies on the longer segment's line (a on a tie) and keeps its direction,
// so merging never double-counts the shared range.
func MergeCollinear(a, b geom.LineSegment2D) geom.LineSegment2D {
	axis := a
	if b.Length() > a.Length() {
		axis = b
	}
	u := Union(ProjectInterval(axis, a), ProjectInterval(axis, b))
	return geom.LineSegment2D{Start: axis.PointAt(u.Min), End: axis.PointAt(u.Max)}
}
