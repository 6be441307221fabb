package geoalgo

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// LineIntersection returns the crossing point of the infinite lines through
// a and b. ok is false when the lines are parallel or either is degenerate.
func LineIntersection(a, b geom.LineSegment2D) (p geom.Point2D, ok bool) {
	if a.IsDegenerate() || b.IsDegenerate() {
		return geom.Point2D{}, false
	}
	r := a.Vector()
	s := b.Vector()
	rxs := r.Cross(s)
	// Normalise the cross product so the parallel test does not depend on
	// segment length.
	if math.Abs(rxs)/(r.Norm()*s.Norm()) < geom.Epsilon {
		return geom.Point2D{}, false
	}
	t := b.Start.Sub(a.Start).Cross(s) / rxs
	return a.Start.Add(r.Scale(t)), true
}

// SegmentIntersection returns the crossing point of the bounded segments a
// and b. Collinear overlapping segments report no single point and return
// ok=false.
func SegmentIntersection(a, b geom.LineSegment2D) (p geom.Point2D, ok bool) {
	if a.IsDegenerate() || b.IsDegenerate() {
		return geom.Point2D{}, false
	}
	r := a.Vector()
	s := b.Vector()
	rxs := r.Cross(s)
	if math.Abs(rxs)/(r.Norm()*s.Norm()) < geom.Epsilon {
		return geom.Point2D{}, false
	}
	qp := b.Start.Sub(a.Start)
	t := qp.Cross(s) / rxs
	u := qp.Cross(r) / rxs

	// Parameters are fractions of each segment; allow Epsilon slack in
	// drawing units at both ends.
	tSlack := geom.Epsilon / r.Norm()
	uSlack := geom.Epsilon / s.Norm()
	if t < -tSlack || t > 1+tSlack || u < -uSlack || u > 1+uSlack {
		return geom.Point2D{}, false
	}
	return a.Start.Add(r.Scale(t)), true
}
