package geom

import (
	"fmt"
	"math"
)

// LineSegment2D is an ordered pair of points. Equality is geometric: use
// ApproxEqual rather than ==.
type LineSegment2D struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// Seg builds a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) LineSegment2D {
	return LineSegment2D{Start: Pt(x1, y1), End: Pt(x2, y2)}
}

// Vector returns End-Start.
func (s LineSegment2D) Vector() Point2D { return s.End.Sub(s.Start) }

// Length returns the Euclidean length of the segment.
func (s LineSegment2D) Length() float64 { return s.Vector().Norm() }

// IsDegenerate reports whether the segment is shorter than Epsilon.
func (s LineSegment2D) IsDegenerate() bool { return s.Length() < Epsilon }

// Angle returns the direction of the segment in radians, in (-π, π].
func (s LineSegment2D) Angle() float64 {
	v := s.Vector()
	return math.Atan2(v.Y, v.X)
}

// NormalizedAngle returns the direction-agnostic angle in radians, in [0, π).
func (s LineSegment2D) NormalizedAngle() float64 {
	return NormalizeAngle(s.Angle())
}

// NormalizedAngleDeg is NormalizedAngle in degrees, in [0, 180).
func (s LineSegment2D) NormalizedAngleDeg() float64 {
	return s.NormalizedAngle() * 180 / math.Pi
}

// Midpoint returns the point halfway between Start and End.
func (s LineSegment2D) Midpoint() Point2D { return s.Start.Add(s.End).Scale(0.5) }

// Direction returns the unit vector from Start to End. A degenerate segment
// yields the zero vector.
func (s LineSegment2D) Direction() Point2D { return s.Vector().Unit() }

// Normal returns the unit vector a quarter turn counter-clockwise from
// Direction.
func (s LineSegment2D) Normal() Point2D { return s.Direction().Perp() }

// Reversed returns the segment with Start and End swapped.
func (s LineSegment2D) Reversed() LineSegment2D { return LineSegment2D{Start: s.End, End: s.Start} }

// PointAt returns the point at distance t from Start along Direction. t may
// be negative or beyond Length.
func (s LineSegment2D) PointAt(t float64) Point2D {
	return s.Start.Add(s.Direction().Scale(t))
}

// Param returns the signed distance from Start to the projection of p onto
// the segment's infinite line, measured along Direction.
func (s LineSegment2D) Param(p Point2D) float64 {
	return p.Sub(s.Start).Dot(s.Direction())
}

// Offset returns the signed perpendicular distance of p from the segment's
// infinite line; positive on the Normal side.
func (s LineSegment2D) Offset(p Point2D) float64 {
	return s.Direction().Cross(p.Sub(s.Start))
}

// Translate moves both endpoints by d.
func (s LineSegment2D) Translate(d Point2D) LineSegment2D {
	return LineSegment2D{Start: s.Start.Add(d), End: s.End.Add(d)}
}

// ApproxEqual reports whether s and o cover the same points within tol,
// regardless of direction.
func (s LineSegment2D) ApproxEqual(o LineSegment2D, tol float64) bool {
	if s.Start.ApproxEqual(o.Start, tol) && s.End.ApproxEqual(o.End, tol) {
		return true
	}
	return s.Start.ApproxEqual(o.End, tol) && s.End.ApproxEqual(o.Start, tol)
}

func (s LineSegment2D) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// NormalizeAngle folds an angle in radians into [0, π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	// math.Mod can return values a hair under π for inputs a hair under 0.
	if a >= math.Pi-1e-12 {
		a = 0
	}
	return a
}
