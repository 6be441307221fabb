package geoalgo

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// Interval is a closed 1D range [Min, Max] of positions along an axis.
type Interval struct {
	Min, Max float64
}

// NewInterval orders a and b into an Interval.
func NewInterval(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Min: a, Max: b}
}

// Length returns Max-Min.
func (i Interval) Length() float64 { return i.Max - i.Min }

// ProjectInterval projects both endpoints of s onto the axis of the
// segment axis (origin at axis.Start, unit step along axis.Direction).
func ProjectInterval(axis, s geom.LineSegment2D) Interval {
	return NewInterval(axis.Param(s.Start), axis.Param(s.End))
}

// Overlap returns the signed overlap of a and b: positive is the length of
// the shared range, negative is the size of the gap between them.
func Overlap(a, b Interval) float64 {
	return math.Min(a.Max, b.Max) - math.Max(a.Min, b.Min)
}

// Gap returns the separation between a and b, or a negative number (the
// overlap) when they share a range.
func Gap(a, b Interval) float64 { return -Overlap(a, b) }

// Intersect returns the shared range of a and b. ok is false when they are
// disjoint.
func Intersect(a, b Interval) (Interval, bool) {
	lo := math.Max(a.Min, b.Min)
	hi := math.Min(a.Max, b.Max)
	if hi < lo {
		return Interval{}, false
	}
	return Interval{Min: lo, Max: hi}, true
}

// Union returns the smallest interval covering a and b.
func Union(a, b Interval) Interval {
	return Interval{Min: math.Min(a.Min, b.Min), Max: math.Max(a.Max, b.Max)}
}

// OverlapRatio returns the overlap of a and b, projected onto a's axis,
// divided by the shorter segment length. It is 0 for disjoint or
// degenerate input.
func OverlapRatio(a, b geom.LineSegment2D) float64 {
	shorter := math.Min(a.Length(), b.Length())
	if shorter < geom.Epsilon {
		return 0
	}
	ov := Overlap(Interval{Min: 0, Max: a.Length()}, ProjectInterval(a, b))
	if ov <= 0 {
		return 0
	}
	return math.Min(1, ov/shorter)
}
