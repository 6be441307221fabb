package geoalgo

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// AngleDiffDeg returns the acute angle between the directions of a and b
// in degrees, in [0, 90]. Direction is ignored: a segment and its reverse
// differ by 0.
func AngleDiffDeg(a, b geom.LineSegment2D) float64 {
	d := math.Abs(a.NormalizedAngle() - b.NormalizedAngle())
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d * 180 / math.Pi
}

// IsParallel reports whether a and b are parallel within tolDeg degrees.
// Degenerate segments are never parallel to anything.
func IsParallel(a, b geom.LineSegment2D, tolDeg float64) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return false
	}
	return AngleDiffDeg(a, b) <= tolDeg+geom.Epsilon
}

// IsPerpendicular reports whether a and b are perpendicular within tolDeg
// degrees.
func IsPerpendicular(a, b geom.LineSegment2D, tolDeg float64) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return false
	}
	return 90-AngleDiffDeg(a, b) <= tolDeg+geom.Epsilon
}

// SnapAngleDeg returns the cardinal direction (0, 90, 180, 270 or 360
// degrees) nearest to deg when it lies within tolDeg, and ok=true. deg is
// expected in [0, 360).
func SnapAngleDeg(deg, tolDeg float64) (snapped float64, ok bool) {
	for _, c := range [...]float64{0, 90, 180, 270, 360} {
		if math.Abs(deg-c) <= tolDeg {
			return math.Mod(c, 360), true
		}
	}
	return deg, false
}
