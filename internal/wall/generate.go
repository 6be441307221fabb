package wall

import (
	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
)

// midline returns the centerline of two parallel faces over their overlap,
// on a's direction, and the face-to-face distance.
func midline(a, b geom.LineSegment2D) (geom.LineSegment2D, float64, bool) {
	iv, ok := geoalgo.Intersect(geoalgo.Interval{Min: 0, Max: a.Length()}, geoalgo.ProjectInterval(a, b))
	if !ok || iv.Length() < geom.Epsilon {
		return geom.LineSegment2D{}, 0, false
	}
	off := geoalgo.SignedSeparation(a, b)
	shift := a.Normal().Scale(off / 2)
	seg := geom.LineSegment2D{
		Start: a.PointAt(iv.Min).Add(shift),
		End:   a.PointAt(iv.Max).Add(shift),
	}
	if off < 0 {
		off = -off
	}
	return seg, off, true
}

// centerLinesFromPairs emits one centerline per committed pair. The
// thickness is the measured separation. The nominal value only selects the
// pair, so a 200 wall caught by the 250 pass still reports 200.
func centerLinesFromPairs(a *SegmentArena, pairs []wallPair) []CenterLine {
	out := make([]CenterLine, 0, len(pairs))
	for _, pr := range pairs {
		sa, sb := a.At(pr.A), a.At(pr.B)
		seg, sep, ok := midline(sa.LineSegment2D, sb.LineSegment2D)
		if !ok {
			continue
		}
		wallType := sa.WallType
		if wallType == "" {
			wallType = sb.WallType
		}
		out = append(out, newCenterLine(seg, sep, wallType, mergeHandles(sa.Handles, sb.Handles)))
		for _, s := range []*WallSegment{sa, sb} {
			s.Processed = true
			s.Active = false
		}
	}
	return out
}

// promoteSingleLines turns every remaining unpaired segment that is an
// explicit single-line marker, or carries its own thickness, into a
// centerline as drawn.
func promoteSingleLines(a *SegmentArena) []CenterLine {
	var out []CenterLine
	for _, id := range a.ActiveIDs() {
		s := a.At(id)
		if s.Processed || s.IsPaired() {
			continue
		}
		if !s.SingleLine && s.Thickness <= 0 {
			continue
		}
		out = append(out, newCenterLine(s.LineSegment2D, s.Thickness, s.WallType, s.Handles))
		s.Processed = true
		s.Active = false
	}
	return out
}
