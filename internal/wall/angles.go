package wall

import (
	"math"
	"slices"

	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
)

// angleBuckets groups segment ids by rounded normalised angle in degrees.
type angleBuckets map[int][]SegmentID

// keys returns the bucket keys in ascending order.
func (b angleBuckets) keys() []int {
	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// normalizeAngles snaps every active segment whose direction is within
// tolDeg of a cardinal direction onto it, keeping Start and length. Returns
// the number of segments moved.
func normalizeAngles(a *SegmentArena, tolDeg float64) int {
	n := 0
	for _, id := range a.ActiveIDs() {
		s := a.At(id)
		deg := s.Angle() * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		snapped, ok := geoalgo.SnapAngleDeg(deg, tolDeg)
		if !ok || math.Abs(snapped-deg) < 1e-12 {
			continue
		}
		rad := snapped * math.Pi / 180
		l := s.Length()
		end := s.Start.Add(geom.Pt(math.Cos(rad), math.Sin(rad)).Scale(l))
		// Cardinal directions should land on exact coordinates.
		if snapped == 0 || snapped == 180 {
			end.Y = s.Start.Y
		} else {
			end.X = s.Start.X
		}
		s.End = end
		n++
	}
	return n
}

// angleKey buckets a segment by its normalised angle rounded to whole
// degrees; 180 folds onto 0.
func angleKey(s geom.LineSegment2D) int {
	return int(math.Round(s.NormalizedAngleDeg())) % 180
}

// groupByAngle buckets the active segments. Members are in ascending id
// order because ActiveIDs is.
func groupByAngle(a *SegmentArena) angleBuckets {
	b := make(angleBuckets)
	for _, id := range a.ActiveIDs() {
		k := angleKey(a.At(id).LineSegment2D)
		b[k] = append(b[k], id)
	}
	return b
}

// bucketCenterLines groups active centerline indices by normalised angle in
// widthDeg-wide buckets, returning keys in ascending order alongside.
func bucketCenterLines(cls []CenterLine, widthDeg float64) (map[int][]int, []int) {
	n := int(math.Round(180 / widthDeg))
	b := make(map[int][]int)
	for i := range cls {
		if !cls[i].Active {
			continue
		}
		k := int(math.Round(cls[i].NormalizedAngleDeg()/widthDeg)) % n
		b[k] = append(b[k], i)
	}
	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return b, keys
}
