package wall

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
	"github.com/banshee-data/wallmap/internal/monitoring"
)

// wallPair is a committed pair of opposite faces.
type wallPair struct {
	A, B       SegmentID
	Nominal    float64 // configured thickness that matched
	Separation float64 // measured face-to-face distance
}

// pairKey identifies an unordered pair of segments.
type pairKey struct{ lo, hi SegmentID }

func newPairKey(a, b SegmentID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// pairable reports whether s may still look for an opposite face.
func pairable(s *WallSegment) bool {
	return s.Active && !s.Processed && !s.IsPaired() && !s.SingleLine
}

// pairScore scores b as the opposite face of a for nominal thickness t.
// Lower is better; ok is false when b does not qualify.
func pairScore(a, b geom.LineSegment2D, t, tolDeg float64) (score, sep float64, ok bool) {
	if !geoalgo.IsParallel(a, b, tolDeg) {
		return 0, 0, false
	}
	sep = geoalgo.ParallelSeparation(a, b)
	if sep < pairMinFactor*t-geom.Epsilon || sep > pairMaxFactor*t+geom.Epsilon {
		return 0, 0, false
	}
	ratio := geoalgo.OverlapRatio(a, b)
	if ratio < minPairOverlapRatio {
		return 0, 0, false
	}
	return math.Abs(sep-t) + (1-ratio)*t, sep, true
}

// detectPairs greedily pairs parallel faces, widest configured thickness
// first. Within a thickness, buckets are visited in key order and segments
// in id order; each segment commits to its best-scoring partner.
func (p *Processor) detectPairs(a *SegmentArena, buckets angleBuckets) []wallPair {
	var pairs []wallPair
	consumed := make(map[pairKey]bool)
	for _, t := range p.cfg.thicknessesDescending() {
		for _, key := range buckets.keys() {
			ids := buckets[key]
			for _, ia := range ids {
				sa := a.At(ia)
				if !pairable(sa) {
					continue
				}
				best := NoSegment
				bestScore, bestSep := math.Inf(1), 0.0
				for _, ib := range ids {
					if ib == ia {
						continue
					}
					sb := a.At(ib)
					if !pairable(sb) || consumed[newPairKey(ia, ib)] {
						continue
					}
					score, sep, ok := pairScore(sa.LineSegment2D, sb.LineSegment2D, t, p.cfg.AngleTolerance)
					if ok && score < bestScore {
						best, bestScore, bestSep = ib, score, sep
					}
				}
				if best == NoSegment {
					continue
				}
				if err := a.Pair(ia, best); err != nil {
					monitoring.Logf("wall: pairing %d with %d: %v", ia, best, err)
					continue
				}
				consumed[newPairKey(ia, best)] = true
				pr := wallPair{A: ia, B: best, Nominal: t, Separation: bestSep}
				monitoring.Debugf("wall: paired %d with %d at nominal %.0f, measured %.1f", pr.A, pr.B, pr.Nominal, pr.Separation)
				pairs = append(pairs, pr)
			}
		}
	}
	return pairs
}
