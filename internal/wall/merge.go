package wall

import (
	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/monitoring"
)

// mergeSegments folds collinear, overlapping or nearly touching segments
// within each angle bucket until a full pass performs no merge, or the
// iteration cap is reached. Returns the number of merges.
func (p *Processor) mergeSegments(a *SegmentArena, buckets angleBuckets) int {
	tolA, tolD := p.cfg.AngleTolerance, p.cfg.DistanceTolerance
	total := 0
	for iter := 0; iter < p.cfg.MaxIterations; iter++ {
		merged := 0
		for _, key := range buckets.keys() {
			ids := buckets[key]
			for i := 0; i < len(ids); i++ {
				si := a.At(ids[i])
				for j := i + 1; j < len(ids) && si.Active; j++ {
					sj := a.At(ids[j])
					if !sj.Active {
						continue
					}
					if !geoalgo.IsCollinear(si.LineSegment2D, sj.LineSegment2D, tolA, tolD) {
						continue
					}
					if geoalgo.CollinearGap(si.LineSegment2D, sj.LineSegment2D) > tolD {
						continue
					}
					keep, drop := si.Index, sj.Index
					if sj.Length() > si.Length() {
						keep, drop = drop, keep
					}
					a.absorb(keep, drop)
					merged++
				}
			}
		}
		total += merged
		if merged == 0 {
			return total
		}
	}
	monitoring.Logf("wall: segment merge did not converge after %d iterations (%d merges)", p.cfg.MaxIterations, total)
	return total
}

// mergeCenterLines runs a fixpoint pass over collinear centerline pairs in
// 5 degree buckets, merging each pair for which join reports true. stage
// names the pass in logs.
func (p *Processor) mergeCenterLines(cls []CenterLine, stage string, join func(gap float64) bool) int {
	tolA, tolD := p.cfg.AngleTolerance, p.cfg.DistanceTolerance
	total := 0
	for iter := 0; iter < p.cfg.MaxIterations; iter++ {
		merged := 0
		buckets, keys := bucketCenterLines(cls, centerLineBucketDeg)
		for _, key := range keys {
			ids := buckets[key]
			for i := 0; i < len(ids); i++ {
				ci := &cls[ids[i]]
				for j := i + 1; j < len(ids) && ci.Active; j++ {
					cj := &cls[ids[j]]
					if !cj.Active {
						continue
					}
					if !geoalgo.IsCollinear(ci.LineSegment2D, cj.LineSegment2D, tolA, tolD) {
						continue
					}
					if !join(geoalgo.CollinearGap(ci.LineSegment2D, cj.LineSegment2D)) {
						continue
					}
					ci.absorb(cj)
					merged++
				}
			}
		}
		total += merged
		if merged == 0 {
			return total
		}
	}
	monitoring.Logf("wall: %s did not converge after %d iterations (%d merges)", stage, p.cfg.MaxIterations, total)
	return total
}
