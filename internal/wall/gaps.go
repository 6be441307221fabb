package wall

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// matchesOpening reports whether gap is within ±15% of any opening width.
func matchesOpening(gap float64, widths []float64) bool {
	for _, w := range widths {
		if w > 0 && math.Abs(gap-w) <= openingWidthTolerance*w {
			return true
		}
	}
	return false
}

// recoverGaps bridges collinear centerlines separated by a door or column
// sized gap, or by less than the auto-join distance.
func (p *Processor) recoverGaps(cls []CenterLine) int {
	return p.mergeCenterLines(cls, "gap recovery", func(gap float64) bool {
		if gap < -geom.Epsilon {
			return false
		}
		return gap <= p.cfg.AutoJoinGapDistance+geom.Epsilon || matchesOpening(gap, p.cfg.OpeningWidths)
	})
}

// mergeOverlaps unites collinear centerlines whose intervals really overlap.
func (p *Processor) mergeOverlaps(cls []CenterLine) int {
	return p.mergeCenterLines(cls, "overlap merge", func(gap float64) bool {
		return gap < -geom.Epsilon
	})
}
