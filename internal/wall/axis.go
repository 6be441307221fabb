package wall

import (
	"math"
	"slices"

	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
)

// snapToAxes translates each centerline perpendicular to itself onto the
// nearest parallel axis within AxisSnapDistance. Length and angle are kept.
func (p *Processor) snapToAxes(cls []CenterLine, axes []AxisLine) int {
	n := 0
	for i := range cls {
		c := &cls[i]
		if !c.Active {
			continue
		}
		mid := c.Midpoint()
		bestD := math.Inf(1)
		var shift geom.Point2D
		for _, ax := range axes {
			if !geoalgo.IsParallel(c.LineSegment2D, ax.LineSegment2D, p.cfg.AngleTolerance) {
				continue
			}
			off := ax.Offset(mid)
			d := math.Abs(off)
			if d > p.cfg.AxisSnapDistance || d >= bestD {
				continue
			}
			bestD = d
			shift = ax.Normal().Scale(-off)
		}
		if math.IsInf(bestD, 1) || bestD < geom.Epsilon {
			continue
		}
		c.LineSegment2D = c.Translate(shift)
		n++
	}
	return n
}

// axisCrossing returns the parameter along c at which the perpendicular
// axis ax crosses it. The crossing must lie on the drawn axis within tol.
func axisCrossing(c geom.LineSegment2D, ax AxisLine, tolDeg, tol float64) (float64, bool) {
	if !geoalgo.IsPerpendicular(c, ax.LineSegment2D, tolDeg) {
		return 0, false
	}
	x, ok := geoalgo.LineIntersection(c, ax.LineSegment2D)
	if !ok || geoalgo.DistancePointToSegment(x, ax.LineSegment2D) > tol {
		return 0, false
	}
	return c.Param(x), true
}

// extendToGrid pushes each endpoint outward onto the nearest perpendicular
// axis crossing beyond it, if no farther than MaxGridExtension.
func (p *Processor) extendToGrid(cls []CenterLine, axes []AxisLine) int {
	n := 0
	for i := range cls {
		c := &cls[i]
		if !c.Active {
			continue
		}
		l := c.Length()
		bestStart, bestEnd := math.Inf(1), math.Inf(1)
		var tStart, tEnd float64
		for _, ax := range axes {
			t, ok := axisCrossing(c.LineSegment2D, ax, p.cfg.AngleTolerance, p.cfg.DistanceTolerance)
			if !ok {
				continue
			}
			if ext := -t; ext > geom.Epsilon && ext <= p.cfg.MaxGridExtension && ext < bestStart {
				bestStart, tStart = ext, t
			}
			if ext := t - l; ext > geom.Epsilon && ext <= p.cfg.MaxGridExtension && ext < bestEnd {
				bestEnd, tEnd = ext, t
			}
		}
		seg := c.LineSegment2D
		if !math.IsInf(bestStart, 1) {
			c.Start = seg.PointAt(tStart)
			n++
		}
		if !math.IsInf(bestEnd, 1) {
			c.End = seg.PointAt(tEnd)
			n++
		}
	}
	return n
}

// breakAtGrid splits every centerline at each interior perpendicular-axis
// crossing, in ascending order along its length. Split originals are
// deactivated and their pieces appended.
func (p *Processor) breakAtGrid(cls []CenterLine, axes []AxisLine) ([]CenterLine, int) {
	tol := p.cfg.DistanceTolerance
	splits := 0
	count := len(cls)
	for i := 0; i < count; i++ {
		c := cls[i]
		if !c.Active {
			continue
		}
		l := c.Length()
		var ts []float64
		for _, ax := range axes {
			t, ok := axisCrossing(c.LineSegment2D, ax, p.cfg.AngleTolerance, tol)
			if ok && t > tol && t < l-tol {
				ts = append(ts, t)
			}
		}
		if len(ts) == 0 {
			continue
		}
		slices.Sort(ts)
		cuts := []float64{0}
		for _, t := range ts {
			if t-cuts[len(cuts)-1] > tol {
				cuts = append(cuts, t)
			}
		}
		cuts = append(cuts, l)
		cls[i].Active = false
		for k := 0; k+1 < len(cuts); k++ {
			piece := geom.LineSegment2D{Start: c.PointAt(cuts[k]), End: c.PointAt(cuts[k+1])}
			if k == 0 {
				piece.Start = c.Start
			}
			if k+2 == len(cuts) {
				piece.End = c.End
			}
			cls = append(cls, newCenterLine(piece, c.Thickness, c.WallType, c.SourceHandles))
		}
		splits += len(cuts) - 2
	}
	return cls, splits
}
