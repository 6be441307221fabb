package wall

import (
	"math"

	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
)

// autoExtend moves each endpoint outward onto the intersection with a
// perpendicular centerline that passes within ExtendTolerance of it, closing
// corners and T-junctions left short by pairing. Endpoints only ever grow: a
// wall that runs past a perpendicular one keeps its stub, and an endpoint
// already sitting on an intersection stays put. Returns the number of
// endpoints moved.
func (p *Processor) autoExtend(cls []CenterLine) int {
	tol := p.cfg.ExtendTolerance
	n := 0
	for i := range cls {
		c := &cls[i]
		if !c.Active {
			continue
		}
		for _, atEnd := range [...]bool{false, true} {
			target, ok := p.extensionTarget(cls, i, atEnd, tol)
			if !ok {
				continue
			}
			next := c.LineSegment2D
			if atEnd {
				next.End = target
			} else {
				next.Start = target
			}
			// Never collapse or flip the centerline.
			if next.IsDegenerate() || next.Vector().Dot(c.Vector()) <= 0 {
				continue
			}
			c.LineSegment2D = next
			n++
		}
	}
	return n
}

// extensionTarget finds the nearest corner point beyond the start (or, with
// atEnd, the end) of centerline i.
func (p *Processor) extensionTarget(cls []CenterLine, i int, atEnd bool, tol float64) (geom.Point2D, bool) {
	c := cls[i].LineSegment2D
	ep := c.Start
	if atEnd {
		ep = c.End
	}
	bestD := math.Inf(1)
	var best geom.Point2D
	for j := range cls {
		if j == i || !cls[j].Active {
			continue
		}
		o := cls[j].LineSegment2D
		if !geoalgo.IsPerpendicular(c, o, p.cfg.AngleTolerance) {
			continue
		}
		if geoalgo.DistancePointToSegment(ep, o) > tol {
			continue
		}
		x, ok := geoalgo.LineIntersection(c, o)
		if !ok || geoalgo.DistancePointToSegment(x, o) > tol {
			continue
		}
		d := ep.DistanceTo(x)
		if d < geom.Epsilon {
			return geom.Point2D{}, false
		}
		if t := c.Param(x); (atEnd && t <= c.Length()) || (!atEnd && t >= 0) {
			continue
		}
		if d <= tol && d < bestD {
			bestD, best = d, x
		}
	}
	return best, !math.IsInf(bestD, 1)
}
