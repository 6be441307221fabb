package wall

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/banshee-data/wallmap/internal/geom"
	"github.com/banshee-data/wallmap/internal/geoalgo"
)

// CenterLine is a reconstructed wall axis.
type CenterLine struct {
	geom.LineSegment2D

	Thickness     float64  `json:"thickness"`
	WallType      string   `json:"wall_type,omitempty"`
	Active        bool     `json:"-"`
	UniqueID      string   `json:"unique_id"`
	SourceHandles []string `json:"source_handles"`
}

func newCenterLine(seg geom.LineSegment2D, thickness float64, wallType string, handles []string) CenterLine {
	return CenterLine{
		LineSegment2D: seg,
		Thickness:     thickness,
		WallType:      wallType,
		Active:        true,
		SourceHandles: mergeHandles(handles, nil),
	}
}

// absorb merges o into c on their union interval; o is deactivated.
func (c *CenterLine) absorb(o *CenterLine) {
	c.LineSegment2D = geoalgo.MergeCollinear(c.LineSegment2D, o.LineSegment2D)
	if o.Thickness > c.Thickness {
		c.Thickness = o.Thickness
		if o.WallType != "" {
			c.WallType = o.WallType
		}
	}
	if c.WallType == "" {
		c.WallType = o.WallType
	}
	c.SourceHandles = mergeHandles(c.SourceHandles, o.SourceHandles)
	o.Active = false
}

// AxisLine is a read-only reference line: a structural grid line or a user
// axis.
type AxisLine struct {
	Name string `json:"name"`
	geom.LineSegment2D
}

// UniqueID derives a de-duplication key from the endpoints rounded to whole
// units in canonical order, plus the normalised angle to 0.1 degree.
// Direction does not matter.
func UniqueID(s geom.LineSegment2D) string {
	a := roundPoint(s.Start)
	b := roundPoint(s.End)
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	ang := scalar.Round(s.NormalizedAngleDeg(), 1)
	if ang >= 180 {
		ang = 0
	}
	return fmt.Sprintf("%.0f_%.0f_%.0f_%.0f_%.1f", a.X, a.Y, b.X, b.Y, ang)
}

func roundPoint(p geom.Point2D) geom.Point2D {
	return geom.Pt(roundUnit(p.X), roundUnit(p.Y))
}

// roundUnit rounds to the nearest whole unit and folds -0 into 0 so the key
// does not depend on the sign of a zero.
func roundUnit(v float64) float64 {
	r := scalar.Round(v, 0)
	if r == 0 {
		return 0
	}
	return r
}
