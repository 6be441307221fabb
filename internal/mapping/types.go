package mapping

import (
	"fmt"
	"math"

	"github.com/banshee-data/wallmap/internal/geom"
)

// NoFrame is the FrameName of a New record.
const NoFrame = ""

// Coverage classifies how a wall sits on a frame.
type Coverage int

const (
	// Full means the wall covers (almost) the whole frame, or the frame
	// carries (almost) the whole wall.
	Full Coverage = iota
	// Partial means the wall covers part of the frame.
	Partial
	// New means no frame was found; a member must be created.
	New
)

var coverageNames = [...]string{Full: "Full", Partial: "Partial", New: "New"}

func (c Coverage) String() string {
	if c < 0 || int(c) >= len(coverageNames) {
		return fmt.Sprintf("Coverage(%d)", int(c))
	}
	return coverageNames[c]
}

// MarshalText encodes the coverage by name.
func (c Coverage) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(coverageNames) {
		return nil, fmt.Errorf("unknown coverage %d", int(c))
	}
	return []byte(coverageNames[c]), nil
}

// UnmarshalText decodes a coverage name.
func (c *Coverage) UnmarshalText(b []byte) error {
	for i, n := range coverageNames {
		if n == string(b) {
			*c = Coverage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown coverage %q", string(b))
}

// ParseCoverage is UnmarshalText for plain strings.
func ParseCoverage(s string) (Coverage, error) {
	var c Coverage
	err := c.UnmarshalText([]byte(s))
	return c, err
}

// Frame is a linear structural member supplied by the analysis model.
type Frame struct {
	Name  string       `json:"name"`
	Start geom.Point3D `json:"start"`
	End   geom.Point3D `json:"end"`
}

// Plan returns the frame projected onto the XY plane.
func (f Frame) Plan() geom.LineSegment2D {
	return geom.LineSegment2D{Start: f.Start.XY(), End: f.End.XY()}
}

// Elevation returns the mean Z of the frame endpoints.
func (f Frame) Elevation() float64 { return (f.Start.Z + f.End.Z) / 2 }

// IsVertical reports whether the frame is within tolDeg degrees of the Z
// axis, or has no plan length at all.
func (f Frame) IsVertical(tolDeg float64) bool {
	horiz := f.Plan().Length()
	if horiz < geom.Epsilon {
		return true
	}
	dz := math.Abs(f.End.Z - f.Start.Z)
	return math.Atan2(horiz, dz)*180/math.Pi <= tolDeg
}

// Record describes how much of one frame underlies a wall.
type Record struct {
	FrameName     string   `json:"frame_name"`
	Coverage      Coverage `json:"coverage"`
	StartDistance float64  `json:"start_distance"` // from the frame's start point
	EndDistance   float64  `json:"end_distance"`
	FrameLength   float64  `json:"frame_length"`
	CoveredLength float64  `json:"covered_length"` // wall length actually on the frame
	WallOffset    float64  `json:"wall_offset"`    // where the match starts along the wall; negative for a touch before its start
}

// IsNew reports whether the record is the "no frame found" sentinel.
func (r Record) IsNew() bool { return r.Coverage == New }
