package mapping

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/banshee-data/wallmap/internal/geoalgo"
	"github.com/banshee-data/wallmap/internal/geom"
)

// Defaults. Distances are in model units (millimetres), angles in degrees.
const (
	DefaultAngleTolerance     = 1.0
	DefaultElevationTolerance = 50.0
	DefaultGapTolerance       = 300.0
	DefaultMinOverlap         = 10.0
	DefaultMaxOffset          = 300.0
	DefaultFullFrameRatio     = 0.98
	DefaultFullWallRatio      = 0.95
)

// ErrInvalidConfig indicates a mapping configuration value is out of range.
var ErrInvalidConfig = errors.New("mapping: invalid configuration")

// Config tunes the frame mapper.
type Config struct {
	AngleTolerance     float64 // wall and frame must be parallel within this
	ElevationTolerance float64 // |frame Z - wall Z| limit
	GapTolerance       float64 // near-miss and boundary snap distance
	MinOverlap         float64 // noise floor for an accepted overlap
	MaxOffset          float64 // plan distance from wall midpoint to frame line
	FullFrameRatio     float64 // snapped span / frame length for Full
	FullWallRatio      float64 // covered length / wall length for Full
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		AngleTolerance:     DefaultAngleTolerance,
		ElevationTolerance: DefaultElevationTolerance,
		GapTolerance:       DefaultGapTolerance,
		MinOverlap:         DefaultMinOverlap,
		MaxOffset:          DefaultMaxOffset,
		FullFrameRatio:     DefaultFullFrameRatio,
		FullWallRatio:      DefaultFullWallRatio,
	}
}

// Validate checks tolerances are non-negative and ratios lie in (0, 1].
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"angle_tolerance", c.AngleTolerance},
		{"elevation_tolerance", c.ElevationTolerance},
		{"gap_tolerance", c.GapTolerance},
		{"min_overlap", c.MinOverlap},
		{"max_offset", c.MaxOffset},
	}
	for _, chk := range checks {
		if chk.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalidConfig, chk.name, chk.v)
		}
	}
	if c.FullFrameRatio <= 0 || c.FullFrameRatio > 1 {
		return fmt.Errorf("%w: full_frame_ratio must be in (0, 1], got %f", ErrInvalidConfig, c.FullFrameRatio)
	}
	if c.FullWallRatio <= 0 || c.FullWallRatio > 1 {
		return fmt.Errorf("%w: full_wall_ratio must be in (0, 1], got %f", ErrInvalidConfig, c.FullWallRatio)
	}
	return nil
}

// Mapper matches wall centerlines against a frame inventory.
type Mapper struct {
	cfg Config
}

// NewMapper returns a mapper for cfg.
func NewMapper(cfg Config) *Mapper { return &Mapper{cfg: cfg} }

// Config returns the mapper's configuration.
func (m *Mapper) Config() Config { return m.cfg }

// Map returns the frames under wall, a centerline at the given elevation,
// sorted by where each match starts along the wall. When no frame
// qualifies it returns a single New record. A degenerate wall yields nil.
func (m *Mapper) Map(wall geom.LineSegment2D, elevation float64, frames []Frame) []Record {
	wl := wall.Length()
	if wl < geom.Epsilon {
		return nil
	}
	var recs []Record
	for _, f := range frames {
		if r, ok := m.matchFrame(wall, elevation, f); ok {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return []Record{{
			FrameName:     NoFrame,
			Coverage:      New,
			EndDistance:   wl,
			CoveredLength: wl,
		}}
	}
	slices.SortStableFunc(recs, func(a, b Record) int {
		if c := cmp.Compare(a.WallOffset, b.WallOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.FrameName, b.FrameName)
	})
	return recs
}

// matchFrame projects the wall onto one frame's axis.
//
// Algorithm:
//  1. Reject vertical frames, frames off the wall's elevation, frames not
//     parallel to the wall or too far from it in plan
//  2. Project both wall ends onto the frame axis (origin at frame start)
//  3. Intersect with [0, L]; accept if longer than MinOverlap
//  4. Otherwise accept a zero-length touch at 0 or L when the wall ends
//     just outside that frame end
//  5. Snap overlap boundaries within GapTolerance of 0 or L onto them
//  6. Classify Full or Partial; a touch is always Partial
func (m *Mapper) matchFrame(wall geom.LineSegment2D, elevation float64, f Frame) (Record, bool) {
	cfg := m.cfg
	if f.IsVertical(cfg.AngleTolerance) {
		return Record{}, false
	}
	if math.Abs(f.Elevation()-elevation) > cfg.ElevationTolerance {
		return Record{}, false
	}
	plan := f.Plan()
	l := plan.Length()
	if l < geom.Epsilon || !geoalgo.IsParallel(wall, plan, cfg.AngleTolerance) {
		return Record{}, false
	}
	if geoalgo.DistancePointToLine(wall.Midpoint(), plan) > cfg.MaxOffset {
		return Record{}, false
	}

	wallIv := geoalgo.ProjectInterval(plan, wall)
	raw, overlaps := geoalgo.Intersect(geoalgo.Interval{Min: 0, Max: l}, wallIv)

	var iv geoalgo.Interval
	covered := 0.0
	touch := false
	switch {
	case overlaps && raw.Length() > cfg.MinOverlap:
		iv, covered = raw, raw.Length()
	case wallIv.Max <= cfg.MinOverlap && wallIv.Max >= -cfg.GapTolerance:
		iv, touch = geoalgo.Interval{Min: 0, Max: 0}, true
	case wallIv.Min >= l-cfg.MinOverlap && wallIv.Min <= l+cfg.GapTolerance:
		iv, touch = geoalgo.Interval{Min: l, Max: l}, true
	default:
		return Record{}, false
	}

	// A touch stays a point at the frame end it touches and is never Full.
	coverage := Partial
	if !touch {
		if iv.Min <= cfg.GapTolerance {
			iv.Min = 0
		}
		if l-iv.Max <= cfg.GapTolerance {
			iv.Max = l
		}
		if iv.Max < iv.Min {
			iv.Max = iv.Min
		}
		if iv.Length() >= cfg.FullFrameRatio*l-geom.Epsilon || covered >= cfg.FullWallRatio*wall.Length()-geom.Epsilon {
			coverage = Full
		}
	}

	a := wall.Param(plan.PointAt(iv.Min))
	b := wall.Param(plan.PointAt(iv.Max))
	return Record{
		FrameName:     f.Name,
		Coverage:      coverage,
		StartDistance: iv.Min,
		EndDistance:   iv.Max,
		FrameLength:   l,
		CoveredLength: covered,
		WallOffset:    math.Min(a, b),
	}, true
}
