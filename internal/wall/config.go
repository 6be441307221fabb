package wall

import (
	"fmt"
	"slices"
)

// Default tolerances. Distances are in drawing units (millimetres), angles in
// degrees.
const (
	DefaultAngleTolerance      = 1.0
	DefaultDistanceTolerance   = 5.0
	DefaultAxisSnapDistance    = 50.0
	DefaultAutoJoinGapDistance = 50.0
	DefaultExtendTolerance     = 300.0
	DefaultMaxGridExtension    = 500.0
	DefaultMaxIterations       = 50
)

// Pairing and gap-recovery constants.
const (
	// A candidate opposite face must sit between pairMinFactor and
	// pairMaxFactor times the nominal thickness away.
	pairMinFactor = 0.8
	pairMaxFactor = 1.2
	// Overlap divided by the shorter face length.
	minPairOverlapRatio = 0.5
	// A gap matches an opening width when within ±15% of it.
	openingWidthTolerance = 0.15
	// Bucket width for centerline passes.
	centerLineBucketDeg = 5.0
)

// Config is the immutable processor configuration. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	AngleTolerance      float64 // degrees
	DistanceTolerance   float64
	AxisSnapDistance    float64 // 0 disables axis snapping
	AutoJoinGapDistance float64
	ExtendTolerance     float64 // auto-extend search radius
	MaxGridExtension    float64 // longest push towards a grid axis
	EnableAutoExtend    bool
	BreakAtGrid         bool
	ExtendToGrid        bool
	WallThicknesses     []float64
	OpeningWidths       []float64
	MaxIterations       int // cap on every fixpoint pass
}

// DefaultConfig returns production defaults: common masonry thicknesses,
// door widths, auto-extend on, grid operations off.
func DefaultConfig() Config {
	return Config{
		AngleTolerance:      DefaultAngleTolerance,
		DistanceTolerance:   DefaultDistanceTolerance,
		AxisSnapDistance:    DefaultAxisSnapDistance,
		AutoJoinGapDistance: DefaultAutoJoinGapDistance,
		ExtendTolerance:     DefaultExtendTolerance,
		MaxGridExtension:    DefaultMaxGridExtension,
		EnableAutoExtend:    true,
		WallThicknesses:     []float64{300, 250, 200, 150, 100},
		OpeningWidths:       []float64{700, 800, 900, 1000, 1200},
		MaxIterations:       DefaultMaxIterations,
	}
}

// Validate checks that every tolerance is non-negative and that the lists
// hold positive widths.
func (c Config) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"angle_tolerance", c.AngleTolerance},
		{"distance_tolerance", c.DistanceTolerance},
		{"axis_snap_distance", c.AxisSnapDistance},
		{"auto_join_gap_distance", c.AutoJoinGapDistance},
		{"extend_tolerance", c.ExtendTolerance},
		{"max_grid_extension", c.MaxGridExtension},
	}
	for _, chk := range checks {
		if chk.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %f", ErrInvalidConfig, chk.name, chk.v)
		}
	}
	if c.AngleTolerance >= 45 {
		return fmt.Errorf("%w: angle_tolerance must be below 45 degrees, got %f", ErrInvalidConfig, c.AngleTolerance)
	}
	for _, t := range c.WallThicknesses {
		if t <= 0 {
			return fmt.Errorf("%w: wall thickness must be positive, got %f", ErrInvalidConfig, t)
		}
	}
	for _, w := range c.OpeningWidths {
		if w <= 0 {
			return fmt.Errorf("%w: opening width must be positive, got %f", ErrInvalidConfig, w)
		}
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations must be non-negative, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

// thicknessesDescending returns the positive configured thicknesses,
// de-duplicated, widest first.
func (c Config) thicknessesDescending() []float64 {
	out := make([]float64, 0, len(c.WallThicknesses))
	for _, t := range c.WallThicknesses {
		if t > 0 {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	slices.Reverse(out)
	return out
}
