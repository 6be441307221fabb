package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/banshee-data/wallmap/internal/fsutil"
	"github.com/banshee-data/wallmap/internal/mapping"
	"github.com/banshee-data/wallmap/internal/wall"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// maxFileSize caps tuning files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// TuningConfig is the on-disk form of the processor and mapper settings.
// Every field is optional; the Get* accessors supply defaults for nil
// fields so partial files are safe.
type TuningConfig struct {
	// Processor params
	AngleTolerance      *float64 `json:"angle_tolerance,omitempty"`
	DistanceTolerance   *float64 `json:"distance_tolerance,omitempty"`
	AxisSnapDistance    *float64 `json:"axis_snap_distance,omitempty"`
	AutoJoinGapDistance *float64 `json:"auto_join_gap_distance,omitempty"`
	ExtendTolerance     *float64 `json:"extend_tolerance,omitempty"`
	MaxGridExtension    *float64 `json:"max_grid_extension,omitempty"`
	EnableAutoExtend    *bool    `json:"enable_auto_extend,omitempty"`
	BreakAtGrid         *bool    `json:"break_at_grid,omitempty"`
	ExtendToGrid        *bool    `json:"extend_to_grid,omitempty"`
	MaxIterations       *int     `json:"max_iterations,omitempty"`

	// nil means the default list; an explicit [] disables pairing or
	// opening-width matching.
	WallThicknesses []float64 `json:"wall_thicknesses"`
	OpeningWidths   []float64 `json:"opening_widths"`

	// Mapper params
	MappingAngleTolerance *float64 `json:"mapping_angle_tolerance,omitempty"`
	ElevationTolerance    *float64 `json:"elevation_tolerance,omitempty"`
	GapTolerance          *float64 `json:"gap_tolerance,omitempty"`
	MinOverlap            *float64 `json:"min_overlap,omitempty"`
	MaxOffset             *float64 `json:"max_offset,omitempty"`
	FullFrameRatio        *float64 `json:"full_frame_ratio,omitempty"`
	FullWallRatio         *float64 `json:"full_wall_ratio,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the package defaults of wall and mapping.
func DefaultTuningConfig() *TuningConfig {
	w := wall.DefaultConfig()
	m := mapping.DefaultConfig()
	return &TuningConfig{
		AngleTolerance:      ptrFloat64(w.AngleTolerance),
		DistanceTolerance:   ptrFloat64(w.DistanceTolerance),
		AxisSnapDistance:    ptrFloat64(w.AxisSnapDistance),
		AutoJoinGapDistance: ptrFloat64(w.AutoJoinGapDistance),
		ExtendTolerance:     ptrFloat64(w.ExtendTolerance),
		MaxGridExtension:    ptrFloat64(w.MaxGridExtension),
		EnableAutoExtend:    ptrBool(w.EnableAutoExtend),
		BreakAtGrid:         ptrBool(w.BreakAtGrid),
		ExtendToGrid:        ptrBool(w.ExtendToGrid),
		MaxIterations:       ptrInt(w.MaxIterations),
		WallThicknesses:     w.WallThicknesses,
		OpeningWidths:       w.OpeningWidths,

		MappingAngleTolerance: ptrFloat64(m.AngleTolerance),
		ElevationTolerance:    ptrFloat64(m.ElevationTolerance),
		GapTolerance:          ptrFloat64(m.GapTolerance),
		MinOverlap:            ptrFloat64(m.MinOverlap),
		MaxOffset:             ptrFloat64(m.MaxOffset),
		FullFrameRatio:        ptrFloat64(m.FullFrameRatio),
		FullWallRatio:         ptrFloat64(m.FullWallRatio),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file on disk.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	return LoadTuningConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadTuningConfigFS loads a TuningConfig from fsys. The file must have a
// .json extension and be under 1MB. Fields omitted from the file keep
// their defaults.
func LoadTuningConfigFS(fsys fsutil.FileSystem, path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching the current directory and its parents.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate resolves the config and checks it against the processor and
// mapper rules.
func (c *TuningConfig) Validate() error {
	if err := c.ProcessorConfig().Validate(); err != nil {
		return err
	}
	if err := c.MappingConfig().Validate(); err != nil {
		return err
	}
	return nil
}

// ProcessorConfig resolves the processor settings.
func (c *TuningConfig) ProcessorConfig() wall.Config {
	return wall.Config{
		AngleTolerance:      c.GetAngleTolerance(),
		DistanceTolerance:   c.GetDistanceTolerance(),
		AxisSnapDistance:    c.GetAxisSnapDistance(),
		AutoJoinGapDistance: c.GetAutoJoinGapDistance(),
		ExtendTolerance:     c.GetExtendTolerance(),
		MaxGridExtension:    c.GetMaxGridExtension(),
		EnableAutoExtend:    c.GetEnableAutoExtend(),
		BreakAtGrid:         c.GetBreakAtGrid(),
		ExtendToGrid:        c.GetExtendToGrid(),
		WallThicknesses:     c.GetWallThicknesses(),
		OpeningWidths:       c.GetOpeningWidths(),
		MaxIterations:       c.GetMaxIterations(),
	}
}

// MappingConfig resolves the mapper settings.
func (c *TuningConfig) MappingConfig() mapping.Config {
	return mapping.Config{
		AngleTolerance:     c.GetMappingAngleTolerance(),
		ElevationTolerance: c.GetElevationTolerance(),
		GapTolerance:       c.GetGapTolerance(),
		MinOverlap:         c.GetMinOverlap(),
		MaxOffset:          c.GetMaxOffset(),
		FullFrameRatio:     c.GetFullFrameRatio(),
		FullWallRatio:      c.GetFullWallRatio(),
	}
}

func getFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func getBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// GetAngleTolerance returns the angle_tolerance value or the default.
func (c *TuningConfig) GetAngleTolerance() float64 {
	return getFloat(c.AngleTolerance, wall.DefaultAngleTolerance)
}

// GetDistanceTolerance returns the distance_tolerance value or the default.
func (c *TuningConfig) GetDistanceTolerance() float64 {
	return getFloat(c.DistanceTolerance, wall.DefaultDistanceTolerance)
}

// GetAxisSnapDistance returns the axis_snap_distance value or the default.
func (c *TuningConfig) GetAxisSnapDistance() float64 {
	return getFloat(c.AxisSnapDistance, wall.DefaultAxisSnapDistance)
}

// GetAutoJoinGapDistance returns the auto_join_gap_distance value or the default.
func (c *TuningConfig) GetAutoJoinGapDistance() float64 {
	return getFloat(c.AutoJoinGapDistance, wall.DefaultAutoJoinGapDistance)
}

// GetExtendTolerance returns the extend_tolerance value or the default.
func (c *TuningConfig) GetExtendTolerance() float64 {
	return getFloat(c.ExtendTolerance, wall.DefaultExtendTolerance)
}

// GetMaxGridExtension returns the max_grid_extension value or the default.
func (c *TuningConfig) GetMaxGridExtension() float64 {
	return getFloat(c.MaxGridExtension, wall.DefaultMaxGridExtension)
}

// GetEnableAutoExtend returns the enable_auto_extend value or the default.
func (c *TuningConfig) GetEnableAutoExtend() bool {
	return getBool(c.EnableAutoExtend, true)
}

// GetBreakAtGrid returns the break_at_grid value or the default.
func (c *TuningConfig) GetBreakAtGrid() bool {
	return getBool(c.BreakAtGrid, false)
}

// GetExtendToGrid returns the extend_to_grid value or the default.
func (c *TuningConfig) GetExtendToGrid() bool {
	return getBool(c.ExtendToGrid, false)
}

// GetMaxIterations returns the max_iterations value or the default.
func (c *TuningConfig) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return wall.DefaultMaxIterations
	}
	return *c.MaxIterations
}

// GetWallThicknesses returns a copy of wall_thicknesses, or the default
// list when the field is absent.
func (c *TuningConfig) GetWallThicknesses() []float64 {
	if c.WallThicknesses == nil {
		return wall.DefaultConfig().WallThicknesses
	}
	return slices.Clone(c.WallThicknesses)
}

// GetOpeningWidths returns a copy of opening_widths, or the default list
// when the field is absent.
func (c *TuningConfig) GetOpeningWidths() []float64 {
	if c.OpeningWidths == nil {
		return wall.DefaultConfig().OpeningWidths
	}
	return slices.Clone(c.OpeningWidths)
}

// GetMappingAngleTolerance returns the mapping_angle_tolerance value or the default.
func (c *TuningConfig) GetMappingAngleTolerance() float64 {
	return getFloat(c.MappingAngleTolerance, mapping.DefaultAngleTolerance)
}

// GetElevationTolerance returns the elevation_tolerance value or the default.
func (c *TuningConfig) GetElevationTolerance() float64 {
	return getFloat(c.ElevationTolerance, mapping.DefaultElevationTolerance)
}

// GetGapTolerance returns the gap_tolerance value or the default.
func (c *TuningConfig) GetGapTolerance() float64 {
	return getFloat(c.GapTolerance, mapping.DefaultGapTolerance)
}

// GetMinOverlap returns the min_overlap value or the default.
func (c *TuningConfig) GetMinOverlap() float64 {
	return getFloat(c.MinOverlap, mapping.DefaultMinOverlap)
}

// GetMaxOffset returns the max_offset value or the default.
func (c *TuningConfig) GetMaxOffset() float64 {
	return getFloat(c.MaxOffset, mapping.DefaultMaxOffset)
}

// GetFullFrameRatio returns the full_frame_ratio value or the default.
func (c *TuningConfig) GetFullFrameRatio() float64 {
	return getFloat(c.FullFrameRatio, mapping.DefaultFullFrameRatio)
}

// GetFullWallRatio returns the full_wall_ratio value or the default.
func (c *TuningConfig) GetFullWallRatio() float64 {
	return getFloat(c.FullWallRatio, mapping.DefaultFullWallRatio)
}
