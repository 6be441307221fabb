package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/wallmap/internal/fsutil"
	"github.com/banshee-data/wallmap/internal/mapping"
	"github.com/banshee-data/wallmap/internal/wall"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.AngleTolerance == nil || *cfg.AngleTolerance != 1.0 {
		t.Errorf("Expected AngleTolerance 1.0, got %v", cfg.AngleTolerance)
	}
	if cfg.EnableAutoExtend == nil || *cfg.EnableAutoExtend != true {
		t.Errorf("Expected EnableAutoExtend true, got %v", cfg.EnableAutoExtend)
	}
	if cfg.GapTolerance == nil || *cfg.GapTolerance != 300.0 {
		t.Errorf("Expected GapTolerance 300, got %v", cfg.GapTolerance)
	}

	if diff := cmp.Diff(wall.DefaultConfig(), cfg.ProcessorConfig()); diff != "" {
		t.Errorf("ProcessorConfig() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mapping.DefaultConfig(), cfg.MappingConfig()); diff != "" {
		t.Errorf("MappingConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetterDefaults(t *testing.T) {
	cfg := &TuningConfig{}

	if diff := cmp.Diff(wall.DefaultConfig(), cfg.ProcessorConfig()); diff != "" {
		t.Errorf("empty ProcessorConfig() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mapping.DefaultConfig(), cfg.MappingConfig()); diff != "" {
		t.Errorf("empty MappingConfig() mismatch (-want +got):\n%s", diff)
	}
	if cfg.GetBreakAtGrid() {
		t.Error("GetBreakAtGrid() = true, want false")
	}
	if cfg.GetMaxIterations() != 50 {
		t.Errorf("GetMaxIterations() = %d, want 50", cfg.GetMaxIterations())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "angle_tolerance": 2.0,
  "axis_snap_distance": 0,
  "break_at_grid": true,
  "wall_thicknesses": [240, 115],
  "elevation_tolerance": 25.0,
  "full_frame_ratio": 0.9
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	pc := cfg.ProcessorConfig()
	if pc.AngleTolerance != 2.0 {
		t.Errorf("AngleTolerance = %f, want 2.0", pc.AngleTolerance)
	}
	if pc.AxisSnapDistance != 0 {
		t.Errorf("AxisSnapDistance = %f, want 0", pc.AxisSnapDistance)
	}
	if !pc.BreakAtGrid {
		t.Error("BreakAtGrid = false, want true")
	}
	if diff := cmp.Diff([]float64{240, 115}, pc.WallThicknesses); diff != "" {
		t.Errorf("WallThicknesses mismatch (-want +got):\n%s", diff)
	}
	// Not in the file, so the default list applies.
	if diff := cmp.Diff(wall.DefaultConfig().OpeningWidths, pc.OpeningWidths); diff != "" {
		t.Errorf("OpeningWidths mismatch (-want +got):\n%s", diff)
	}

	mc := cfg.MappingConfig()
	if mc.ElevationTolerance != 25.0 {
		t.Errorf("ElevationTolerance = %f, want 25", mc.ElevationTolerance)
	}
	if mc.FullFrameRatio != 0.9 {
		t.Errorf("FullFrameRatio = %f, want 0.9", mc.FullFrameRatio)
	}
	if mc.GapTolerance != mapping.DefaultGapTolerance {
		t.Errorf("GapTolerance = %f, want default %f", mc.GapTolerance, mapping.DefaultGapTolerance)
	}
}

func TestLoadTuningConfigEmptyListDisables(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/tuning.json", []byte(`{"opening_widths": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTuningConfigFS(mfs, "/tuning.json")
	if err != nil {
		t.Fatalf("LoadTuningConfigFS failed: %v", err)
	}
	if got := cfg.GetOpeningWidths(); len(got) != 0 {
		t.Errorf("GetOpeningWidths() = %v, want empty", got)
	}
	if got := cfg.GetWallThicknesses(); len(got) != 5 {
		t.Errorf("GetWallThicknesses() = %v, want the 5 defaults", got)
	}
}

func TestEmptyListSurvivesSave(t *testing.T) {
	orig := &TuningConfig{WallThicknesses: []float64{}}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/saved.json", data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadTuningConfigFS(mfs, "/saved.json")
	if err != nil {
		t.Fatalf("LoadTuningConfigFS(%s) failed: %v", data, err)
	}
	if got := cfg.GetWallThicknesses(); len(got) != 0 {
		t.Errorf("GetWallThicknesses() = %v after save, want empty", got)
	}
	if got := cfg.GetOpeningWidths(); len(got) != 5 {
		t.Errorf("GetOpeningWidths() = %v, want the 5 defaults (null reads back as unset)", got)
	}
}

func TestGetWallThicknessesCopies(t *testing.T) {
	cfg := &TuningConfig{WallThicknesses: []float64{200}}
	got := cfg.GetWallThicknesses()
	got[0] = 1
	if cfg.WallThicknesses[0] != 200 {
		t.Errorf("caller mutation leaked into config: %v", cfg.WallThicknesses)
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/invalid.json", []byte(`{"angle_tolerance": "x"`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTuningConfigFS(mfs, "/invalid.json")
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadTuningConfigOutOfRange(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/bad.json", []byte(`{"distance_tolerance": -1}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTuningConfigFS(mfs, "/bad.json")
	if !errors.Is(err, wall.ErrInvalidConfig) {
		t.Errorf("error = %v, want wall.ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr error
	}{
		{
			name: "valid config",
			cfg:  DefaultTuningConfig(),
		},
		{
			name: "empty config is valid",
			cfg:  &TuningConfig{},
		},
		{
			name:    "negative distance tolerance",
			cfg:     &TuningConfig{DistanceTolerance: ptrFloat64(-5)},
			wantErr: wall.ErrInvalidConfig,
		},
		{
			name:    "angle tolerance too wide",
			cfg:     &TuningConfig{AngleTolerance: ptrFloat64(45)},
			wantErr: wall.ErrInvalidConfig,
		},
		{
			name:    "non-positive thickness",
			cfg:     &TuningConfig{WallThicknesses: []float64{200, 0}},
			wantErr: wall.ErrInvalidConfig,
		},
		{
			name:    "negative max iterations",
			cfg:     &TuningConfig{MaxIterations: ptrInt(-1)},
			wantErr: wall.ErrInvalidConfig,
		},
		{
			name:    "negative elevation tolerance",
			cfg:     &TuningConfig{ElevationTolerance: ptrFloat64(-1)},
			wantErr: mapping.ErrInvalidConfig,
		},
		{
			name:    "full frame ratio above one",
			cfg:     &TuningConfig{FullFrameRatio: ptrFloat64(1.5)},
			wantErr: mapping.ErrInvalidConfig,
		},
		{
			name:    "zero full wall ratio",
			cfg:     &TuningConfig{FullWallRatio: ptrFloat64(0)},
			wantErr: mapping.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg, err := LoadTuningConfig("../../config/tuning.defaults.json")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if diff := cmp.Diff(DefaultTuningConfig(), cfg); diff != "" {
		t.Errorf("defaults file drifted from DefaultTuningConfig (-want +got):\n%s", diff)
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.GetExtendTolerance() != wall.DefaultExtendTolerance {
		t.Errorf("GetExtendTolerance() = %f, want %f", cfg.GetExtendTolerance(), wall.DefaultExtendTolerance)
	}
}

func TestLoadTuningConfigRejectsPathTraversal(t *testing.T) {
	// Path traversal with ".." is allowed since this is a CLI-only flag,
	// but the file must still have a .json extension.
	_, err := LoadTuningConfig("../../etc/passwd")
	if err == nil {
		t.Error("Expected error for non-.json path, got nil")
	}
}

func TestLoadTuningConfigRejectsNonJSON(t *testing.T) {
	_, err := LoadTuningConfig("/some/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadTuningConfigRejectsLargeFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/large.json", make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTuningConfigFS(mfs, "/large.json")
	if err == nil {
		t.Error("Expected error for file size > 1MB, got nil")
	}
}
