package wall

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/wallmap/internal/geom"
)

func TestUniqueID(t *testing.T) {
	tests := []struct {
		name string
		seg  geom.LineSegment2D
		want string
	}{
		{"east", geom.Seg(0, 0, 1000, 0), "0_0_1000_0_0.0"},
		{"west is the same wall", geom.Seg(1000, 0, 0, 0), "0_0_1000_0_0.0"},
		{"rounding and negative zero", geom.Seg(-0.4, 0.3, 999.6, 0.3), "0_0_1000_0_0.0"},
		{"north", geom.Seg(0, 1000, 0, 0), "0_0_0_1000_90.0"},
		{"diagonal", geom.Seg(0, 0, 1000, 1000), "0_0_1000_1000_45.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueID(tt.seg); got != tt.want {
				t.Errorf("UniqueID(%v) = %q, want %q", tt.seg, got, tt.want)
			}
		})
	}
}

func TestCleanup(t *testing.T) {
	inactive := newCenterLine(geom.Seg(0, 5000, 1000, 5000), 200, "", []string{"gone"})
	inactive.Active = false
	in := []CenterLine{
		newCenterLine(geom.Seg(0, 0, 1000, 0), 200, "RC", []string{"A"}),
		newCenterLine(geom.Seg(0, 0, 0, 0), 200, "", []string{"degenerate"}),
		inactive,
		newCenterLine(geom.Seg(1000, 0.2, 0, -0.1), 250, "", []string{"B", "A"}),
		newCenterLine(geom.Seg(0, 2000, 1000, 2000), 150, "", []string{"C"}),
	}

	out := Cleanup(in)

	require.Len(t, out, 2)
	assert.Equal(t, "0_0_1000_0_0.0", out[0].UniqueID)
	assert.Equal(t, []string{"A", "B"}, out[0].SourceHandles)
	assert.Equal(t, 250.0, out[0].Thickness, "duplicate keeps the larger thickness")
	assert.Equal(t, "RC", out[0].WallType)
	assert.Equal(t, geom.Seg(0, 0, 1000, 0), out[0].LineSegment2D, "first occurrence keeps its geometry")
	assert.Equal(t, []string{"C"}, out[1].SourceHandles)
	assert.Equal(t, []string{"A"}, in[0].SourceHandles, "input is not mutated")
}

func TestCleanupIdempotent(t *testing.T) {
	in := []CenterLine{
		newCenterLine(geom.Seg(0, 0, 1000, 0), 200, "", []string{"A"}),
		newCenterLine(geom.Seg(1000, 0, 0, 0), 200, "", []string{"B"}),
		newCenterLine(geom.Seg(0, 0, 0, 3000), 200, "", []string{"C"}),
	}

	once := Cleanup(in)
	twice := Cleanup(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Cleanup is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestCleanupEmpty(t *testing.T) {
	assert.Empty(t, Cleanup(nil))
}
