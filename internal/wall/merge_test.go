package wall

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/wallmap/internal/geom"
	"github.com/banshee-data/wallmap/internal/monitoring"
)

func mergeArena(t *testing.T, cfg Config, lines ...RawLine) (*SegmentArena, int) {
	t.Helper()
	p := NewProcessor(cfg)
	a := NewSegmentArena(lines)
	return a, p.mergeSegments(a, groupByAngle(a))
}

func TestMergeSegmentsOverlap(t *testing.T) {
	a, n := mergeArena(t, DefaultConfig(),
		rawLine(0, 0, 2000, 0, "A"),
		rawLine(1500, 0, 3000, 0, "B"),
	)

	assert.Equal(t, 1, n)
	require.Equal(t, []SegmentID{0}, a.ActiveIDs())
	assert.InDelta(t, 3000.0, a.At(0).Length(), 1e-9, "union, not 3500")
	assert.Equal(t, SegmentID(0), a.At(1).MergedInto)
	assert.Equal(t, []string{"A", "B"}, a.At(0).Handles)
}

func TestMergeSegmentsGap(t *testing.T) {
	a, n := mergeArena(t, DefaultConfig(),
		rawLine(0, 0, 1000, 0, "A"),
		rawLine(1003, 1, 2000, 1, "within"),  // 3 apart, 1 off the line
		rawLine(2100, 0, 3000, 0, "beyond"), // 100 apart
	)

	assert.Equal(t, 1, n)
	assert.Equal(t, []SegmentID{0, 2}, a.ActiveIDs())
	assert.InDelta(t, 2000.0, a.At(0).Length(), 1e-6)
}

func TestMergeSegmentsKeepsLonger(t *testing.T) {
	a, _ := mergeArena(t, DefaultConfig(),
		rawLine(500, 0, 1000, 0, "short"),
		rawLine(0, 0, 3000, 0, "long"),
	)
	assert.Equal(t, []SegmentID{1}, a.ActiveIDs())
	assert.Equal(t, SegmentID(1), a.At(0).MergedInto)

	// Equal length: the lower index survives.
	a, _ = mergeArena(t, DefaultConfig(),
		rawLine(0, 0, 1000, 0, "first"),
		rawLine(500, 0, 1500, 0, "second"),
	)
	assert.Equal(t, []SegmentID{0}, a.ActiveIDs())
}

func TestMergeSegmentsChain(t *testing.T) {
	a, n := mergeArena(t, DefaultConfig(),
		rawLine(2000, 0, 3000, 0, "C"),
		rawLine(0, 0, 1200, 0, "A"),
		rawLine(1000, 0, 2200, 0, "B"),
	)
	assert.Equal(t, 2, n)
	ids := a.ActiveIDs()
	require.Len(t, ids, 1)
	s := a.At(ids[0])
	assert.InDelta(t, 3000.0, s.Length(), 1e-9)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, s.Handles)
}

func TestMergeSegmentsParallelNotMerged(t *testing.T) {
	a, n := mergeArena(t, DefaultConfig(),
		rawLine(0, 0, 1000, 0, "A"),
		rawLine(0, 200, 1000, 200, "B"),
	)
	assert.Zero(t, n)
	assert.Len(t, a.ActiveIDs(), 2)
}

func TestMergeSegmentsLogsIterationCap(t *testing.T) {
	var logs []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logs = append(logs, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.SetLogger(log.Printf) })

	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	_, n := mergeArena(t, cfg,
		rawLine(0, 0, 1000, 0, "A"),
		rawLine(500, 0, 1500, 0, "B"),
	)

	assert.Equal(t, 1, n)
	require.NotEmpty(t, logs)
	assert.True(t, strings.Contains(logs[0], "did not converge"), logs[0])
}

func TestMergeCenterLinesOverlap(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	cls := []CenterLine{
		newCenterLine(geom.Seg(0, 0, 2000, 0), 200, "", []string{"a"}),
		newCenterLine(geom.Seg(1500, 0, 3000, 0), 250, "RC", []string{"b"}),
		newCenterLine(geom.Seg(3000, 0, 4000, 0), 200, "", []string{"c"}), // touches only
	}

	n := p.mergeOverlaps(cls)

	assert.Equal(t, 1, n)
	assert.True(t, cls[0].Active)
	assert.False(t, cls[1].Active)
	assert.True(t, cls[2].Active, "touching is not overlapping")
	assert.True(t, cls[0].ApproxEqual(geom.Seg(0, 0, 3000, 0), 1e-9), "got %v", cls[0].LineSegment2D)
	assert.Equal(t, 250.0, cls[0].Thickness)
	assert.Equal(t, "RC", cls[0].WallType)
	assert.Equal(t, []string{"a", "b"}, cls[0].SourceHandles)
}
