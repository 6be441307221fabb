package wall

import (
	"github.com/banshee-data/wallmap/internal/monitoring"
)

// Stats counts what each pipeline stage did for one batch.
type Stats struct {
	InputLines      int `json:"input_lines"`
	DegenerateLines int `json:"degenerate_lines"`
	SnappedAngles   int `json:"snapped_angles"`
	SegmentMerges   int `json:"segment_merges"`
	Pairs           int `json:"pairs"`
	SingleLines     int `json:"single_lines"`
	GapJoins        int `json:"gap_joins"`
	OverlapMerges   int `json:"overlap_merges"`
	AxisSnaps       int `json:"axis_snaps"`
	AutoExtensions  int `json:"auto_extensions"`
	GridExtensions  int `json:"grid_extensions"`
	GridBreaks      int `json:"grid_breaks"`
	Duplicates      int `json:"duplicates"`
	CenterLines     int `json:"center_lines"`
}

// Result is the output of one Process call.
type Result struct {
	CenterLines []CenterLine
	Stats       Stats
	// Segments is the arena after processing, for provenance queries.
	Segments *SegmentArena
}

// Processor turns a batch of raw floor-plan lines into wall centerlines.
// A Processor holds only configuration and is safe to reuse; each Process
// call works on its own batch.
type Processor struct {
	cfg Config
}

// NewProcessor returns a processor for cfg. A non-positive MaxIterations
// falls back to DefaultMaxIterations.
func NewProcessor(cfg Config) *Processor {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	cfg.WallThicknesses = append([]float64(nil), cfg.WallThicknesses...)
	cfg.OpeningWidths = append([]float64(nil), cfg.OpeningWidths...)
	return &Processor{cfg: cfg}
}

// Config returns the processor's configuration.
func (p *Processor) Config() Config { return p.cfg }

// Process runs the full pipeline on one batch. axes may be nil; the axis
// stages then do nothing.
//
// Stages, in order:
//  1. Snap near-cardinal angles and bucket segments by angle
//  2. Merge collinear duplicates to a fixpoint
//  3. Pair opposite faces, widest thickness first
//  4. Emit midlines for pairs and promote single-line walls
//  5. Bridge opening-sized gaps, then merge overlapping centerlines
//  6. Snap to axes, auto-extend corners, extend to grid, break at grid
//  7. Drop inactive and duplicate centerlines
func (p *Processor) Process(lines []RawLine, axes []AxisLine) Result {
	arena := NewSegmentArena(lines)
	st := Stats{InputLines: len(lines)}
	st.DegenerateLines = len(lines) - len(arena.ActiveIDs())

	st.SnappedAngles = normalizeAngles(arena, p.cfg.AngleTolerance)
	buckets := groupByAngle(arena)
	st.SegmentMerges = p.mergeSegments(arena, buckets)

	pairs := p.detectPairs(arena, buckets)
	st.Pairs = len(pairs)
	if err := arena.CheckPairs(); err != nil {
		monitoring.Logf("wall: %v", err)
	}

	cls := centerLinesFromPairs(arena, pairs)
	singles := promoteSingleLines(arena)
	st.SingleLines = len(singles)
	cls = append(cls, singles...)

	st.GapJoins = p.recoverGaps(cls)
	st.OverlapMerges = p.mergeOverlaps(cls)

	if p.cfg.AxisSnapDistance > 0 && len(axes) > 0 {
		st.AxisSnaps = p.snapToAxes(cls, axes)
	}
	if p.cfg.EnableAutoExtend {
		st.AutoExtensions = p.autoExtend(cls)
	}
	if p.cfg.ExtendToGrid && len(axes) > 0 {
		st.GridExtensions = p.extendToGrid(cls, axes)
	}
	if p.cfg.BreakAtGrid && len(axes) > 0 {
		cls, st.GridBreaks = p.breakAtGrid(cls, axes)
	}

	active := 0
	for i := range cls {
		if cls[i].Active && !cls[i].IsDegenerate() {
			active++
		}
	}
	out := Cleanup(cls)
	st.Duplicates = active - len(out)
	st.CenterLines = len(out)

	monitoring.Debugf("wall: %d lines -> %d centerlines (merges=%d pairs=%d singles=%d gaps=%d overlaps=%d snaps=%d extends=%d grid=%d breaks=%d dups=%d)",
		st.InputLines, st.CenterLines, st.SegmentMerges, st.Pairs, st.SingleLines, st.GapJoins,
		st.OverlapMerges, st.AxisSnaps, st.AutoExtensions, st.GridExtensions, st.GridBreaks, st.Duplicates)

	return Result{CenterLines: out, Stats: st, Segments: arena}
}
