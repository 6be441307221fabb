package wall

import (
	"fmt"

	"github.com/banshee-data/wallmap/internal/geom"
	"github.com/banshee-data/wallmap/internal/geoalgo"
)

// SegmentID is a segment's position in the input batch. It is the stable key
// for pairing and merge provenance.
type SegmentID int

// NoSegment marks an absent pair partner or merge target.
const NoSegment SegmentID = -1

// RawLine is one line entity supplied by the drawing collaborator.
type RawLine struct {
	Start      geom.Point2D `json:"start"`
	End        geom.Point2D `json:"end"`
	Thickness  float64      `json:"thickness,omitempty"` // 0 when the attribute is absent
	WallType   string       `json:"wall_type,omitempty"`
	Handle     string       `json:"handle"`
	SingleLine bool         `json:"single_line,omitempty"` // explicit single-line wall marker
}

// WallSegment is the mutable per-segment state layered on a line. Segments
// are only ever addressed through their SegmentArena.
type WallSegment struct {
	geom.LineSegment2D

	Index      SegmentID
	Thickness  float64
	WallType   string
	Handles    []string // own handle plus those of segments merged into it
	Active     bool     // false once merged away or consumed into a centerline
	Processed  bool     // consumed into a centerline
	PairID     SegmentID
	MergedInto SegmentID
	SingleLine bool
}

// IsPaired reports whether the segment has a partner.
func (s *WallSegment) IsPaired() bool { return s.PairID != NoSegment }

// SegmentArena owns every WallSegment of one batch. Pairing and merge
// provenance are indices into the same arena.
type SegmentArena struct {
	segs []WallSegment
}

// NewSegmentArena loads a batch. Degenerate lines (shorter than
// geom.Epsilon) keep their index but start inactive.
func NewSegmentArena(lines []RawLine) *SegmentArena {
	a := &SegmentArena{segs: make([]WallSegment, len(lines))}
	for i, l := range lines {
		seg := geom.LineSegment2D{Start: l.Start, End: l.End}
		var handles []string
		if l.Handle != "" {
			handles = []string{l.Handle}
		}
		a.segs[i] = WallSegment{
			LineSegment2D: seg,
			Index:         SegmentID(i),
			Thickness:     l.Thickness,
			WallType:      l.WallType,
			Handles:       handles,
			Active:        !seg.IsDegenerate() && seg.Start.IsFinite() && seg.End.IsFinite(),
			PairID:        NoSegment,
			MergedInto:    NoSegment,
			SingleLine:    l.SingleLine,
		}
	}
	return a
}

// Len returns the number of segments, active or not.
func (a *SegmentArena) Len() int { return len(a.segs) }

// At returns the segment with the given id, or nil when out of range.
func (a *SegmentArena) At(id SegmentID) *WallSegment {
	if id < 0 || int(id) >= len(a.segs) {
		return nil
	}
	return &a.segs[id]
}

// ActiveIDs returns the ids of active segments in ascending order.
func (a *SegmentArena) ActiveIDs() []SegmentID {
	var ids []SegmentID
	for i := range a.segs {
		if a.segs[i].Active {
			ids = append(ids, SegmentID(i))
		}
	}
	return ids
}

// Pair links x and y as the two faces of one wall.
func (a *SegmentArena) Pair(x, y SegmentID) error {
	sx, sy := a.At(x), a.At(y)
	if sx == nil || sy == nil {
		return fmt.Errorf("%w: pair(%d, %d)", ErrSegmentNotFound, x, y)
	}
	if x == y {
		return fmt.Errorf("%w: %d", ErrSelfPair, x)
	}
	if sx.IsPaired() || sy.IsPaired() {
		return fmt.Errorf("%w: pair(%d, %d)", ErrAlreadyPaired, x, y)
	}
	sx.PairID = y
	sy.PairID = x
	return nil
}

// Pairs returns every committed pair once, as (lower, higher) id.
func (a *SegmentArena) Pairs() [][2]SegmentID {
	var out [][2]SegmentID
	for i := range a.segs {
		p := a.segs[i].PairID
		if p != NoSegment && SegmentID(i) < p {
			out = append(out, [2]SegmentID{SegmentID(i), p})
		}
	}
	return out
}

// CheckPairs verifies that pairing is symmetric and that no segment has
// more than one partner.
func (a *SegmentArena) CheckPairs() error {
	for i := range a.segs {
		p := a.segs[i].PairID
		if p == NoSegment {
			continue
		}
		partner := a.At(p)
		if partner == nil {
			return fmt.Errorf("%w: %d -> %d", ErrSegmentNotFound, i, p)
		}
		if partner.PairID != SegmentID(i) {
			return fmt.Errorf("%w: %d -> %d -> %d", ErrAsymmetricPair, i, p, partner.PairID)
		}
	}
	return nil
}

// absorb folds drop into keep: keep takes the union geometry, the larger
// thickness and that thickness's wall type; drop is deactivated with its
// provenance recorded.
func (a *SegmentArena) absorb(keep, drop SegmentID) {
	k, d := a.At(keep), a.At(drop)
	k.LineSegment2D = geoalgo.MergeCollinear(k.LineSegment2D, d.LineSegment2D)
	if d.Thickness > k.Thickness {
		k.Thickness = d.Thickness
		if d.WallType != "" {
			k.WallType = d.WallType
		}
	}
	if k.WallType == "" {
		k.WallType = d.WallType
	}
	k.Handles = mergeHandles(k.Handles, d.Handles)
	k.SingleLine = k.SingleLine || d.SingleLine
	d.Active = false
	d.MergedInto = keep
}

// mergeHandles returns the order-preserving union of a and b without
// duplicates. It always returns a fresh slice.
func mergeHandles(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, h := range list {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}
	return out
}
