package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/banshee-data/wallmap/internal/mapping"
	"github.com/banshee-data/wallmap/internal/monitoring"
	"github.com/banshee-data/wallmap/internal/wall"
)

// ErrNoLines is returned when a batch carries no lines at all.
var ErrNoLines = errors.New("batch: no lines")

// Batch is one floor's worth of input.
type Batch struct {
	// Elevation of the floor the walls stand on, in model units.
	Elevation float64         `json:"elevation"`
	Lines     []wall.RawLine  `json:"lines"`
	Axes      []wall.AxisLine `json:"axes,omitempty"`
	Frames    []mapping.Frame `json:"frames,omitempty"`
}

// Validate checks the structural contract. Bad geometry is not an error;
// the processor skips it.
func (b *Batch) Validate() error {
	if len(b.Lines) == 0 {
		return ErrNoLines
	}
	seen := make(map[string]int, len(b.Frames))
	for i, f := range b.Frames {
		if f.Name == "" {
			return fmt.Errorf("frame %d has no name", i)
		}
		if j, dup := seen[f.Name]; dup {
			return fmt.Errorf("frame %q repeated at %d and %d", f.Name, j, i)
		}
		seen[f.Name] = i
	}
	return nil
}

// WallMapping is the frame mapping of one centerline.
type WallMapping struct {
	UniqueID string           `json:"unique_id"`
	Length   float64          `json:"length"`
	Records  []mapping.Record `json:"records"`
}

// Unmapped reports whether the wall found no frame at all.
func (w WallMapping) Unmapped() bool {
	return len(w.Records) == 1 && w.Records[0].IsNew()
}

// Result is the output document of one run.
type Result struct {
	RunID       string            `json:"run_id"`
	Elevation   float64           `json:"elevation"`
	Stats       wall.Stats        `json:"stats"`
	CenterLines []wall.CenterLine `json:"center_lines"`
	Walls       []WallMapping     `json:"walls"`
}

// Run processes b and maps every resulting centerline onto b's frames.
// The result carries a fresh run id.
func Run(p *wall.Processor, m *mapping.Mapper, b *Batch) *Result {
	pr := p.Process(b.Lines, b.Axes)

	res := &Result{
		RunID:       uuid.NewString(),
		Elevation:   b.Elevation,
		Stats:       pr.Stats,
		CenterLines: pr.CenterLines,
		Walls:       make([]WallMapping, 0, len(pr.CenterLines)),
	}
	unmapped := 0
	for _, cl := range pr.CenterLines {
		w := WallMapping{
			UniqueID: cl.UniqueID,
			Length:   cl.Length(),
			Records:  m.Map(cl.LineSegment2D, b.Elevation, b.Frames),
		}
		if w.Unmapped() {
			unmapped++
		}
		res.Walls = append(res.Walls, w)
	}
	monitoring.Debugf("batch: run %s: %d centerlines, %d without a frame", res.RunID, len(res.Walls), unmapped)
	return res
}

// Decode reads a Batch from JSON and validates it. Unknown fields are
// rejected so that misspelt keys do not silently fall back to zero values.
func Decode(r io.Reader) (*Batch, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}
	return &b, nil
}

// Encode writes res as indented JSON.
func Encode(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
